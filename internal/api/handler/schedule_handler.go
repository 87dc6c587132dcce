package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HackCC-Official/fall2025-sub000/internal/dto"
	"github.com/HackCC-Official/fall2025-sub000/internal/service"
	"github.com/HackCC-Official/fall2025-sub000/pkg/response"
)

// ScheduleHandler 排期模块 Handler
type ScheduleHandler struct {
	svc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler 实例
func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// Generate 生成排期
// POST /api/v1/schedule/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11000, err.Error())
		return
	}

	resp, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetSchedule 获取当前内存排期与状态
// GET /api/v1/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Publish 发布排期
// POST /api/v1/schedule/publish
func (h *ScheduleHandler) Publish(c *gin.Context) {
	resp, err := h.svc.Publish(c.Request.Context())
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Unpublish 撤下排期
// POST /api/v1/schedule/unpublish
func (h *ScheduleHandler) Unpublish(c *gin.Context) {
	resp, err := h.svc.Unpublish(c.Request.Context())
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetPublished 获取对外可见的已发布排期
// GET /api/v1/schedule/published
func (h *ScheduleHandler) GetPublished(c *gin.Context) {
	resp, err := h.svc.Published(c.Request.Context())
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListRows 查询持久化排期行（分页）
// GET /api/v1/rounds
func (h *ScheduleHandler) ListRows(c *gin.Context) {
	var req dto.ListRoundRowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 11000, err.Error())
		return
	}

	rows, total, err := h.svc.ListRows(c.Request.Context(), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OKPage(c, rows, total, req.GetPage(), req.GetPageSize())
}

// handleScheduleError 排期模块业务错误 → HTTP 响应
func handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientJudges):
		response.ErrorWithDetails(c, http.StatusBadRequest, 11001, "评委数量不足", err.Error())
	case errors.Is(err, service.ErrNoTeams):
		response.ErrorWithDetails(c, http.StatusBadRequest, 11002, "队伍数量无效", err.Error())
	case errors.Is(err, service.ErrInvalidStartTime):
		response.ErrorWithDetails(c, http.StatusBadRequest, 11003, "无效的开始时间标签", err.Error())
	case errors.Is(err, service.ErrScheduleEmpty):
		response.Conflict(c, 11004, err.Error())
	case errors.Is(err, service.ErrScheduleAlreadyUp):
		response.Conflict(c, 11005, err.Error())
	case errors.Is(err, service.ErrScheduleNotLive):
		response.Conflict(c, 11006, err.Error())
	case errors.Is(err, service.ErrScheduleNotPublic):
		response.NotFound(c, 11007, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
