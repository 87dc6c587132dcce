package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/HackCC-Official/fall2025-sub000/internal/dto"
	"github.com/HackCC-Official/fall2025-sub000/internal/service"
	"github.com/HackCC-Official/fall2025-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ScheduleService ──

type mockScheduleService struct {
	generateResult  *dto.ScheduleResponse
	generateErr     error
	currentResult   *dto.ScheduleResponse
	currentErr      error
	publishResult   *dto.ScheduleResponse
	publishErr      error
	unpublishResult *dto.ScheduleResponse
	unpublishErr    error
	publishedResult *dto.ScheduleResponse
	publishedErr    error
	rowsResult      []dto.RowResponse
	rowsTotal       int64
	rowsErr         error
}

func (m *mockScheduleService) Generate(_ context.Context, _ *dto.GenerateScheduleRequest) (*dto.ScheduleResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockScheduleService) Current(_ context.Context) (*dto.ScheduleResponse, error) {
	return m.currentResult, m.currentErr
}
func (m *mockScheduleService) Publish(_ context.Context) (*dto.ScheduleResponse, error) {
	return m.publishResult, m.publishErr
}
func (m *mockScheduleService) Unpublish(_ context.Context) (*dto.ScheduleResponse, error) {
	return m.unpublishResult, m.unpublishErr
}
func (m *mockScheduleService) Published(_ context.Context) (*dto.ScheduleResponse, error) {
	return m.publishedResult, m.publishedErr
}
func (m *mockScheduleService) ListRows(_ context.Context, _ *dto.ListRoundRowsRequest) ([]dto.RowResponse, int64, error) {
	return m.rowsResult, m.rowsTotal, m.rowsErr
}
func (m *mockScheduleService) Load(_ context.Context) error { return nil }

// ── Mock ExportService / CalendarService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportSchedule(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

type mockCalendarService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockCalendarService) ExportCalendar(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, path string, body io.Reader, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r := gin.New()
	register(r)
	r.ServeHTTP(w, req)
	return w
}

func sampleSchedule(state string) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		State:      state,
		JudgeCount: 4,
		TeamCount:  3,
		Rounds: []dto.RoundResponse{
			{Number: 1, StartTime: "12:00 PM", Assignments: []dto.AssignmentResponse{
				{Judge: 1, Team: 1}, {Judge: 2, Team: 2}, {Judge: 3, Team: 3},
			}},
		},
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_Generate_Success(t *testing.T) {
	mock := &mockScheduleService{generateResult: sampleSchedule("draft")}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule/generate", jsonBody(dto.GenerateScheduleRequest{
		JudgeCount: 4, TeamCount: 3,
	}), func(r *gin.Engine) {
		r.POST("/schedule/generate", h.Generate)
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestScheduleHandler_Generate_BadJSON(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := serve("POST", "/schedule/generate", bytes.NewReader([]byte("not json")), func(r *gin.Engine) {
		r.POST("/schedule/generate", h.Generate)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11000 {
		t.Errorf("expected error code 11000, got %d", resp.Code)
	}
}

func TestScheduleHandler_Generate_MissingCounts(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	// judge_count 缺失触发 binding required 校验
	w := serve("POST", "/schedule/generate", jsonBody(map[string]int{"team_count": 3}), func(r *gin.Engine) {
		r.POST("/schedule/generate", h.Generate)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Generate_InsufficientJudges(t *testing.T) {
	mock := &mockScheduleService{generateErr: service.ErrInsufficientJudges}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule/generate", jsonBody(dto.GenerateScheduleRequest{
		JudgeCount: 2, TeamCount: 5,
	}), func(r *gin.Engine) {
		r.POST("/schedule/generate", h.Generate)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestScheduleHandler_Publish_Conflict(t *testing.T) {
	mock := &mockScheduleService{publishErr: service.ErrScheduleAlreadyUp}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule/publish", nil, func(r *gin.Engine) {
		r.POST("/schedule/publish", h.Publish)
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11005 {
		t.Errorf("expected error code 11005, got %d", resp.Code)
	}
}

func TestScheduleHandler_Publish_Success(t *testing.T) {
	mock := &mockScheduleService{publishResult: sampleSchedule("live")}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule/publish", nil, func(r *gin.Engine) {
		r.POST("/schedule/publish", h.Publish)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_Unpublish_NotLive(t *testing.T) {
	mock := &mockScheduleService{unpublishErr: service.ErrScheduleNotLive}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule/unpublish", nil, func(r *gin.Engine) {
		r.POST("/schedule/unpublish", h.Unpublish)
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11006 {
		t.Errorf("expected error code 11006, got %d", resp.Code)
	}
}

func TestScheduleHandler_GetPublished_NotPublic(t *testing.T) {
	mock := &mockScheduleService{publishedErr: service.ErrScheduleNotPublic}
	h := NewScheduleHandler(mock)

	w := serve("GET", "/schedule/published", nil, func(r *gin.Engine) {
		r.GET("/schedule/published", h.GetPublished)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestScheduleHandler_ListRows(t *testing.T) {
	mock := &mockScheduleService{
		rowsResult: []dto.RowResponse{
			{ID: "row-1", Round: 1, Judge: 1, Team: 1, StartTime: "12:00 PM", InUse: true},
		},
		rowsTotal: 9,
	}
	h := NewScheduleHandler(mock)

	w := serve("GET", "/rounds?page=1&page_size=1", nil, func(r *gin.Engine) {
		r.GET("/rounds", h.ListRows)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code int `json:"code"`
		Data struct {
			List       []dto.RowResponse   `json:"list"`
			Pagination response.Pagination `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal page response: %v", err)
	}
	if len(resp.Data.List) != 1 {
		t.Errorf("expected 1 row, got %d", len(resp.Data.List))
	}
	if resp.Data.Pagination.Total != 9 {
		t.Errorf("expected total 9, got %d", resp.Data.Pagination.Total)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportSchedule_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "judging_schedule_20260830.xlsx",
	}
	h := NewExportHandler(mock, &mockCalendarService{})

	w := serve("GET", "/schedule/export", nil, func(r *gin.Engine) {
		r.GET("/schedule/export", h.ExportSchedule)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd != `attachment; filename="judging_schedule_20260830.xlsx"` {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("body should carry the exported bytes")
	}
}

func TestExportHandler_ExportSchedule_Empty(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoSchedule}
	h := NewExportHandler(mock, &mockCalendarService{})

	w := serve("GET", "/schedule/export", nil, func(r *gin.Engine) {
		r.GET("/schedule/export", h.ExportSchedule)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestExportHandler_ExportCalendar_Success(t *testing.T) {
	mock := &mockCalendarService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		filename: "judging_schedule_20260830.ics",
	}
	h := NewExportHandler(&mockExportService{}, mock)

	w := serve("GET", "/schedule/calendar.ics?date=2026-08-30", nil, func(r *gin.Engine) {
		r.GET("/schedule/calendar.ics", h.ExportCalendar)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
}

func TestExportHandler_ExportCalendar_BadDate(t *testing.T) {
	h := NewExportHandler(&mockExportService{}, &mockCalendarService{})

	// 非法日期在 binding 层即被拦截
	w := serve("GET", "/schedule/calendar.ics?date=bad", nil, func(r *gin.Engine) {
		r.GET("/schedule/calendar.ics", h.ExportCalendar)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
