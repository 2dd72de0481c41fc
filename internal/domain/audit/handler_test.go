package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setupHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc := NewService(newMockRepo(), fullRedactor())
	return NewHandler(svc), svc
}

func TestGetAuditLog_NotFound(t *testing.T) {
	h, _ := setupHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetAuditLog(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestGetAuditLog_InvalidID(t *testing.T) {
	h, _ := setupHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetAuditLog(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGetAuditLog_Found(t *testing.T) {
	h, svc := setupHandler(t)

	stored, err := svc.Record(context.Background(), &Record{
		UserID:       "dev_user_001",
		DocumentType: "treatment_summary",
		Status:       StatusSuccess,
		Seed:         42,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID.String())

	if err := h.GetAuditLog(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.ID != stored.ID {
		t.Errorf("expected id %s, got %s", stored.ID, got.ID)
	}
}

func TestListAuditLogs_FilterAndPaginate(t *testing.T) {
	h, svc := setupHandler(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(context.Background(), &Record{
			UserID:       "dev_user_001",
			DocumentType: "treatment_summary",
			Status:       StatusSuccess,
			Seed:         42 + i,
		}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?user_id=dev_user_001&limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAuditLogs(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Data    []Record `json:"data"`
		Total   int      `json:"total"`
		HasMore bool     `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Total != 3 || len(body.Data) != 2 || !body.HasMore {
		t.Errorf("unexpected page: total=%d len=%d has_more=%v", body.Total, len(body.Data), body.HasMore)
	}
}

func TestListAuditLogs_InvalidTimestamp(t *testing.T) {
	h, _ := setupHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?from=yesterday", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListAuditLogs(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
