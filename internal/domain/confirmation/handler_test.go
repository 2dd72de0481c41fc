package confirmation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func confirmContext(e *echo.Echo, generationID, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+generationID+"/confirm", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("generation_id")
	c.SetParamValues(generationID)
	return c, rec
}

func TestConfirmDocument_OK(t *testing.T) {
	svc, _, gens := setup(t)
	genID := successfulGeneration(gens)
	h := NewHandler(svc)

	e := echo.New()
	c, rec := confirmContext(e, genID.String(), `{"notes": "reviewed"}`)
	if err := h.ConfirmDocument(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body confirmResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Success || body.GenerationID != genID.String() || body.ConfirmationID == "" {
		t.Errorf("unexpected body %+v", body)
	}
	if body.DocumentType != "treatment_summary" {
		t.Errorf("expected document type from the audit record, got %q", body.DocumentType)
	}
}

func TestConfirmDocument_SecondConfirmConflicts(t *testing.T) {
	svc, _, gens := setup(t)
	genID := successfulGeneration(gens)
	h := NewHandler(svc)

	e := echo.New()
	c, _ := confirmContext(e, genID.String(), `{}`)
	if err := h.ConfirmDocument(c); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	c, _ = confirmContext(e, genID.String(), `{}`)
	err := h.ConfirmDocument(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestConfirmDocument_InvalidGenerationID(t *testing.T) {
	svc, _, _ := setup(t)
	h := NewHandler(svc)

	e := echo.New()
	c, _ := confirmContext(e, "not-a-uuid", `{}`)
	err := h.ConfirmDocument(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestGetConfirmation_NotFound(t *testing.T) {
	svc, _, gens := setup(t)
	genID := successfulGeneration(gens)
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+genID.String()+"/confirmation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("generation_id")
	c.SetParamValues(genID.String())

	err := h.GetConfirmation(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
