package generation

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bitesoft/docgen/internal/domain/cdt"
	"github.com/bitesoft/docgen/internal/platform/auth"
	"github.com/bitesoft/docgen/internal/platform/llm"
)

type Handler struct {
	svc     *Service
	version string
}

func NewHandler(svc *Service, version string) *Handler {
	return &Handler{svc: svc, version: version}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/generate-treatment-summary", h.GenerateTreatmentSummary)
	api.POST("/generate-insurance-summary", h.GenerateInsuranceSummary)
	api.POST("/generate-progress-notes", h.GenerateProgressNotes)
}

func (h *Handler) GenerateTreatmentSummary(c echo.Context) error {
	var req TreatmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}
	in, err := req.Normalize()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID := auth.UserIDFromContext(c.Request().Context())
	resp, err := h.svc.GenerateTreatment(c.Request().Context(), userID, in)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GenerateInsuranceSummary(c echo.Context) error {
	var req InsuranceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}
	in, err := req.Normalize()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID := auth.UserIDFromContext(c.Request().Context())
	resp, err := h.svc.GenerateInsurance(c.Request().Context(), userID, in)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// GenerateProgressNotes is a placeholder until the progress notes module
// ships.
func (h *Handler) GenerateProgressNotes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Module coming soon",
		"module":  "progress-notes",
	})
}

// Health reports liveness. Registered outside the authenticated group.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
	})
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrRegenerationMissingParent),
		errors.Is(err, cdt.ErrRuleNotFound),
		errors.Is(err, cdt.ErrInsufficientInput),
		errors.Is(err, cdt.ErrCodeInactive),
		errors.Is(err, cdt.ErrInvalidTier),
		errors.Is(err, cdt.ErrInvalidAgeGroup):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrParentNotFound):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, llm.ErrCallFailed),
		errors.Is(err, llm.ErrEmptyResponse),
		errors.Is(err, llm.ErrInvalidJSON),
		errors.Is(err, ErrMalformedOutput):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
