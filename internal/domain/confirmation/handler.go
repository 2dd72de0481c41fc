package confirmation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bitesoft/docgen/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/documents/:generation_id/confirm", h.ConfirmDocument)
	api.GET("/documents/:generation_id/confirmation", h.GetConfirmation)
}

type confirmRequest struct {
	ConfirmedPayload map[string]interface{} `json:"confirmed_payload"`
	Notes            string                 `json:"notes"`
}

type confirmResponse struct {
	Success         bool   `json:"success"`
	ConfirmationID  string `json:"confirmation_id"`
	GenerationID    string `json:"generation_id"`
	UserID          string `json:"user_id"`
	DocumentType    string `json:"document_type"`
	DocumentVersion string `json:"document_version"`
	ConfirmedAt     string `json:"confirmed_at"`
	Message         string `json:"message"`
}

func (h *Handler) ConfirmDocument(c echo.Context) error {
	generationID, err := uuid.Parse(c.Param("generation_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid generation_id")
	}

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}

	userID := auth.UserIDFromContext(c.Request().Context())

	conf, err := h.svc.Confirm(c.Request().Context(), generationID, userID, req.ConfirmedPayload, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrGenerationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrGenerationNotSuccessful), errors.Is(err, ErrAlreadyConfirmed):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, confirmResponse{
		Success:         true,
		ConfirmationID:  conf.ID.String(),
		GenerationID:    conf.GenerationID.String(),
		UserID:          conf.UserID,
		DocumentType:    conf.DocumentType,
		DocumentVersion: conf.DocumentVersion,
		ConfirmedAt:     conf.ConfirmedAt.Format("2006-01-02T15:04:05Z07:00"),
		Message:         "Document confirmed successfully",
	})
}

func (h *Handler) GetConfirmation(c echo.Context) error {
	generationID, err := uuid.Parse(c.Param("generation_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid generation_id")
	}

	conf, err := h.svc.Get(c.Request().Context(), generationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if conf == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no confirmation for generation")
	}
	return c.JSON(http.StatusOK, conf)
}
