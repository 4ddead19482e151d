package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ListProgress godoc
// @Summary List progress for every language
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} progress.Record
// @Failure 401 {object} map[string]string
// @Router /progress [get]
func (h *Handler) ListProgress(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.service.List(r.Context(), claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, records)
}

// GetProgress godoc
// @Summary Get progress for one language
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param language path string true "Target language"
// @Success 200 {object} progress.Record
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /progress/{language} [get]
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.service.Get(r.Context(), claims.UserID, chi.URLParam(r, "language"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, rec)
}
