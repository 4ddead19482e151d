package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

// Register godoc
// @Summary Register or log in the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body user.RegisterDTO false "Profile used on first login"
// @Success 200 {object} user.User
// @Success 201 {object} user.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/me [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto RegisterDTO
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.Email == "" {
		dto.Email = claims.Email
	}

	u, created, err := h.service.Register(r.Context(), claims.UserID, dto)
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		config.Fail(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	config.JSON(w, status, u)
}

// GetUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/me [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, u)
}

// UpdateUser godoc
// @Summary Update username or languages
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body user.UpdateDTO true "Fields to change"
// @Success 200 {object} user.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/me [patch]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateDTO
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.service.Update(r.Context(), claims.UserID, dto)
	if err != nil {
		log.WithError(err).Warn("Failed to update user")
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, u)
}

// DeleteUser godoc
// @Summary Delete the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/me [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID); err != nil {
		config.Fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
