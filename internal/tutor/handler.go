package tutor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// StartConversation godoc
// @Summary Start a conversation with the tutor
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body tutor.StartConversationDTO true "Language, first message and level"
// @Success 201 {object} conversation.Conversation
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /conversations [post]
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var dto StartConversationDTO
	if !decode(w, r, &dto) {
		return
	}

	c, err := h.service.StartConversation(r.Context(), claims.UserID, dto)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, c)
}

// ListConversations godoc
// @Summary List the user's conversations
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} conversation.Summary
// @Failure 401 {object} map[string]string
// @Router /conversations [get]
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListConversations(r.Context(), claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, list)
}

// GetConversation godoc
// @Summary Get a conversation with its turns
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} conversation.Conversation
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /conversations/{id} [get]
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.service.GetConversation(r.Context(), id, claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

// SendMessage godoc
// @Summary Send a message and get the tutor reply
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param body body tutor.SendMessageDTO true "Message content"
// @Success 200 {object} conversation.Conversation
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /conversations/{id}/messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var dto SendMessageDTO
	if !decode(w, r, &dto) {
		return
	}

	c, err := h.service.SendMessage(r.Context(), id, claims.UserID, dto)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

// CloseConversation godoc
// @Summary Close a conversation
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} conversation.Conversation
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /conversations/{id}/close [post]
func (h *Handler) CloseConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.service.CloseConversation(r.Context(), id, claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

// GenerateTest godoc
// @Summary Generate a test from the conversation
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 201 {object} langtest.Test
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /conversations/{id}/tests [post]
func (h *Handler) GenerateTest(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.service.GenerateTest(r.Context(), id, claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, t)
}

// ListTests godoc
// @Summary List the user's tests
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} langtest.Summary
// @Failure 401 {object} map[string]string
// @Router /tests [get]
func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListTests(r.Context(), claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, list)
}

// GetTest godoc
// @Summary Get a test with its questions
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Success 200 {object} langtest.Test
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tests/{id} [get]
func (h *Handler) GetTest(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.service.GetTest(r.Context(), id, claims.UserID)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, t)
}

// SubmitTestResults godoc
// @Summary Submit results for a test
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Param body body tutor.SubmitResultsDTO true "Results payload"
// @Success 200 {object} langtest.Test
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tests/{id}/results [post]
func (h *Handler) SubmitTestResults(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var dto SubmitResultsDTO
	if !decode(w, r, &dto) {
		return
	}

	t, err := h.service.SubmitTestResults(r.Context(), id, claims.UserID, dto)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, t)
}

// Prompt godoc
// @Summary Send raw text to the completion model
// @Tags prompt
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body tutor.PromptDTO true "Prompt text"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /prompt [post]
func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	var dto PromptDTO
	if !decode(w, r, &dto) {
		return
	}

	text, err := h.service.Prompt(r.Context(), dto)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Prompt passthrough failed")
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"response": text})
}

func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return claims, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			config.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
