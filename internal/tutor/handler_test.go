package tutor

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(s Service) http.Handler {
	h := NewHandler(s)
	r := chi.NewRouter()
	r.Mount("/conversations", ConversationRoutes(h))
	r.Mount("/tests", TestRoutes(h))
	return r
}

func authedRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := auth.WithClaims(req.Context(), &auth.Claims{UserID: owner})
	return req.WithContext(ctx)
}

func TestHandlerStartConversation(t *testing.T) {
	s, client, _ := setupService(t)
	client.On("Complete", mock.Anything, mock.Anything).Return("Hallo!", nil).Once()

	rec := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rec, authedRequest(http.MethodPost, "/conversations",
		StartConversationDTO{Language: "German", Message: "Hallo"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		ID    uuid.UUID `json:"id"`
		Turns []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEqual(t, uuid.Nil, body.ID)
	require.Len(t, body.Turns, 2)
	assert.Equal(t, "assistant", body.Turns[1].Role)
	assert.Equal(t, "Hallo!", body.Turns[1].Content)
}

func TestHandlerErrorStatuses(t *testing.T) {
	s, client, _ := setupService(t)
	c := startConversation(t, s, client)
	router := newTestRouter(s)

	tests := []struct {
		name   string
		req    *http.Request
		setup  func()
		status int
	}{
		{
			name:   "unknown conversation",
			req:    authedRequest(http.MethodGet, "/conversations/"+uuid.NewString(), nil),
			status: http.StatusNotFound,
		},
		{
			name:   "malformed id",
			req:    authedRequest(http.MethodGet, "/conversations/not-a-uuid", nil),
			status: http.StatusBadRequest,
		},
		{
			name:   "missing content",
			req:    authedRequest(http.MethodPost, "/conversations/"+c.ID.String()+"/messages", SendMessageDTO{}),
			status: http.StatusBadRequest,
		},
		{
			name: "rate limited",
			req:  authedRequest(http.MethodPost, "/conversations/"+c.ID.String()+"/messages", SendMessageDTO{Content: "hi"}),
			setup: func() {
				client.On("Complete", mock.Anything, mock.Anything).
					Return("", &llm.GenerationFailure{Reason: llm.ReasonRateLimited, Cause: errors.New("429")}).Once()
			},
			status: http.StatusTooManyRequests,
		},
		{
			name: "unparseable test",
			req:  authedRequest(http.MethodPost, "/conversations/"+c.ID.String()+"/tests", nil),
			setup: func() {
				client.On("Complete", mock.Anything, mock.Anything).Return("not json", nil).Once()
			},
			status: http.StatusBadGateway,
		},
		{
			name:   "unknown test",
			req:    authedRequest(http.MethodGet, "/tests/"+uuid.NewString(), nil),
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandlerRequiresClaims(t *testing.T) {
	s, _, _ := setupService(t)

	rec := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversations", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerRejectsOversizedBody(t *testing.T) {
	s, client, _ := setupService(t)
	c := startConversation(t, s, client)

	huge := SendMessageDTO{Content: strings.Repeat("a", maxBodyBytes+1)}
	rec := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rec, authedRequest(http.MethodPost, "/conversations/"+c.ID.String()+"/messages", huge))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	client.AssertNumberOfCalls(t, "Complete", 1)
}
