package tutor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func ConversationRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.StartConversation)
	r.Get("/", h.ListConversations)
	r.Get("/{id}", h.GetConversation)
	r.Post("/{id}/messages", h.SendMessage)
	r.Post("/{id}/close", h.CloseConversation)
	r.Post("/{id}/tests", h.GenerateTest)
	return r
}

func TestRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListTests)
	r.Get("/{id}", h.GetTest)
	r.Post("/{id}/results", h.SubmitTestResults)
	return r
}
