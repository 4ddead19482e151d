package user

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/me", h.Register)
	r.Get("/me", h.GetUser)
	r.Patch("/me", h.UpdateUser)
	r.Delete("/me", h.DeleteUser)
	return r
}
