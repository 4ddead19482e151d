package progress

import "gorm.io/gorm"

type ProgressContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewProgressContainer(db *gorm.DB) *ProgressContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &ProgressContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
