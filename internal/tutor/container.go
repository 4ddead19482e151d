package tutor

import (
	"github.com/saulo-duarte/lingua-lambda/internal/conversation"
	"github.com/saulo-duarte/lingua-lambda/internal/langtest"
	"github.com/saulo-duarte/lingua-lambda/internal/llm"
	"github.com/saulo-duarte/lingua-lambda/internal/progress"
	"gorm.io/gorm"
)

type TutorContainer struct {
	ConversationRepo conversation.Repository
	TestRepo         langtest.Repository
	Service          Service
	Handler          *Handler
}

func NewTutorContainer(db *gorm.DB, client llm.Client, progressRepo progress.Repository, opts Options) *TutorContainer {
	conversationRepo := conversation.NewRepository(db)
	testRepo := langtest.NewRepository(db)
	service := NewService(conversationRepo, testRepo, progressRepo, client, opts)
	handler := NewHandler(service)

	return &TutorContainer{
		ConversationRepo: conversationRepo,
		TestRepo:         testRepo,
		Service:          service,
		Handler:          handler,
	}
}
