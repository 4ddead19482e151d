package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
	"github.com/saulo-duarte/lingua-lambda/internal/conversation"
	"github.com/saulo-duarte/lingua-lambda/internal/langtest"
	"github.com/saulo-duarte/lingua-lambda/internal/llm"
	"github.com/saulo-duarte/lingua-lambda/internal/progress"
	"github.com/saulo-duarte/lingua-lambda/internal/router"
	"github.com/saulo-duarte/lingua-lambda/internal/tutor"
	"github.com/saulo-duarte/lingua-lambda/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Settings          *config.Settings
	DB                *gorm.DB
	LLM               llm.Client
	UserContainer     *user.UserContainer
	ProgressContainer *progress.ProgressContainer
	TutorContainer    *tutor.TutorContainer
}

// New loads settings, opens the database and wires every feature container.
func New(ctx context.Context) (*Container, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	config.InitLogger(settings.LogLevel, settings.LogFormat)

	if settings.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	auth.Init(settings.JWTSecret)

	db, err := config.Connect(ctx, settings.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = config.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	client, err := NewLLMClient(ctx, settings)
	if err != nil {
		_ = config.Close(db)
		return nil, err
	}

	return Build(settings, db, client), nil
}

// Build wires the feature containers on top of already opened dependencies.
func Build(settings *config.Settings, db *gorm.DB, client llm.Client) *Container {
	userContainer := user.NewUserContainer(db)
	progressContainer := progress.NewProgressContainer(db)
	tutorContainer := tutor.NewTutorContainer(db, client, progressContainer.Repo, tutor.Options{
		QuestionCount: settings.QuestionCount,
	})

	return &Container{
		Settings:          settings,
		DB:                db,
		LLM:               client,
		UserContainer:     userContainer,
		ProgressContainer: progressContainer,
		TutorContainer:    tutorContainer,
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&conversation.Conversation{},
		&conversation.Turn{},
		&langtest.Test{},
		&langtest.Question{},
		&progress.Record{},
	)
}

func NewLLMClient(ctx context.Context, settings *config.Settings) (llm.Client, error) {
	opts := llm.Options{
		Model:      settings.GeminiModel,
		Timeout:    settings.LLMTimeout,
		MaxRetries: settings.LLMMaxRetries,
		Backoff:    500 * time.Millisecond,
	}

	switch settings.LLMProvider {
	case "stub":
		config.WithContext(ctx).Warn("Using stub completion client")
		return llm.NewStubClient(), nil
	case "", "gemini":
		client, err := llm.NewGeminiClient(ctx, settings.GeminiAPIKey, opts)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", settings.LLMProvider)
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		CORSOrigins:     c.Settings.CORSOrigins,
		UserHandler:     c.UserContainer.Handler,
		TutorHandler:    c.TutorContainer.Handler,
		ProgressHandler: c.ProgressContainer.Handler,
		Health:          c.ping,
	})
}

func (c *Container) ping(r *http.Request) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(r.Context())
}

func (c *Container) Close() error {
	return config.Close(c.DB)
}
