package tutor

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
	"github.com/saulo-duarte/lingua-lambda/internal/conversation"
	"github.com/saulo-duarte/lingua-lambda/internal/langtest"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"github.com/saulo-duarte/lingua-lambda/internal/llm"
	"github.com/saulo-duarte/lingua-lambda/internal/progress"
	"github.com/saulo-duarte/lingua-lambda/internal/prompt"
	"github.com/sirupsen/logrus"
)

const maxTitleRunes = 60

type Service interface {
	StartConversation(ctx context.Context, ownerID string, dto StartConversationDTO) (*conversation.Conversation, error)
	SendMessage(ctx context.Context, conversationID uuid.UUID, ownerID string, dto SendMessageDTO) (*conversation.Conversation, error)
	GenerateTest(ctx context.Context, conversationID uuid.UUID, ownerID string) (*langtest.Test, error)
	SubmitTestResults(ctx context.Context, testID uuid.UUID, ownerID string, dto SubmitResultsDTO) (*langtest.Test, error)

	GetConversation(ctx context.Context, id uuid.UUID, ownerID string) (*conversation.Conversation, error)
	ListConversations(ctx context.Context, ownerID string) ([]conversation.Summary, error)
	CloseConversation(ctx context.Context, id uuid.UUID, ownerID string) (*conversation.Conversation, error)
	GetTest(ctx context.Context, id uuid.UUID, ownerID string) (*langtest.Test, error)
	ListTests(ctx context.Context, ownerID string) ([]langtest.Summary, error)

	// Prompt forwards raw text to the completion client.
	Prompt(ctx context.Context, dto PromptDTO) (string, error)
}

type Options struct {
	QuestionCount int
}

type service struct {
	conversations conversation.Repository
	tests         langtest.Repository
	progress      progress.Repository
	llm           llm.Client
	opts          Options
	now           func() time.Time
}

func NewService(
	conversations conversation.Repository,
	tests langtest.Repository,
	progressRepo progress.Repository,
	client llm.Client,
	opts Options,
) Service {
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = prompt.DefaultQuestionCount
	}
	return &service{
		conversations: conversations,
		tests:         tests,
		progress:      progressRepo,
		llm:           client,
		opts:          opts,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) StartConversation(ctx context.Context, ownerID string, dto StartConversationDTO) (*conversation.Conversation, error) {
	dto = dto.normalized()
	if err := validate(dto); err != nil {
		return nil, err
	}
	log := config.WithContext(ctx)

	language := dto.Language
	message := dto.Message
	lvl, known := level.Parse(dto.Level)
	if !known && dto.Level != "" {
		log.WithField("level", dto.Level).Warn("Unknown level, using default")
	}

	now := s.now()
	c := &conversation.Conversation{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Language:  language,
		Level:     lvl,
		Title:     title(language, message),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Append(conversation.NewTurn(conversation.RoleUser, message, language, now))

	reply, err := s.llm.Complete(ctx, prompt.Tutor(message, language, lvl))
	if err != nil {
		log.WithError(err).Error("Failed to generate first tutor reply")
		return nil, err
	}
	c.Append(conversation.NewTurn(conversation.RoleAssistant, reply, language, s.now()))

	if err := s.conversations.Create(ctx, c); err != nil {
		log.WithError(err).Error("Failed to persist conversation")
		return nil, err
	}

	log.WithField("conversation_id", c.ID).Info("Conversation started")
	return c, nil
}

func (s *service) SendMessage(ctx context.Context, conversationID uuid.UUID, ownerID string, dto SendMessageDTO) (*conversation.Conversation, error) {
	dto = dto.normalized()
	if err := validate(dto); err != nil {
		return nil, err
	}
	log := config.WithContext(ctx).WithField("conversation_id", conversationID)

	c, err := s.GetConversation(ctx, conversationID, ownerID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, apperr.Validation("conversation %s is closed", conversationID)
	}

	content := dto.Content
	userTurn := conversation.NewTurn(conversation.RoleUser, content, c.Language, s.now())

	reply, err := s.llm.Complete(ctx, prompt.Tutor(content, c.Language, c.Level))
	if err != nil {
		log.WithError(err).Error("Failed to generate tutor reply")
		return nil, err
	}
	assistantTurn := conversation.NewTurn(conversation.RoleAssistant, reply, c.Language, s.now())

	appended := c.Append(userTurn, assistantTurn)
	if err := s.conversations.AppendTurns(ctx, c.ID, appended, c.UpdatedAt); err != nil {
		log.WithError(err).Error("Failed to persist turns")
		return nil, err
	}

	if err := s.progress.RecordMessage(ctx, ownerID, c.Language, c.Level, s.now()); err != nil {
		log.WithError(err).Warn("Failed to record message progress")
	}

	return c, nil
}

func (s *service) GenerateTest(ctx context.Context, conversationID uuid.UUID, ownerID string) (*langtest.Test, error) {
	log := config.WithContext(ctx).WithField("conversation_id", conversationID)

	c, err := s.GetConversation(ctx, conversationID, ownerID)
	if err != nil {
		return nil, err
	}
	if len(c.Turns) == 0 {
		return nil, apperr.Validation("conversation %s has no turns", conversationID)
	}

	raw, err := s.llm.Complete(ctx, prompt.Test(c.Turns, c.Language, c.Level, s.opts.QuestionCount))
	if err != nil {
		log.WithError(err).Error("Failed to generate test")
		return nil, err
	}

	draft, err := langtest.ParseTestResponse(raw, c.Level)
	if err != nil {
		log.WithError(err).Errorf("Failed to parse generated test. Raw response:\n%s", raw)
		return nil, err
	}
	for _, w := range draft.Warnings {
		log.Warnf("Generated test: %s", w)
	}
	if n := len(draft.Questions); n != s.opts.QuestionCount {
		log.WithFields(logrus.Fields{"requested": s.opts.QuestionCount, "received": n}).
			Warn("Generated test has a different number of questions than requested")
	}

	t := &langtest.Test{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		ConversationID: c.ID,
		Language:       c.Language,
		Level:          c.Level,
		CreatedAt:      s.now(),
		Questions:      draft.Questions,
	}
	if err := s.tests.Create(ctx, t); err != nil {
		log.WithError(err).Error("Failed to persist test")
		return nil, err
	}

	s.awardXP(ctx, log, ownerID, c.Language, progress.XPTestGenerated)

	log.WithField("test_id", t.ID).Infof("Generated test with %d questions", len(t.Questions))
	return t, nil
}

func (s *service) SubmitTestResults(ctx context.Context, testID uuid.UUID, ownerID string, dto SubmitResultsDTO) (*langtest.Test, error) {
	if err := validate(dto); err != nil {
		return nil, err
	}
	log := config.WithContext(ctx).WithField("test_id", testID)

	t, err := s.GetTest(ctx, testID, ownerID)
	if err != nil {
		return nil, err
	}
	if t.Completed() {
		return nil, fmt.Errorf("test %s already submitted: %w", testID, apperr.ErrConflict)
	}

	completedAt := s.now()
	saved, err := s.tests.SaveResults(ctx, t.ID, dto.Results, completedAt)
	if err != nil {
		log.WithError(err).Error("Failed to save test results")
		return nil, err
	}
	if !saved {
		return nil, fmt.Errorf("test %s already submitted: %w", testID, apperr.ErrConflict)
	}
	t.Results = dto.Results
	t.CompletedAt = &completedAt

	s.awardXP(ctx, log, ownerID, t.Language, progress.XPTestSubmitted)

	log.Info("Test results submitted")
	return t, nil
}

func (s *service) GetConversation(ctx context.Context, id uuid.UUID, ownerID string) (*conversation.Conversation, error) {
	c, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load conversation")
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("conversation", id.String())
	}
	if c.OwnerID != ownerID {
		return nil, fmt.Errorf("conversation %s: %w", id, apperr.ErrForbidden)
	}
	return c, nil
}

func (s *service) ListConversations(ctx context.Context, ownerID string) ([]conversation.Summary, error) {
	return s.conversations.ListByOwner(ctx, ownerID)
}

func (s *service) CloseConversation(ctx context.Context, id uuid.UUID, ownerID string) (*conversation.Conversation, error) {
	c, err := s.GetConversation(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return c, nil
	}
	if err := s.conversations.SetActive(ctx, id, false); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to close conversation")
		return nil, err
	}
	c.Active = false
	return c, nil
}

func (s *service) GetTest(ctx context.Context, id uuid.UUID, ownerID string) (*langtest.Test, error) {
	t, err := s.tests.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load test")
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("test", id.String())
	}
	if t.OwnerID != ownerID {
		return nil, fmt.Errorf("test %s: %w", id, apperr.ErrForbidden)
	}
	return t, nil
}

func (s *service) ListTests(ctx context.Context, ownerID string) ([]langtest.Summary, error) {
	return s.tests.ListByOwner(ctx, ownerID)
}

func (s *service) Prompt(ctx context.Context, dto PromptDTO) (string, error) {
	dto = dto.normalized()
	if err := validate(dto); err != nil {
		return "", err
	}
	return s.llm.Complete(ctx, dto.Text)
}

// awardXP never fails the caller; a missing progress record simply earns nothing.
func (s *service) awardXP(ctx context.Context, log logrus.FieldLogger, ownerID, language string, points int64) {
	found, err := s.progress.AwardXP(ctx, ownerID, language, points)
	if err != nil {
		log.WithError(err).Warn("Failed to award xp")
		return
	}
	if !found {
		log.WithField("language", language).Debug("No progress record, xp not awarded")
	}
}

func title(language, message string) string {
	if utf8.RuneCountInString(message) > maxTitleRunes {
		message = string([]rune(message)[:maxTitleRunes]) + "..."
	}
	return fmt.Sprintf("%s Learning Session: %s", language, message)
}
