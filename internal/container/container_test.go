package container

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
	"github.com/saulo-duarte/lingua-lambda/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupContainer(t *testing.T) *Container {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	auth.Init("container-test-secret")
	settings := &config.Settings{CORSOrigins: []string{"*"}, QuestionCount: 3}
	return Build(settings, db, llm.NewStubClient())
}

func do(t *testing.T, h http.Handler, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLearningFlowWithStubClient(t *testing.T) {
	c := setupContainer(t)
	h := c.Router()
	token, err := auth.GenerateJWT("uid-42", "user", time.Hour)
	require.NoError(t, err)

	rec := do(t, h, token, http.MethodPost, "/users/me", map[string]interface{}{
		"email": "learner@example.com", "username": "learner", "languages": []string{"French"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, token, http.MethodPost, "/conversations", map[string]string{
		"language": "French", "message": "Bonjour", "level": "B1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var conv struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = do(t, h, token, http.MethodPost, "/conversations/"+conv.ID.String()+"/messages",
		map[string]string{"content": "Je voudrais un café"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "You said: Je voudrais un café")

	rec = do(t, h, token, http.MethodPost, "/conversations/"+conv.ID.String()+"/tests", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var test struct {
		ID        uuid.UUID         `json:"id"`
		Questions []json.RawMessage `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &test))
	assert.Len(t, test.Questions, 3)

	rec = do(t, h, token, http.MethodPost, "/tests/"+test.ID.String()+"/results",
		map[string]interface{}{"results": map[string]interface{}{"score": 3}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, token, http.MethodPost, "/tests/"+test.ID.String()+"/results",
		map[string]interface{}{"results": map[string]interface{}{"score": 3}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, token, http.MethodGet, "/progress/French", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var progress struct {
		XPPoints     int64 `json:"xp_points"`
		MessagesSent int64 `json:"messages_sent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.EqualValues(t, 1, progress.MessagesSent)
	assert.EqualValues(t, 10+5+20, progress.XPPoints)
}

func TestNewLLMClientRejectsUnknownProvider(t *testing.T) {
	_, err := NewLLMClient(context.Background(), &config.Settings{LLMProvider: "openai"})
	assert.Error(t, err)

	_, err = NewLLMClient(context.Background(), &config.Settings{LLMProvider: "gemini"})
	assert.Error(t, err, "gemini without an api key")

	client, err := NewLLMClient(context.Background(), &config.Settings{LLMProvider: "stub"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
