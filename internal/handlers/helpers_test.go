package handlers_test

import (
	"InfoVault/internal/config"
	"InfoVault/internal/handlers"
	"InfoVault/internal/middleware"
	"InfoVault/internal/model"
	"InfoVault/internal/repo"
	"InfoVault/internal/service"
	"InfoVault/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Local light mocks
type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

type hMockRecordRepo struct{ mock.Mock }

func (m *hMockRecordRepo) ListByUser(ctx context.Context, userID int64) ([]model.Record, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Record); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockRecordRepo) Create(ctx context.Context, rec *model.Record) error {
	return m.Called(ctx, rec).Error(0)
}
func (m *hMockRecordRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Record, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Record); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockRecordRepo) Update(ctx context.Context, rec *model.Record) error {
	return m.Called(ctx, rec).Error(0)
}
func (m *hMockRecordRepo) Delete(ctx context.Context, userID int64, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *hMockRecordRepo) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.RecordRepository = (*hMockRecordRepo)(nil)

type hMockBlobStore struct{ mock.Mock }

func (m *hMockBlobStore) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	return m.Called(ctx, path, body, contentType).Error(0)
}
func (m *hMockBlobStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, path, ttl)
	return args.String(0), args.Error(1)
}
func (m *hMockBlobStore) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

var _ storage.BlobStore = (*hMockBlobStore)(nil)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (http.Handler, *hMockUserRepo, *hMockRecordRepo, *hMockBlobStore) {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, SignedURLTTL: 300, BlobMaxSizeMB: 1}
	logger := zap.NewNop().Sugar()
	ur := &hMockUserRepo{}
	rr := &hMockRecordRepo{}
	bs := &hMockBlobStore{}
	h := handlers.NewHandler(
		service.NewUserService(ur),
		service.NewRecordService(rr),
		bs,
		logger,
		cfg,
	)
	return h.Router, ur, rr, bs
}

func authToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := middleware.BuildJWT(userID, testSecret)
	assert.NoError(t, err)
	return token
}

// doJSON выполняет запрос к роутеру и возвращает рекордер ответа.
func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) testEnvelope {
	t.Helper()
	var env testEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil && env.Data != nil {
		assert.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}
