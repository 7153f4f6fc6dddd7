package services

import (
	"context"
	"io"
	"sync"
	"time"

	"storefront-service/models"

	"github.com/stretchr/testify/mock"
)

// --- Mocks for Dependencies ---

type MockProductRepo struct{ mock.Mock }

func (m *MockProductRepo) List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return m.Called(ctx, jti, userID, ttl).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, topicArn, eventType string, message []byte) error {
	return m.Called(ctx, topicArn, eventType, message).Error(0)
}

type fakeImageStore struct {
	mu      sync.Mutex
	keys    []string
	types   []string
	bodies  [][]byte
	sizes   []int64
	putErr  error
	baseURL string
}

func (f *fakeImageStore) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	f.types = append(f.types, contentType)
	f.bodies = append(f.bodies, b)
	f.sizes = append(f.sizes, size)
	return nil
}

func (f *fakeImageStore) PublicURL(key string) string {
	return f.baseURL + "/" + key
}

func strp(s string) *string { return &s }
