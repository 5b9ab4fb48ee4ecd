// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

type MockQuotesRepository struct {
	mock.Mock
}

// NewMockQuotesRepository creates a mock that asserts its expectations at test cleanup.
func NewMockQuotesRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuotesRepository {
	m := &MockQuotesRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockQuotesRepository) Create(ctx context.Context, record *model.QuoteRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockQuotesRepository) CreateMany(ctx context.Context, records []*model.QuoteRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockQuotesRepository) Query(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.QuoteRecord), args.Error(1)
}

func (m *MockQuotesRepository) Count(ctx context.Context, opts model.QuoteQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
