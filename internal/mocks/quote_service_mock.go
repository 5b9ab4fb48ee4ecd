// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/service"
)

type MockQuoteService struct {
	mock.Mock
}

// NewMockQuoteService creates a mock that asserts its expectations at test cleanup.
func NewMockQuoteService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteService {
	m := &MockQuoteService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockQuoteService) Quote(ctx context.Context, req *dto.CalculateRateRequest, opts service.QuoteOptions) (*service.Quote, error) {
	args := m.Called(ctx, req, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}

func (m *MockQuoteService) ListProducts(ctx context.Context) ([]dto.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProductSummary), args.Error(1)
}

func (m *MockQuoteService) History(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.QuoteRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteService) PurgeCache(ctx context.Context, req dto.PurgeCacheRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var _ service.QuoteService = (*MockQuoteService)(nil)
