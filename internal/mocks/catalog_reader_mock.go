// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

type MockCatalogReader struct {
	mock.Mock
}

// NewMockCatalogReader creates a mock that asserts its expectations at test cleanup.
func NewMockCatalogReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogReader {
	m := &MockCatalogReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogReader) GetProduct(ctx context.Context, productID string) (*model.RateCard, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RateCard), args.Error(1)
}

func (m *MockCatalogReader) ListProducts(ctx context.Context) ([]*model.RateCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RateCard), args.Error(1)
}

func (m *MockCatalogReader) GetZoneTable(ctx context.Context, origin string) (*model.PostalZoneTable, error) {
	args := m.Called(ctx, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostalZoneTable), args.Error(1)
}

func (m *MockCatalogReader) GetRemoteTable(ctx context.Context) (*model.RemoteAreaTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RemoteAreaTable), args.Error(1)
}

func (m *MockCatalogReader) GetFuelSchedule(ctx context.Context) (model.FuelSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.FuelSchedule), args.Error(1)
}
