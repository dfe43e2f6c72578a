// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/models"
)

// MockDatabase is a mock implementation of docdb.Database.
type MockDatabase struct {
	mock.Mock
}

// Get retrieves a record by ID.
func (m *MockDatabase) Get(ctx context.Context, id string) (models.RawRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawRecord), args.Error(1)
}

// FetchMany retrieves records by IDs.
func (m *MockDatabase) FetchMany(ctx context.Context, ids []string) ([]models.RawRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawRecord), args.Error(1)
}

// MockView is a mock implementation of docdb.View.
type MockView struct {
	mock.Mock
}

// Count counts the records in the view.
func (m *MockView) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// First returns the first record in the view.
func (m *MockView) First(ctx context.Context) (models.RawRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawRecord), args.Error(1)
}

// Last returns the last record in the view.
func (m *MockView) Last(ctx context.Context) (models.RawRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawRecord), args.Error(1)
}

// MockViewSet is a view set serving a single mock all view.
type MockViewSet struct {
	AllView *MockView
}

// All returns the all view.
func (m *MockViewSet) All() docdb.View {
	if m.AllView == nil {
		return nil
	}
	return m.AllView
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	database *MockDatabase
	views    *MockViewSet
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		database: &MockDatabase{},
		views:    &MockViewSet{AllView: &MockView{}},
	}
}

// Database returns the database.
func (m *MockDocDBClient) Database() docdb.Database {
	return m.database
}

// Views returns the view set.
func (m *MockDocDBClient) Views() docdb.ViewSet {
	return m.views
}

// Ping checks the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetDatabase returns the mock database for setup.
func (m *MockDocDBClient) GetDatabase() *MockDatabase {
	return m.database
}

// GetAllView returns the mock all view for setup.
func (m *MockDocDBClient) GetAllView() *MockView {
	return m.views.AllView
}
