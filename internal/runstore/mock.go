package runstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// MockRunManager is a mock implementation of RunManager for testing.
type MockRunManager struct {
	mock.Mock
}

var _ contract.RunManager = &MockRunManager{} // Compile-time check

// GetRunStore implements the RunManager interface.
func (m *MockRunManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalGroups, totalRows int) error {
	args := m.Called(runID, endTime, totalGroups, totalRows)
	return args.Error(0)
}

// RecordTrendSummary implements the RunStore interface.
func (m *MockRunStore) RecordTrendSummary(summary schema.RunSummaryRecord) error {
	args := m.Called(summary)
	return args.Error(0)
}

// ListRuns implements the RunStore interface.
func (m *MockRunStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// ListTrendSummaries implements the RunStore interface.
func (m *MockRunStore) ListTrendSummaries(runID int64) ([]schema.RunSummaryRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.RunSummaryRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
