package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/takeoff-go/internal/adapters/planextract"
)

// MockPlanExtractor is a test double for the plan extraction service
type MockPlanExtractor struct {
	mu sync.RWMutex

	plan *planextract.Plan

	// Call tracking
	extractCalls []string // file names sent for extraction

	// Error injection
	err error

	// Custom function handler
	extractFunc func(ctx context.Context, fileName string, content []byte) (*planextract.Plan, error)
}

// NewMockPlanExtractor creates a mock that answers every call with plan
func NewMockPlanExtractor(plan *planextract.Plan) *MockPlanExtractor {
	return &MockPlanExtractor{plan: plan}
}

// SetError makes every subsequent call fail with err
func (m *MockPlanExtractor) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetExtractFunc sets a custom function for Extract calls
func (m *MockPlanExtractor) SetExtractFunc(fn func(ctx context.Context, fileName string, content []byte) (*planextract.Plan, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extractFunc = fn
}

// Extract implements the plan extractor port
func (m *MockPlanExtractor) Extract(ctx context.Context, fileName string, content []byte) (*planextract.Plan, error) {
	m.mu.Lock()
	m.extractCalls = append(m.extractCalls, fileName)
	fn, err, plan := m.extractFunc, m.err, m.plan
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, fileName, content)
	}
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("no plan configured for %s", fileName)
	}
	return plan, nil
}

// GetExtractCalls returns the file names sent for extraction, in order
func (m *MockPlanExtractor) GetExtractCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.extractCalls...)
}
