package testfixtures

import (
	"context"
	"sync"

	"github.com/mark3labs/dmflow/internal/journal"
)

// MockRecorder is a journal.Recorder that keeps changes in memory.
//
// Example usage:
//
//	rec := testfixtures.NewMockRecorder()
//	m := builder.New(ctx, builder.Options{Recorder: rec})
//	// drive the model...
//	require.Equal(t, "select", rec.Changes()[0].Action)
type MockRecorder struct {
	mu sync.Mutex

	// Error to return from Record; changes are not kept while set
	RecordError error

	changes   []journal.Change
	workflows []string
}

// NewMockRecorder creates an empty MockRecorder.
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// Record implements journal.Recorder.
func (m *MockRecorder) Record(ctx context.Context, workflow string, change journal.Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordError != nil {
		return m.RecordError
	}
	m.changes = append(m.changes, change)
	m.workflows = append(m.workflows, workflow)
	return nil
}

// Changes returns a copy of the recorded changes in order.
func (m *MockRecorder) Changes() []journal.Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]journal.Change(nil), m.changes...)
}

// Workflows returns the workflow key passed with each change.
func (m *MockRecorder) Workflows() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.workflows...)
}

// Actions returns "type/action" for each recorded change.
func (m *MockRecorder) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, len(m.changes))
	for i, c := range m.changes {
		actions[i] = c.Type + "/" + c.Action
	}
	return actions
}

// Reset clears recorded changes.
func (m *MockRecorder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = nil
	m.workflows = nil
}
