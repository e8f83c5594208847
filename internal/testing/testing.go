// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"

	"gigcal/internal/models"
)

// MockSearcher is a test double for services.EventSearcher.
type MockSearcher struct {
	Events []models.Event
	Err    error
}

func (m *MockSearcher) Search(ctx context.Context, keyword string) ([]models.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events, nil
}

func (m *MockSearcher) Name() string { return "mock-search" }

// MockCalendar is a test double for services.CalendarWriter.
type MockCalendar struct {
	EntryID  string
	Err      error
	Inserted []models.Event
	Tokens   []string
}

func (m *MockCalendar) Insert(ctx context.Context, accessToken string, event models.Event) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Inserted = append(m.Inserted, event)
	m.Tokens = append(m.Tokens, accessToken)
	return m.EntryID, nil
}

func (m *MockCalendar) Name() string { return "mock-calendar" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

// NewLimitedWriter creates a LimitedWriter allowing maxWrites writes to target.
func NewLimitedWriter(target io.Writer, maxWrites int) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
