// Package testutils provides testing utilities shared across packages
package testutils

import (
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/jzx17/textpool/pkg/types"
)

// NewMockClock creates a mock clock for testing
func NewMockClock(t testing.TB) *quartz.Mock {
	return quartz.NewMock(t)
}

// MockClockWrapper adapts quartz.Mock to the types.Clock interface
type MockClockWrapper struct {
	*quartz.Mock
}

// NewMockClockWrapper creates a wrapped mock clock for testing
func NewMockClockWrapper(t testing.TB) *MockClockWrapper {
	return &MockClockWrapper{Mock: quartz.NewMock(t)}
}

// Now returns the current mock time
func (c *MockClockWrapper) Now() time.Time {
	return c.Mock.Now()
}

// Since returns the mock time elapsed since t
func (c *MockClockWrapper) Since(t time.Time) time.Duration {
	return c.Mock.Since(t)
}

// After returns a channel that delivers the mock time after the duration
func (c *MockClockWrapper) After(d time.Duration) <-chan time.Time {
	timer := c.Mock.NewTimer(d)
	return timer.C
}

// Sleep blocks until the mock clock advances by d
func (c *MockClockWrapper) Sleep(d time.Duration) {
	timer := c.Mock.NewTimer(d)
	<-timer.C
}

var _ types.Clock = (*MockClockWrapper)(nil)
