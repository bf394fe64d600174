package filesystem

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/logging"
)

// Manager executes filesystem operations and owns the session's operation
// counters. Methods are safe for concurrent use.
type Manager struct {
	log   *logging.Logger
	stats *counters
}

// NewManager creates a manager logging through log. A nil logger is replaced
// with a no-op logger.
func NewManager(log *logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		log:   log.Named("filesystem"),
		stats: &counters{},
	}
}

// Stats returns a snapshot of the operation counters.
func (m *Manager) Stats() Stats {
	return m.stats.snapshot()
}

// ResetStats clears the operation counters.
func (m *Manager) ResetStats() {
	m.stats.reset()
}

// counters accumulates operation outcomes. Walk callbacks may run
// concurrently, so every bump takes the lock.
type counters struct {
	mu sync.Mutex
	s  Stats
}

func (c *counters) addFile() {
	c.mu.Lock()
	c.s.FilesProcessed++
	c.mu.Unlock()
}

func (c *counters) addDir() {
	c.mu.Lock()
	c.s.DirsProcessed++
	c.mu.Unlock()
}

func (c *counters) addSuccess() {
	c.mu.Lock()
	c.s.Succeeded++
	c.mu.Unlock()
}

func (c *counters) addFailure() {
	c.mu.Lock()
	c.s.Failed++
	c.mu.Unlock()
}

func (c *counters) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

func (c *counters) reset() {
	c.mu.Lock()
	c.s = Stats{}
	c.mu.Unlock()
}

// fail records a failed operation and returns the error.
func (m *Manager) fail(e *Error) *Error {
	m.stats.addFailure()
	return m.logError(e)
}

// logError reports e without touching the counters.
func (m *Manager) logError(e *Error) *Error {
	fields := []zap.Field{zap.String("path", e.Path)}
	if e.Dest != "" {
		fields = append(fields, zap.String("destination", e.Dest))
	}
	fields = append(fields, zap.Error(e.Err))
	m.log.Error(e.Op+" failed", fields...)
	return e
}
