package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// SessionManager keeps one Wizard per front-end session, keyed by a uuid.
// Sessions disappear when their wizard is cancelled or submits successfully.
type SessionManager struct {
	deps   WizardDeps
	opts   []WizardOption
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Wizard
}

// NewSessionManager creates a manager that builds wizards from deps and opts.
func NewSessionManager(deps WizardDeps, logger *zap.Logger, opts ...WizardOption) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		deps:     deps,
		opts:     opts,
		logger:   logger,
		sessions: make(map[string]*Wizard),
	}
}

// Open starts a new wizard session and returns its id.
func (m *SessionManager) Open(ctx context.Context) (string, *Wizard) {
	id := uuid.NewString()

	opts := append([]WizardOption{WithLogger(m.logger.With(zap.String("session", id)))}, m.opts...)
	opts = append(opts, OnComplete(func(domain.OrderConfirmation) { m.forget(id) }))
	w := NewWizard(m.deps, opts...)

	m.mu.Lock()
	m.sessions[id] = w
	m.mu.Unlock()

	w.Open(ctx)
	return id, w
}

// Get returns the wizard for id.
func (m *SessionManager) Get(id string) (*Wizard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	return w, nil
}

// Cancel closes and forgets the session.
func (m *SessionManager) Cancel(id string) error {
	w, err := m.Get(id)
	if err != nil {
		return err
	}
	w.Cancel()
	m.forget(id)
	return nil
}

// IDs lists the open sessions in lexical order.
func (m *SessionManager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close cancels every open session.
func (m *SessionManager) Close() {
	for _, id := range m.IDs() {
		_ = m.Cancel(id)
	}
}

func (m *SessionManager) forget(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
