package handler

import (
	"sync"
	"time"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
	"github.com/TmanScript/umoja-swap-collection/pkg/metrics"
)

// WorkflowFactory builds per-admin workflow instances over the shared
// repositories.
type WorkflowFactory struct {
	Inventory        repository.InventoryRepository
	SwapLedger       repository.SwapLedgerRepository
	CollectionLedger repository.CollectionLedgerRepository
	Audit            repository.AuditRepository
	Logger           logger.Logger
	Metrics          *metrics.Metrics
}

// NewSwap creates a swap wizard bound to one admin identity.
func (f *WorkflowFactory) NewSwap(identity usecase.Identity) *usecase.SwapWorkflow {
	return usecase.NewSwapWorkflow(f.Inventory, f.SwapLedger, f.Audit, f.Logger, f.Metrics, identity)
}

// NewCollection creates a collection session bound to one admin.
func (f *WorkflowFactory) NewCollection(identity usecase.Identity) *usecase.CollectionWorkflow {
	return usecase.NewCollectionWorkflow(f.Inventory, f.CollectionLedger, f.Audit, f.Logger, f.Metrics, identity)
}

// Session holds one admin's live wizard state. Requests for the same
// admin serialize on the session mutex: workflow steps await their
// predecessor, never interleave.
type Session struct {
	mu         sync.Mutex
	identity   usecase.Identity
	swap       *usecase.SwapWorkflow
	collection *usecase.CollectionWorkflow
	lastSeen   time.Time
}

// Swap returns the session's swap wizard, creating it lazily.
func (s *Session) Swap(f *WorkflowFactory) *usecase.SwapWorkflow {
	if s.swap == nil {
		s.swap = f.NewSwap(s.identity)
	}
	return s.swap
}

// Collection returns the session's collection workflow, creating it
// lazily.
func (s *Session) Collection(f *WorkflowFactory) *usecase.CollectionWorkflow {
	if s.collection == nil {
		s.collection = f.NewCollection(s.identity)
	}
	return s.collection
}

// Release unlocks the session.
func (s *Session) Release() {
	s.mu.Unlock()
}

// SessionRegistry keeps in-memory wizard sessions keyed by admin id.
// State is deliberately not persisted: abandoning a session discards it,
// matching the page-session lifecycle of the workflows.
type SessionRegistry struct {
	mu       sync.Mutex
	factory  *WorkflowFactory
	sessions map[string]*Session
	ttl      time.Duration
}

// NewSessionRegistry creates a registry; sessions idle longer than ttl
// are purged on the next acquire.
func NewSessionRegistry(factory *WorkflowFactory, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		factory:  factory,
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Acquire returns the admin's session with its mutex held. Callers must
// Release it.
func (r *SessionRegistry) Acquire(identity usecase.Identity) *Session {
	r.mu.Lock()
	r.purgeStaleLocked()
	s, ok := r.sessions[identity.AdminID]
	if !ok {
		s = &Session{identity: identity}
		r.sessions[identity.AdminID] = s
	}
	s.lastSeen = time.Now()
	r.mu.Unlock()

	s.mu.Lock()
	return s
}

// Drop discards an admin's session, e.g. on logout.
func (r *SessionRegistry) Drop(adminID string) {
	r.mu.Lock()
	delete(r.sessions, adminID)
	r.mu.Unlock()
}

func (r *SessionRegistry) purgeStaleLocked() {
	if r.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-r.ttl)
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
