package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lkoehler/ladeplan/internal/common"
	"github.com/lkoehler/ladeplan/internal/entity"
)

// Store keeps parsed loading plans in memory for the lifetime of a browser
// session. Entries expire after the configured TTL; a janitor goroutine
// sweeps them out so an abandoned upload does not pin its table forever.
type Store struct {
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[uuid.UUID]storeEntry

	stop chan struct{}
	once sync.Once
}

type storeEntry struct {
	plan      *entity.LoadingPlan
	expiresAt time.Time
}

// NewStore starts a store whose janitor runs every interval. Close must be
// called to stop it.
func NewStore(ttl, interval time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		ttl:     ttl,
		logger:  logger,
		entries: make(map[uuid.UUID]storeEntry),
		stop:    make(chan struct{}),
	}
	go s.janitor(interval)
	return s
}

// Put stores a freshly assembled plan under its own id. Re-uploads always
// create a new entry; plans are never merged.
func (s *Store) Put(p *entity.LoadingPlan) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[p.ID] = storeEntry{plan: p, expiresAt: time.Now().Add(s.ttl)}
	return p.ID
}

// Get returns the plan for id, or ErrNotFound when it is unknown or has
// expired. Reads refresh the TTL so an active session keeps its table.
func (s *Store) Get(id uuid.UUID) (*entity.LoadingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		if ok {
			delete(s.entries, id)
		}
		return nil, common.NewAppError("PLAN_NOT_FOUND", "plan not found or expired", common.ErrNotFound)
	}
	e.expiresAt = time.Now().Add(s.ttl)
	s.entries[id] = e
	return e.plan, nil
}

// Delete drops a plan explicitly (session end).
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) janitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			s.logger.Info("session.sweep.expired", "plan_id", id)
		}
	}
}
