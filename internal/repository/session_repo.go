package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/business/calculator"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	state    calculator.State
	lastSeen time.Time
}

// SessionRepository keeps one calculator state per user session in memory.
// Sessions are created on demand and dropped on Delete or once idle longer than the TTL.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	floors   model.FloorSet
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionRepository(floors model.FloorSet, ttl time.Duration, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{
		sessions: make(map[string]*sessionEntry),
		floors:   floors,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a new empty session and returns its id.
func (r *SessionRepository) Create(ctx context.Context) (string, calculator.State, error) {
	if err := ctx.Err(); err != nil {
		return "", calculator.State{}, err
	}
	id := uuid.NewString()
	state := calculator.NewState(r.floors)

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{state: state, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Debug("session created", zap.String("session_id", id))
	return id, state, nil
}

// Get returns the current snapshot of a session.
func (r *SessionRepository) Get(ctx context.Context, id string) (calculator.State, error) {
	if err := ctx.Err(); err != nil {
		return calculator.State{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return calculator.State{}, fmt.Errorf("get session %s: %w", id, ErrSessionNotFound)
	}
	entry.lastSeen = r.now()
	return entry.state, nil
}

// Update applies cmd to a session and stores the resulting snapshot.
// A rejected command leaves the stored state untouched.
func (r *SessionRepository) Update(ctx context.Context, id string, cmd calculator.Command) (calculator.State, error) {
	if err := ctx.Err(); err != nil {
		return calculator.State{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return calculator.State{}, fmt.Errorf("update session %s: %w", id, ErrSessionNotFound)
	}
	next, err := calculator.Apply(entry.state, cmd)
	if err != nil {
		return entry.state, err
	}
	entry.state = next
	entry.lastSeen = r.now()
	return next, nil
}

// Delete ends a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("delete session %s: %w", id, ErrSessionNotFound)
	}
	delete(r.sessions, id)
	r.logger.Debug("session ended", zap.String("session_id", id))
	return nil
}

// Len reports how many sessions are live.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were removed.
func (r *SessionRepository) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (r *SessionRepository) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("expired sessions swept", zap.Int("removed", n), zap.Int("live", r.Len()))
			}
		}
	}
}
