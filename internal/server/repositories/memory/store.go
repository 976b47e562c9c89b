// Package memory provides in-process implementations of the server
// repositories. They share one Store so WithTx can roll back writes made
// through any of them.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jobtrack/internal/server/models"
)

// Store holds all rows. Reads and writes take mu. txMu is held for the whole
// of a transaction and by every write made outside one, so a rollback never
// discards a write from another caller.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users      map[string]*models.User
	activities map[activityKey]*models.Activity
	goals      []*models.Goal
}

type activityKey struct {
	userID string
	day    string
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]*models.User),
		activities: make(map[activityKey]*models.Activity),
	}
}

type snapshot struct {
	users      map[string]*models.User
	activities map[activityKey]*models.Activity
	goals      []*models.Goal
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		users:      make(map[string]*models.User, len(s.users)),
		activities: make(map[activityKey]*models.Activity, len(s.activities)),
		goals:      make([]*models.Goal, 0, len(s.goals)),
	}
	for k, u := range s.users {
		c := *u
		snap.users[k] = &c
	}
	for k, a := range s.activities {
		c := *a
		snap.activities[k] = &c
	}
	for _, g := range s.goals {
		c := *g
		snap.goals = append(snap.goals, &c)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.activities = snap.activities
	s.goals = snap.goals
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lockWrite takes the locks a write needs and returns the matching unlock.
// Writes inside WithTx must use the ctx passed to fn.
func (s *Store) lockWrite(ctx context.Context) func() {
	if s.inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// WithTx runs fn and undoes every write it made through this store if fn
// returns an error or panics. Panics are rethrown.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, s))
	return err
}
