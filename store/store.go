// Package store is the process-wide wallet state both screens read from.
// Reads go through selectors, writes go through Dispatch.
package store

import (
	"math/big"
	"sync"

	"charm-approve-tui/config"
)

// Modal names
const (
	ModalNone                   = ""
	ModalEditApprovalPermission = "EDIT_APPROVAL_PERMISSION"
	ModalCustomizeNonce         = "CUSTOMIZE_NONCE"
)

// Subject is what the wallet knows about a requesting site
type Subject struct {
	Name    string
	IconURL string
}

// State is an immutable snapshot. Reducers always return a fresh copy.
type State struct {
	UseNonceField    bool
	NextNonce        *uint64
	CustomNonceValue string
	ChainID          *big.Int
	NativeCurrency   string
	ExplorerURL      string
	Subjects         map[string]Subject
	Modal            string
	Page             config.Page
	// MostRecentOverviewPage is where Cancel goes back to
	MostRecentOverviewPage config.Page
	Version                uint64
}

// Store guards State and notifies subscribers after every dispatch
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []chan State
}

// New creates a store seeded with initial
func New(initial State) *Store {
	if initial.Subjects == nil {
		initial.Subjects = map[string]Subject{}
	}
	return &Store{state: initial}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies an action and notifies subscribers. Slow subscribers
// only ever see the latest state. Sends never block, so they happen under
// the lock to keep notifications in dispatch order.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := a.reduce(s.state)
	next.Version = s.state.Version + 1
	s.state = next

	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
			// drop the stale pending value and replace it
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
	return next
}

// Subscribe returns a channel that receives the state after each dispatch
func (s *Store) Subscribe() <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Select applies a selector to the current state
func Select[T any](s *Store, sel func(State) T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sel(s.state)
}
