// Package store owns the in-memory bundle and its synchronized remote
// persistence. It is the single writer: presentation code reads copies and
// requests changes through the mutation methods, each of which applies
// optimistically and restarts the debounced save window.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/jgfrigo2/medtracker2/internal/debounce"
	"github.com/jgfrigo2/medtracker2/internal/localstore"
	"github.com/jgfrigo2/medtracker2/internal/model"
	"github.com/jgfrigo2/medtracker2/internal/remote"
)

// ErrNotReady is returned by operations that need a loaded, authenticated
// store.
var ErrNotReady = errors.New("store is not ready")

// State tracks the authentication/loading lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Store is the authoritative holder of the user's bundle.
type Store struct {
	remote *remote.Client
	local  *localstore.Store
	saver  *debounce.Timer

	window       time.Duration
	flushRetries uint64

	mu       sync.Mutex
	state    State
	creds    remote.Credentials
	bundle   model.Bundle
	saving   bool
	inflight bool
	dirty    bool // a save fired while another was in flight
}

// New constructs a Store. Options follow the functional pattern; invalid
// options panic, matching construction-time misuse elsewhere in the tool.
func New(rc *remote.Client, ls *localstore.Store, opts ...Option) *Store {
	s := &Store{
		remote:       rc,
		local:        ls,
		window:       2 * time.Second,
		flushRetries: 3,
		bundle:       model.DefaultBundle(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			panic(err)
		}
	}
	s.saver = debounce.New(s.window, s.saveNow)
	return s
}

// Startup decides the initial state from locally stored credentials: absent
// means unauthenticated, present triggers the remote load.
func (s *Store) Startup(ctx context.Context) {
	var creds remote.Credentials
	if !s.local.Read(localstore.KeyCredentials, &creds) || !creds.Valid() {
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.mu.Unlock()
		return
	}
	s.load(ctx, creds)
}

// Login stores credentials and loads the remote document. Remote failures
// are swallowed (cached or default data is substituted), so login only
// fails on empty credentials.
func (s *Store) Login(ctx context.Context, creds remote.Credentials) error {
	if !creds.Valid() {
		return errors.New("api key and bin id are required")
	}
	s.local.Write(localstore.KeyCredentials, creds)
	s.load(ctx, creds)
	return nil
}

// Logout clears credentials and resets in-memory state to defaults. Any
// pending save is dropped; there is nothing left worth persisting for this
// user.
func (s *Store) Logout() {
	s.saver.Stop()
	s.local.Delete(localstore.KeyCredentials)
	s.local.Delete(localstore.KeyBundle)
	s.mu.Lock()
	s.creds = remote.Credentials{}
	s.bundle = model.DefaultBundle()
	s.dirty = false
	s.state = StateUnauthenticated
	s.mu.Unlock()
	log.Info().Msg("logged out")
}

// load fetches the document and installs it. Availability wins over
// consistency: on any fetch failure the last cached snapshot (or an empty
// bundle) is installed and the error is only logged.
func (s *Store) load(ctx context.Context, creds remote.Credentials) {
	s.mu.Lock()
	s.creds = creds
	s.state = StateLoading
	s.mu.Unlock()

	b, err := s.remote.Fetch(ctx, creds)
	if err != nil {
		fetchFailuresTotal.Inc()
		log.Warn().Err(err).Msg("fetch failed, using cached data")
		b = model.DefaultBundle()
		if s.local.Read(localstore.KeyBundle, &b) {
			b.Normalize()
		}
	} else {
		s.local.Write(localstore.KeyBundle, b)
	}

	s.mu.Lock()
	s.bundle = b
	s.state = StateReady
	s.mu.Unlock()
	log.Debug().Int("days", len(b.HealthData)).Msg("store ready")
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Saving reports whether a remote save is currently in flight.
func (s *Store) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Snapshot returns a deep copy of the current bundle.
func (s *Store) Snapshot() model.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.Clone()
}

// saveNow runs when the debounce window elapses. Saves are single-flight:
// if one is already in flight the new snapshot is deferred until it
// returns, then rescheduled, so two PUTs never race for the same document.
func (s *Store) saveNow() {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return
	}
	if s.inflight {
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.inflight = true
	s.saving = true
	creds := s.creds
	snap := s.bundle.Clone()
	s.mu.Unlock()

	start := time.Now()
	err := s.remote.Replace(context.Background(), creds, snap)
	saveDuration.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	s.inflight = false
	s.saving = false
	redo := s.dirty
	s.dirty = false
	s.mu.Unlock()

	if err != nil {
		// Logged only: no retry, no user-visible error for background saves.
		saveFailuresTotal.Inc()
		log.Error().Err(err).Msg("background save failed")
	} else {
		savesTotal.Inc()
		s.local.Write(localstore.KeyBundle, snap)
	}
	if redo {
		s.saver.Trigger()
	}
}

// Flush persists any pending debounced save before returning. Unlike the
// background path it retries recoverable failures with capped exponential
// backoff: losing the final edit of a session is the one case where a retry
// pays for itself.
func (s *Store) Flush(ctx context.Context) error {
	pending := s.saver.Stop()

	s.mu.Lock()
	if s.dirty {
		pending = true
		s.dirty = false
	}
	if s.state != StateReady || !pending {
		s.mu.Unlock()
		return nil
	}
	creds := s.creds
	snap := s.bundle.Clone()
	s.saving = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
	}()

	op := func() error {
		err := s.remote.Replace(ctx, creds, snap)
		if err != nil && !remote.IsRecoverable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	bo := backoff.WithContext(backoff.WithMaxRetries(exp, s.flushRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		saveFailuresTotal.Inc()
		return err
	}
	savesTotal.Inc()
	s.local.Write(localstore.KeyBundle, snap)
	return nil
}

// Close flushes pending work. It does not close the local store; the
// caller owns that handle.
func (s *Store) Close(ctx context.Context) error {
	return s.Flush(ctx)
}
