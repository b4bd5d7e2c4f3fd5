// Package star owns the starred flag of replay sessions: the optimistic cache
// flip on activation, the mutation, and the per-session sync state that
// reconciles overlapping requests.
package star

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"replayview/internal/logging"
	"replayview/internal/store"
	"replayview/internal/types"
)

const (
	SuccessMessage = "Updated session status!"
	FailureMessage = "Error updating session status!"
	NoticeDuration = 3 * time.Second
)

type SyncState int

const (
	StateSynced SyncState = iota
	StatePending
	StateFailed
)

func (s SyncState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	default:
		return "synced"
	}
}

type Mutator interface {
	MarkSessionAsStarred(ctx context.Context, secureID string, starred bool) (*types.Session, error)
}

// Request is one in-flight mutation. Starred is the value sent to the backend.
type Request struct {
	SessionID string
	Starred   bool
	Seq       uint64
}

type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is the transient message a finished request should surface once.
type Notice struct {
	Level    NoticeLevel
	Text     string
	Duration time.Duration
}

type Outcome struct {
	Request Request
	// Session is the cache entry after the outcome was applied.
	Session *types.Session
	State   SyncState
	Notice  Notice
	Err     error
}

type entry struct {
	state       SyncState
	outstanding int
	confirmed   bool
	lastErr     error
}

type Toggler struct {
	cache    store.SessionCache
	mutator  Mutator
	rollback bool
	logger   logging.Logger

	mu      sync.Mutex
	seq     uint64
	entries map[string]*entry
}

type Option func(*Toggler)

// WithRollback reverts the cache to the last confirmed value when a request
// fails instead of leaving the optimistic value in place.
func WithRollback(enabled bool) Option {
	return func(t *Toggler) {
		t.rollback = enabled
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(t *Toggler) {
		if logger != nil {
			t.logger = logging.Component(logger, "star")
		}
	}
}

func New(cache store.SessionCache, mutator Mutator, opts ...Option) *Toggler {
	t := &Toggler{
		cache:   cache,
		mutator: mutator,
		logger:  logging.Nop(),
		entries: map[string]*entry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Begin flips the cached starred flag and registers a request asking the
// backend for the flipped value.
func (t *Toggler) Begin(ctx context.Context, sessionID string) (Request, *types.Session, error) {
	return t.begin(ctx, sessionID, func(current bool) bool { return !current })
}

// BeginSet is Begin with an explicit target value.
func (t *Toggler) BeginSet(ctx context.Context, sessionID string, starred bool) (Request, *types.Session, error) {
	return t.begin(ctx, sessionID, func(bool) bool { return starred })
}

func (t *Toggler) begin(ctx context.Context, sessionID string, desired func(current bool) bool) (Request, *types.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Request{}, nil, errors.New("session id is required")
	}
	if t.cache == nil {
		return Request{}, nil, errors.New("session cache is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var previous, target bool
	updated, err := t.cache.Modify(ctx, sessionID, func(s *types.Session) {
		previous = s.Starred
		target = desired(previous)
		s.Starred = target
	})
	if err != nil {
		return Request{}, nil, fmt.Errorf("optimistic star update: %w", err)
	}

	e := t.entryLocked(sessionID)
	if e.outstanding == 0 && e.state != StateFailed {
		e.confirmed = previous
	}
	e.outstanding++
	e.state = StatePending
	t.seq++
	req := Request{SessionID: sessionID, Starred: target, Seq: t.seq}
	t.logger.Debug("star request started",
		logging.F("session", sessionID),
		logging.F("starred", target),
		logging.F("seq", req.Seq),
		logging.F("outstanding", e.outstanding))
	return req, updated, nil
}

// Send performs the mutation for req and applies the result. It blocks for the
// duration of the request and is meant to run off the UI loop.
func (t *Toggler) Send(ctx context.Context, req Request) Outcome {
	if t.mutator == nil {
		return t.Complete(ctx, req, nil, errors.New("star mutator is not configured"))
	}
	resp, err := t.mutator.MarkSessionAsStarred(ctx, req.SessionID, req.Starred)
	return t.Complete(ctx, req, resp, err)
}

// Complete applies a finished request. Responses are applied in completion
// order, so the last response to resolve decides the cached value.
func (t *Toggler) Complete(ctx context.Context, req Request, resp *types.Session, err error) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entryLocked(req.SessionID)
	if e.outstanding > 0 {
		e.outstanding--
	}

	if err != nil {
		e.state = StateFailed
		e.lastErr = err
		t.logger.Warn("star request failed",
			logging.F("session", req.SessionID),
			logging.F("seq", req.Seq),
			logging.F("err", err))
		session := t.currentLocked(ctx, req.SessionID)
		if t.rollback {
			confirmed := e.confirmed
			if rolled, modErr := t.cache.Modify(ctx, req.SessionID, func(s *types.Session) {
				s.Starred = confirmed
			}); modErr == nil {
				session = rolled
			}
		}
		return Outcome{
			Request: req,
			Session: session,
			State:   e.state,
			Notice:  Notice{Level: NoticeError, Text: FailureMessage, Duration: NoticeDuration},
			Err:     err,
		}
	}

	starred := req.Starred
	if resp != nil {
		starred = resp.Starred
	}
	e.confirmed = starred
	e.lastErr = nil
	if e.outstanding > 0 {
		e.state = StatePending
	} else {
		e.state = StateSynced
	}
	session, modErr := t.cache.Modify(ctx, req.SessionID, func(s *types.Session) {
		s.Starred = starred
	})
	if modErr != nil {
		t.logger.Warn("star cache patch failed", logging.F("session", req.SessionID), logging.F("err", modErr))
		session = t.currentLocked(ctx, req.SessionID)
	}
	t.logger.Debug("star request done",
		logging.F("session", req.SessionID),
		logging.F("seq", req.Seq),
		logging.F("starred", starred),
		logging.F("state", e.state))
	return Outcome{
		Request: req,
		Session: session,
		State:   e.state,
		Notice:  Notice{Level: NoticeSuccess, Text: SuccessMessage, Duration: NoticeDuration},
	}
}

// Store writes a freshly fetched session into the cache. While a request is
// outstanding or the last one failed, the cached starred flag is kept so a
// poll does not undo the optimistic value.
func (t *Toggler) Store(ctx context.Context, fetched *types.Session) (*types.Session, error) {
	if fetched == nil {
		return nil, errors.New("session is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	next := fetched.Clone()
	key := next.Key()
	if e, ok := t.entries[key]; ok && e.state != StateSynced {
		if cached := t.currentLocked(ctx, key); cached != nil {
			next.Starred = cached.Starred
		}
	}
	if err := t.cache.Put(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (t *Toggler) State(sessionID string) SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[strings.TrimSpace(sessionID)]; ok {
		return e.state
	}
	return StateSynced
}

// LastError returns the error that put the session into StateFailed.
func (t *Toggler) LastError(sessionID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[strings.TrimSpace(sessionID)]; ok {
		return e.lastErr
	}
	return nil
}

func (t *Toggler) entryLocked(sessionID string) *entry {
	e, ok := t.entries[sessionID]
	if !ok {
		e = &entry{}
		t.entries[sessionID] = e
	}
	return e
}

func (t *Toggler) currentLocked(ctx context.Context, sessionID string) *types.Session {
	session, ok, err := t.cache.Get(ctx, sessionID)
	if err != nil || !ok {
		return nil
	}
	return session
}
