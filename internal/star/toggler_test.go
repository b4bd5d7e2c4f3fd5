package star

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replayview/internal/store"
	"replayview/internal/types"
)

type mutationCall struct {
	id      string
	starred bool
}

type fakeMutator struct {
	mu    sync.Mutex
	calls []mutationCall
	err   error
}

func (f *fakeMutator) MarkSessionAsStarred(_ context.Context, id string, starred bool) (*types.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, mutationCall{id: id, starred: starred})
	if f.err != nil {
		return nil, f.err
	}
	return &types.Session{SecureID: id, Starred: starred}, nil
}

func seededCache(t *testing.T, starred bool) store.SessionCache {
	t.Helper()
	cache := store.NewMemorySessionCache()
	require.NoError(t, cache.Put(context.Background(), &types.Session{SecureID: "abc", Starred: starred}))
	return cache
}

func cachedStarred(t *testing.T, cache store.SessionCache) bool {
	t.Helper()
	session, ok, err := cache.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, ok)
	return session.Starred
}

func TestBeginFlipsCacheBeforeResponse(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, false)
	mutator := &fakeMutator{}
	toggler := New(cache, mutator)

	req, session, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)

	assert.True(t, req.Starred)
	assert.True(t, session.Starred)
	assert.True(t, cachedStarred(t, cache))
	assert.Equal(t, StatePending, toggler.State("abc"))
	assert.Empty(t, mutator.calls)

	outcome := toggler.Send(ctx, req)
	require.NoError(t, outcome.Err)
	assert.Equal(t, []mutationCall{{id: "abc", starred: true}}, mutator.calls)
	assert.Equal(t, StateSynced, outcome.State)
	assert.Equal(t, NoticeSuccess, outcome.Notice.Level)
	assert.Equal(t, SuccessMessage, outcome.Notice.Text)
	assert.Equal(t, NoticeDuration, outcome.Notice.Duration)
	assert.True(t, outcome.Session.Starred)
}

func TestFailureKeepsOptimisticValueByDefault(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, false)
	boom := errors.New("boom")
	toggler := New(cache, &fakeMutator{err: boom})

	req, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	outcome := toggler.Send(ctx, req)

	assert.ErrorIs(t, outcome.Err, boom)
	assert.Equal(t, StateFailed, outcome.State)
	assert.Equal(t, NoticeError, outcome.Notice.Level)
	assert.Equal(t, FailureMessage, outcome.Notice.Text)
	assert.True(t, outcome.Session.Starred)
	assert.True(t, cachedStarred(t, cache))
	assert.ErrorIs(t, toggler.LastError("abc"), boom)
}

func TestFailureRollsBackWhenEnabled(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, false)
	toggler := New(cache, &fakeMutator{err: errors.New("boom")}, WithRollback(true))

	req, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	outcome := toggler.Send(ctx, req)

	assert.False(t, outcome.Session.Starred)
	assert.False(t, cachedStarred(t, cache))
	assert.Equal(t, StateFailed, toggler.State("abc"))
}

func TestRollbackAfterRepeatedFailuresReturnsToLastConfirmed(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, true)
	mutator := &fakeMutator{err: errors.New("boom")}
	toggler := New(cache, mutator, WithRollback(true))

	first, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	second, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, first.Starred)
	assert.True(t, second.Starred)

	toggler.Complete(ctx, first, nil, errors.New("boom"))
	toggler.Complete(ctx, second, nil, errors.New("boom"))

	assert.True(t, cachedStarred(t, cache))
}

func TestOverlappingRequestsLastResolvingWins(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, false)
	toggler := New(cache, nil)

	first, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	second, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, first.Starred)
	assert.False(t, second.Starred)
	assert.False(t, cachedStarred(t, cache))

	outcome := toggler.Complete(ctx, second, &types.Session{Starred: false}, nil)
	assert.Equal(t, StatePending, outcome.State)
	outcome = toggler.Complete(ctx, first, &types.Session{Starred: true}, nil)
	assert.Equal(t, StateSynced, outcome.State)

	assert.True(t, cachedStarred(t, cache))
}

func TestSuccessClearsFailedState(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, false)
	toggler := New(cache, nil)

	req, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	toggler.Complete(ctx, req, nil, errors.New("boom"))
	require.Equal(t, StateFailed, toggler.State("abc"))

	req, _, err = toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	outcome := toggler.Complete(ctx, req, &types.Session{Starred: false}, nil)

	assert.Equal(t, StateSynced, outcome.State)
	assert.NoError(t, toggler.LastError("abc"))
	assert.False(t, cachedStarred(t, cache))
}

func TestSendWithoutMutatorFails(t *testing.T) {
	ctx := context.Background()
	toggler := New(seededCache(t, false), nil)

	req, _, err := toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	outcome := toggler.Send(ctx, req)
	assert.Error(t, outcome.Err)
}

func TestBeginSetUsesExplicitValue(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, true)
	toggler := New(cache, &fakeMutator{})

	req, session, err := toggler.BeginSet(ctx, "abc", true)
	require.NoError(t, err)
	assert.True(t, req.Starred)
	assert.True(t, session.Starred)
}

func TestBeginRequiresCachedSession(t *testing.T) {
	toggler := New(store.NewMemorySessionCache(), &fakeMutator{})

	_, _, err := toggler.Begin(context.Background(), "abc")
	assert.ErrorIs(t, err, store.ErrSessionNotCached)

	_, _, err = toggler.Begin(context.Background(), " ")
	assert.Error(t, err)
}

func TestStoreKeepsOptimisticFlagWhileUnresolved(t *testing.T) {
	ctx := context.Background()
	cache := seededCache(t, false)
	toggler := New(cache, nil)

	stored, err := toggler.Store(ctx, &types.Session{SecureID: "abc", City: "Austin"})
	require.NoError(t, err)
	assert.False(t, stored.Starred)
	assert.Equal(t, "Austin", stored.City)

	_, _, err = toggler.Begin(ctx, "abc")
	require.NoError(t, err)
	stored, err = toggler.Store(ctx, &types.Session{SecureID: "abc", Starred: false, City: "Dallas"})
	require.NoError(t, err)
	assert.True(t, stored.Starred)
	assert.Equal(t, "Dallas", stored.City)
	assert.True(t, cachedStarred(t, cache))
}

func TestSyncStateString(t *testing.T) {
	assert.Equal(t, "synced", StateSynced.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "failed", StateFailed.String())
}
