package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSuccess(t *testing.T) {
	r := New("hotels", func(context.Context) ([]string, error) {
		return []string{"Lotus Inn"}, nil
	}, nil)
	assert.Equal(t, Idle, r.Snapshot().Status)

	st := r.Load(context.Background())
	assert.Equal(t, Loaded, st.Status)
	assert.Equal(t, []string{"Lotus Inn"}, st.Data)
	assert.Equal(t, st, r.Snapshot())
}

func TestLoadFailureKeepsLastData(t *testing.T) {
	fail := false
	boom := errors.New("boom")
	r := New("hotels", func(context.Context) (int, error) {
		if fail {
			return 0, boom
		}
		return 7, nil
	}, nil)

	r.Load(context.Background())
	fail = true
	st := r.Load(context.Background())

	assert.Equal(t, Failed, st.Status)
	assert.ErrorIs(t, st.Err, boom)
	assert.Equal(t, 7, st.Data)
}

func TestLoadingVisibleDuringFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := New("bookings", func(context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	}, nil)

	done := make(chan State[int])
	go func() { done <- r.Load(context.Background()) }()
	<-started
	assert.Equal(t, Loading, r.Snapshot().Status)
	close(release)
	assert.Equal(t, Loaded, (<-done).Status)
}

func TestCloseDiscardsInFlightResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := New("bookings", func(context.Context) (int, error) {
		close(started)
		<-release
		return 42, nil
	}, nil)

	done := make(chan State[int])
	go func() { done <- r.Load(context.Background()) }()
	<-started
	r.Close()
	close(release)

	st := <-done
	assert.Equal(t, 42, st.Data, "caller still sees its own outcome")
	assert.Zero(t, r.Snapshot().Data, "closed resource is never updated")

	again := r.Load(context.Background())
	assert.ErrorIs(t, again.Err, ErrClosed)
}

func TestNewerLoadSupersedesOlder(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0
	r := New("hotels", func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			close(firstStarted)
			<-releaseFirst
			return "stale", nil
		}
		return "fresh", nil
	}, nil)

	done := make(chan State[string])
	go func() { done <- r.Load(context.Background()) }()
	<-firstStarted

	require.Equal(t, "fresh", r.Load(context.Background()).Data)
	close(releaseFirst)
	<-done

	assert.Equal(t, "fresh", r.Snapshot().Data)
	assert.Equal(t, Loaded, r.Snapshot().Status)
}
