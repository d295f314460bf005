package notify_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mlbahja/blogger/internal/notify"
	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/mlbahja/blogger/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	var c notify.Counter
	require.Zero(t, c.Value())

	require.Zero(t, c.Decrement(), "never below zero")
	c.Set(2)
	require.Equal(t, int64(1), c.Decrement())
	require.Equal(t, int64(0), c.Decrement())
	require.Equal(t, int64(0), c.Decrement())

	c.Set(-4)
	require.Zero(t, c.Value())

	c.Set(7)
	c.Reset()
	require.Zero(t, c.Value())
}

func TestPollerFetchesImmediately(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	fetch := func(context.Context) (int64, error) {
		calls.Add(1)
		return 3, nil
	}

	counter := &notify.Counter{}
	p := notify.NewPoller(fetch, counter, slogx.Discard(), time.Hour)
	p.Start()
	defer p.Stop()

	require.Eventually(t, func() bool { return counter.Value() == 3 }, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestPollerTicksAndReportsChanges(t *testing.T) {
	t.Parallel()

	var n atomic.Int64
	fetch := func(context.Context) (int64, error) {
		return n.Add(1), nil
	}

	var (
		mu   sync.Mutex
		seen []int64
	)
	p := notify.NewPoller(fetch, nil, slogx.Discard(), 5*time.Millisecond)
	p.OnChange = func(v int64) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	}
	p.Start()

	require.Eventually(t, func() bool { return p.Counter.Value() >= 3 }, time.Second, time.Millisecond)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 3)
	require.Equal(t, int64(1), seen[0])
}

func TestPollerKeepsValueOnError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	fetch := func(context.Context) (int64, error) {
		if calls.Add(1) == 1 {
			return 5, nil
		}
		return 0, errors.New("offline")
	}

	counter := &notify.Counter{}
	p := notify.NewPoller(fetch, counter, slogx.Discard(), 5*time.Millisecond)
	p.Start()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	p.Stop()
	require.Equal(t, int64(5), counter.Value())
}

func TestPollerStopCancelsFetch(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	fetch := func(ctx context.Context) (int64, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}

	p := notify.NewPoller(fetch, nil, slogx.Discard(), 0)
	require.Equal(t, notify.DefaultInterval, p.Interval)
	p.Start()
	<-started

	done := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestPollerStopWithoutStart(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	fetch := func(ctx context.Context) (int64, error) {
		calls.Add(1)
		return 0, nil
	}
	p := notify.NewPoller(fetch, nil, slogx.Discard(), time.Hour)

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop on an idle poller did not return")
	}
	require.Zero(t, calls.Load())
}

type fakeAPI struct {
	failMark bool
	unread   int64
	marked   []int64
	allRead  bool
}

func (f *fakeAPI) Notifications(context.Context) ([]blogsdk.Notification, error) {
	return []blogsdk.Notification{{ID: 1}, {ID: 2, IsRead: true}}, nil
}

func (f *fakeAPI) UnreadNotifications(context.Context) ([]blogsdk.Notification, error) {
	return []blogsdk.Notification{{ID: 1}}, nil
}

func (f *fakeAPI) UnreadCount(context.Context) (int64, error) { return f.unread, nil }

func (f *fakeAPI) MarkNotificationRead(_ context.Context, id int64) error {
	if f.failMark {
		return errors.New("boom")
	}
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeAPI) MarkAllNotificationsRead(context.Context) error {
	if f.failMark {
		return errors.New("boom")
	}
	f.allRead = true
	return nil
}

func (f *fakeAPI) DeleteNotification(context.Context, int64) error { return nil }

func (f *fakeAPI) DeleteReadNotifications(context.Context) error { return nil }

func TestService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("mark read decrements, mark all resets", func(t *testing.T) {
		api := &fakeAPI{unread: 2}
		svc := notify.NewService(api, nil)

		n, err := svc.Refresh(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), n)

		require.NoError(t, svc.MarkRead(ctx, 10))
		require.Equal(t, int64(1), svc.Counter().Value())
		require.NoError(t, svc.MarkRead(ctx, 11))
		require.NoError(t, svc.MarkRead(ctx, 12))
		require.Zero(t, svc.Counter().Value())
		require.Equal(t, []int64{10, 11, 12}, api.marked)

		svc.Counter().Set(9)
		require.NoError(t, svc.MarkAllRead(ctx))
		require.True(t, api.allRead)
		require.Zero(t, svc.Counter().Value())
	})

	t.Run("failures leave the count alone", func(t *testing.T) {
		api := &fakeAPI{failMark: true}
		counter := &notify.Counter{}
		counter.Set(4)
		svc := notify.NewService(api, counter)

		require.Error(t, svc.MarkRead(ctx, 1))
		require.Error(t, svc.MarkAllRead(ctx))
		require.Equal(t, int64(4), counter.Value())
	})

	t.Run("poller shares the counter", func(t *testing.T) {
		api := &fakeAPI{unread: 6}
		svc := notify.NewService(api, nil)

		p := svc.NewPoller(slogx.Discard(), time.Hour)
		p.Start()
		defer p.Stop()

		require.Eventually(t, func() bool { return svc.Counter().Value() == 6 }, time.Second, 5*time.Millisecond)
	})

	t.Run("list passthrough", func(t *testing.T) {
		svc := notify.NewService(&fakeAPI{}, nil)
		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		unread, err := svc.Unread(ctx)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		require.NoError(t, svc.Delete(ctx, 1))
		require.NoError(t, svc.DeleteRead(ctx))
	})
}
