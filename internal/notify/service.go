package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mlbahja/blogger/pkg/blogsdk"
)

// API is the notification subset of *blogsdk.Client.
type API interface {
	Notifications(ctx context.Context) ([]blogsdk.Notification, error)
	UnreadNotifications(ctx context.Context) ([]blogsdk.Notification, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int64) error
	DeleteReadNotifications(ctx context.Context) error
}

// Service wraps the notification endpoints so the local Counter follows
// every change the user makes.
type Service struct {
	api     API
	counter *Counter
}

func NewService(api API, counter *Counter) *Service {
	if counter == nil {
		counter = &Counter{}
	}
	return &Service{api: api, counter: counter}
}

func (s *Service) Counter() *Counter { return s.counter }

// Refresh fetches the unread count and stores it.
func (s *Service) Refresh(ctx context.Context) (int64, error) {
	n, err := s.api.UnreadCount(ctx)
	if err != nil {
		return 0, err
	}
	s.counter.Set(n)
	return n, nil
}

func (s *Service) List(ctx context.Context) ([]blogsdk.Notification, error) {
	return s.api.Notifications(ctx)
}

func (s *Service) Unread(ctx context.Context) ([]blogsdk.Notification, error) {
	return s.api.UnreadNotifications(ctx)
}

// MarkRead marks one notification read and decrements the count.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	s.counter.Decrement()
	return nil
}

// MarkAllRead marks everything read and zeroes the count.
func (s *Service) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}
	s.counter.Reset()
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteNotification(ctx, id)
}

func (s *Service) DeleteRead(ctx context.Context) error {
	return s.api.DeleteReadNotifications(ctx)
}

// NewPoller returns a poller that refreshes this service's counter.
func (s *Service) NewPoller(logger *slog.Logger, interval time.Duration) *Poller {
	return NewPoller(s.api.UnreadCount, s.counter, logger, interval)
}
