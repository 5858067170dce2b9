package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often the book is checked.
const DefaultInterval = time.Minute

// Notifier delivers a due reminder to the user.
type Notifier interface {
	Notify(Reminder) error
}

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(Reminder) error

func (f NotifierFunc) Notify(r Reminder) error {
	return f(r)
}

// Service polls a Book on a fixed interval. A reminder whose minute passes
// between two checks is missed; there is no catch-up.
type Service struct {
	book     *Book
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(book *Book, notifier Notifier, interval time.Duration, logger *zap.Logger) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		book:     book,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run checks the book until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check()
		}
	}
}

// Check notifies every reminder due right now and returns how many fired.
// Delivery failures are logged and the reminder is not retried.
func (s *Service) Check() int {
	due := s.book.Due(s.now())
	for _, r := range due {
		if err := s.notifier.Notify(r); err != nil {
			s.logger.Warn("reminder notification failed", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		s.logger.Info("reminder fired", zap.String("id", r.ID), zap.String("text", r.Text))
	}
	return len(due)
}
