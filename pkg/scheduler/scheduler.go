package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// OverdueProcessor is the part of the loan service the scheduler drives
type OverdueProcessor interface {
	ProcessOverdue(ctx context.Context) error
}

// Scheduler periodically marks past-due installments as overdue
type Scheduler struct {
	processor OverdueProcessor
	logger    *logrus.Logger
	stop      chan struct{}
	done      chan struct{}
}

// NewScheduler creates a new Scheduler
func NewScheduler(processor OverdueProcessor, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		processor: processor,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start runs the overdue pass immediately and then on every tick of the
// given interval until Stop is called.
func (s *Scheduler) Start(interval time.Duration) {
	go func() {
		defer close(s.done)

		s.run()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop stops the scheduler and waits for the current pass to finish
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.processor.ProcessOverdue(ctx); err != nil {
		s.logger.Warnf("Overdue pass failed: %v", err)
	}
}
