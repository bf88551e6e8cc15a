// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// InvoiceRetrier issues invoices that a payment confirmation left behind.
type InvoiceRetrier interface {
	RetryPending(ctx context.Context, limit int) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	retrier InvoiceRetrier
	batch   int
	timeout time.Duration
	running atomic.Bool
}

func New(retrier InvoiceRetrier, batch int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		retrier: retrier,
		batch:   batch,
		timeout: time.Minute,
	}
}

// Start registers the invoice retry job on spec (cron syntax or @every) and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RetryInvoices); err != nil {
		return fmt.Errorf("invalid invoice retry schedule %q: %w", spec, err)
	}
	s.cron.Start()
	logrus.Infof("invoice retry scheduled %s", spec)
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RetryInvoices is one pass of the job. Overlapping runs are skipped.
func (s *Scheduler) RetryInvoices() {
	if !s.running.CompareAndSwap(false, true) {
		logrus.Warn("invoice retry still running, skipping")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	issued, err := s.retrier.RetryPending(ctx, s.batch)
	if err != nil {
		logrus.Errorf("invoice retry: %v", err)
		return
	}
	if issued > 0 {
		logrus.Infof("invoice retry issued %d invoices", issued)
	}
}
