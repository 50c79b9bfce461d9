package notify

import (
	"context"
	"sync"
	"time"

	"github.com/perfectpest/pestcontrol-platform/internal/leads"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// Dispatcher runs notifications as detached background work. The HTTP
// response to the submitter never waits on it; failures and panics are
// logged and swallowed.
type Dispatcher struct {
	svc     *Service
	timeout time.Duration
	logger  *logging.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. timeout bounds each notification run.
func NewDispatcher(svc *Service, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		svc:     svc,
		timeout: timeout,
		logger:  logger,
	}
}

// Dispatch schedules notifications for a persisted lead and returns
// immediately.
func (d *Dispatcher) Dispatch(lead *leads.Lead) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notify: dispatch panicked", "panic", r, "lead_id", lead.ID)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.svc.LeadCreated(ctx, lead); err != nil {
			d.logger.Error("notify: dispatch finished with errors", "error", err, "lead_id", lead.ID)
		}
	}()
}

// Close waits for in-flight notifications to finish or the context to
// expire. Used during graceful shutdown.
func (d *Dispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
