package workers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/billyjitsu/across-network-automation/across"
	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/metrics"
)

// StatusClient is the remote deposit-status endpoint.
type StatusClient interface {
	DepositStatus(ctx context.Context, originChainID int, depositID int64) (*across.DepositStatus, error)
}

// Poller repeatedly queries the status endpoint for one deposit until a
// terminal status arrives or the attempt budget runs out.
type Poller struct {
	Client      StatusClient
	MaxAttempts int
	Interval    time.Duration
}

func NewPoller(client StatusClient, mon config.Monitoring) *Poller {
	return &Poller{
		Client:      client,
		MaxAttempts: mon.MaxPollingAttempts,
		Interval:    time.Duration(mon.StatusPollingIntervalMs) * time.Millisecond,
	}
}

var terminalSuccess = map[string]bool{
	"filled":  true,
	"success": true,
	"fill":    true,
}

// Poll returns (true, status) once a terminal success status is seen, and
// (false, last status) on terminal failure or an exhausted budget. Request
// errors retry like "in progress" but a run of consecutive failures aborts
// early instead of burning the rest of the budget on a dead endpoint.
func (p *Poller) Poll(ctx context.Context, originChainID int, depositID int64) (bool, *across.DepositStatus) {
	consecutiveErrors := 0

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		metrics.PollAttempts.Inc()

		status, err := p.Client.DepositStatus(ctx, originChainID, depositID)
		if err != nil {
			consecutiveErrors++
			log.Printf("Status poll %d/%d for deposit %d failed: %s", attempt, p.MaxAttempts, depositID, err.Error())
			if consecutiveErrors >= config.POLL_MAX_CONSECUTIVE_ERRORS {
				log.Printf("Status endpoint unreachable %d times in a row, giving up on deposit %d, verify manually", consecutiveErrors, depositID)
				return false, nil
			}
		} else {
			consecutiveErrors = 0
			s := strings.ToLower(status.Status)
			log.Printf("Status poll %d/%d for deposit %d: %s", attempt, p.MaxAttempts, depositID, s)

			if terminalSuccess[s] {
				return true, status
			}
			if s == "failed" {
				return false, status
			}
		}

		if attempt < p.MaxAttempts {
			select {
			case <-time.After(p.Interval):
			case <-ctx.Done():
				return false, nil
			}
		}
	}

	log.Printf("Polling budget exhausted for deposit %d without a terminal status, verify manually", depositID)
	return false, nil
}
