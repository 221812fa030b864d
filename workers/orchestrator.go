package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/metrics"
	"github.com/billyjitsu/across-network-automation/registry"
	"github.com/billyjitsu/across-network-automation/types"
)

// Quoter turns an operation into a quote and the route it was priced for.
type Quoter interface {
	Quote(ctx context.Context, op types.Operation) (*types.Quote, *types.Route, error)
}

// BridgeExecutor submits a quoted transfer, reporting steps via the callback.
type BridgeExecutor interface {
	Execute(ctx context.Context, route *types.Route, quote *types.Quote, onProgress func(types.ProgressEvent)) error
}

// Recorder appends one attempted operation to the ledger.
type Recorder interface {
	Append(op types.Operation, result *types.ExecutionResult, quote *types.Quote)
}

// Orchestrator processes configured operations one at a time, in order:
// quote, threshold check, execute, poll, record.
type Orchestrator struct {
	Quoter      Quoter
	Executor    BridgeExecutor
	Poller      *Poller
	Recorder    Recorder
	Thresholds  config.Thresholds
	AutoExecute bool
	Notify      bool
	State       *types.RunState
}

// Run processes every enabled operation sequentially. A failure in one
// operation never prevents the next from running.
func (o *Orchestrator) Run(ctx context.Context, ops []types.Operation) {
	for _, op := range ops {
		if !op.Enabled {
			log.Printf("Skipping disabled operation %s", op.Name)
			continue
		}

		if o.State != nil {
			o.State.SetCurrent(op.Name)
		}
		result := o.runOperation(ctx, op)
		if o.State != nil {
			o.State.Done(result.Success)
		}

		outcome := "failed"
		if result.Success {
			outcome = "success"
		}
		metrics.OperationsTotal.WithLabelValues(op.Token, outcome).Inc()
	}

	if o.State != nil {
		o.State.Finish()
	}
}

func (o *Orchestrator) runOperation(ctx context.Context, op types.Operation) (result *types.ExecutionResult) {
	result = &types.ExecutionResult{}
	var quote *types.Quote

	// the operation boundary: panics become failed results, and every
	// attempt is recorded no matter how it ended
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Operation %s aborted: %v", op.Name, r)
			result.Success = false
			result.Error = fmt.Sprintf("%v", r)
		}
		o.Recorder.Append(op, result, quote)
	}()

	log.Printf("Processing operation %s: %s", op.Name, registry.Describe(op))

	q, route, err := o.Quoter.Quote(ctx, op)
	if err != nil {
		log.Printf("Quote for %s failed: %s", op.Name, err.Error())
		result.Error = err.Error()
		return result
	}
	quote = q
	metrics.QuotesTotal.WithLabelValues(op.Token).Inc()

	accepted := EvaluateQuote(quote, op, o.Thresholds)
	for attempt := 1; !accepted && o.Thresholds.Retry.Enabled && attempt < o.Thresholds.Retry.MaxAttempts; attempt++ {
		delay := time.Duration(o.Thresholds.Retry.DelayMinutes) * time.Minute
		log.Printf("Re-quoting %s in %s (attempt %d/%d)", op.Name, delay, attempt+1, o.Thresholds.Retry.MaxAttempts)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			result.Error = ctx.Err().Error()
			return result
		}

		q, r, err := o.Quoter.Quote(ctx, op)
		if err != nil {
			log.Printf("Re-quote for %s failed: %s", op.Name, err.Error())
			continue
		}
		quote, route = q, r
		metrics.QuotesTotal.WithLabelValues(op.Token).Inc()
		accepted = EvaluateQuote(quote, op, o.Thresholds)
	}

	if !accepted {
		metrics.QuotesRejected.WithLabelValues(op.Token).Inc()
		if o.Notify {
			log.Printf("NOTICE: quote for %s stayed below thresholds, not executing", op.Name)
		}
		result.Error = "Quote did not meet thresholds"
		return result
	}

	if !o.AutoExecute {
		log.Printf("Auto-execute is disabled, skipping execution of %s", op.Name)
		result.Error = "Auto-execute disabled"
		return result
	}

	if err := o.Executor.Execute(ctx, route, quote, result.Apply); err != nil {
		log.Printf("Execution of %s failed: %s", op.Name, err.Error())
		result.Error = err.Error()
	}

	if result.DepositID != nil && !result.Success {
		confirmed, status := o.Poller.Poll(ctx, op.FromChain, *result.DepositID)
		if confirmed {
			ev := types.ProgressEvent{Step: types.StepFill, Status: types.StatusTxSuccess}
			if status != nil {
				ev.TxHash = status.FillTx
				ev.Timestamp = status.FillTimestamp
			}
			result.Apply(ev)
		}
	}

	return result
}
