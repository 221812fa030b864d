package workers

import (
	"log"

	"github.com/billyjitsu/across-network-automation/amount"
	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/registry"
	"github.com/billyjitsu/across-network-automation/types"
)

// EvaluateQuote decides whether a quote clears the configured thresholds.
// The input amount is recomputed from the operation rather than trusted from
// the quote. Pure apart from logging.
func EvaluateQuote(quote *types.Quote, op types.Operation, thresholds config.Thresholds) bool {
	decimals := registry.Decimals(op.Token, op.Decimals)
	input, err := amount.Parse(op.Amount, decimals)
	if err != nil {
		log.Printf("Cannot recompute input amount for %s: %s", op.Name, err.Error())
		return false
	}

	outputPct := amount.Ratio(quote.OutputAmount, input)
	outputOK := outputPct >= thresholds.MinOutputPercentage
	timeOK := quote.EstimatedFillTimeSec <= thresholds.MaxFillTimeSeconds

	log.Printf("Output check: %.6f of input (min %.6f) -> %v", outputPct, thresholds.MinOutputPercentage, outputOK)
	log.Printf("Fill time check: %ds (max %ds) -> %v", quote.EstimatedFillTimeSec, thresholds.MaxFillTimeSeconds, timeOK)

	accepted := outputOK && timeOK
	if accepted {
		log.Printf("Quote for %s accepted", op.Name)
	} else {
		log.Printf("Quote for %s rejected", op.Name)
	}
	return accepted
}
