// Package history maintains the append-only JSON ledger of attempted
// operations. Persistence is strictly best-effort: a broken ledger never
// fails a bridge operation.
package history

import (
	"encoding/json"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/billyjitsu/across-network-automation/amount"
	"github.com/billyjitsu/across-network-automation/registry"
	"github.com/billyjitsu/across-network-automation/types"

	"github.com/google/uuid"
)

type Recorder struct {
	path string
}

func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Records reads the ledger. A missing or malformed file is an empty ledger,
// not an error.
func (r *Recorder) Records() []types.HistoryRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: cannot read history file %s: %s", r.path, err.Error())
		}
		return []types.HistoryRecord{}
	}

	var records []types.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Warning: history file %s is malformed, starting fresh: %s", r.path, err.Error())
		return []types.HistoryRecord{}
	}
	return records
}

// Append adds one normalized record and rewrites the ledger in full.
// The quote may be nil when acquisition failed. Write failures are logged
// and swallowed.
func (r *Recorder) Append(op types.Operation, result *types.ExecutionResult, quote *types.Quote) {
	records := append(r.Records(), r.build(op, result, quote))

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Printf("Warning: cannot serialize history: %s", err.Error())
		return
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		log.Printf("Warning: cannot write history file %s: %s", r.path, err.Error())
	}
}

func (r *Recorder) build(op types.Operation, result *types.ExecutionResult, quote *types.Quote) types.HistoryRecord {
	rec := types.HistoryRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Operation: types.OperationRecord{
			Name:      op.Name,
			Token:     op.Token,
			FromChain: op.FromChain,
			ToChain:   op.ToChain,
			Amount:    op.Amount,
			IsNative:  op.IsNative,
		},
		Result: types.ResultRecord{
			Success:      result.Success,
			DepositID:    result.DepositID,
			OriginTxHash: result.OriginTxHash,
			DestTxHash:   result.DestTxHash,
			FillTime:     result.FillTime,
			Error:        result.Error,
		},
	}

	if quote != nil {
		decimals := registry.Decimals(op.Token, op.Decimals)
		rec.Result.OutputAmount = formatUnits(quote.OutputAmount, decimals)
		rec.Result.RelayFee = formatUnits(quote.RelayFeeTotal, decimals)
		rec.Result.LpFee = formatUnits(quote.LpFeeTotal, decimals)
	}
	return rec
}

// formatUnits falls back to the raw integer string if human formatting
// produces nothing usable.
func formatUnits(units *big.Int, decimals int) string {
	if s := amount.Format(units, decimals); s != "" {
		return s
	}
	return amount.String(units)
}
