package types

import (
	"encoding/json"
	"log"
	"math/big"
	"time"
)

// Operation is a single configured bridge transfer: move Amount of Token
// from FromChain to ToChain. Loaded from config.yml, immutable during a run.
type Operation struct {
	Name      string `yaml:"name" json:"name"`
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Token     string `yaml:"token" json:"token"`
	FromChain int    `yaml:"from_chain" json:"fromChain"`
	ToChain   int    `yaml:"to_chain" json:"toChain"`
	// human units, e.g. "0.001"
	Amount string `yaml:"amount" json:"amount"`
	// 0 means resolve from the token registry
	Decimals   int  `yaml:"decimals" json:"decimals,omitempty"`
	IsNative   bool `yaml:"native" json:"isNative"`
	UseBridged bool `yaml:"bridged" json:"useBridged"`
}

// Route describes one direction of a token between two chains,
// with resolved contract addresses on both sides.
type Route struct {
	Token            string
	OriginChainID    int
	DestinationChain int
	InputToken       string
	OutputToken      string
	IsNative         bool
}

// Quote is a priced, time-estimated proposal returned by the bridge API.
// All amounts are in the token's smallest unit.
type Quote struct {
	InputAmount          *big.Int
	OutputAmount         *big.Int
	EstimatedFillTimeSec int
	RelayFeeTotal        *big.Int
	LpFeeTotal           *big.Int
	// quote timestamp required by the deposit call
	Timestamp uint32
}

// TotalFee is the sum of relay and liquidity provider fees.
func (q *Quote) TotalFee() *big.Int {
	total := new(big.Int)
	if q.RelayFeeTotal != nil {
		total.Add(total, q.RelayFeeTotal)
	}
	if q.LpFeeTotal != nil {
		total.Add(total, q.LpFeeTotal)
	}
	return total
}

type Step string

const (
	StepApprove Step = "approve"
	StepDeposit Step = "deposit"
	StepFill    Step = "fill"
)

type StepStatus string

const (
	StatusPending   StepStatus = "pending"
	StatusTxSuccess StepStatus = "txSuccess"
)

// ProgressEvent is one observation of the execution pipeline: a named step
// entering pending or completing with a transaction.
type ProgressEvent struct {
	Step   Step
	Status StepStatus
	TxHash string
	// set on deposit txSuccess
	DepositID *int64
	// fill timestamp as reported remotely, may be a quoted big integer
	// or a plain number
	Timestamp json.Number
}

// ExecutionResult accumulates the outcome of one operation attempt.
// It is mutated by Apply as progress events arrive, then frozen and recorded.
type ExecutionResult struct {
	Success      bool   `json:"success"`
	DepositID    *int64 `json:"depositId"`
	OriginTxHash string `json:"originTxHash,omitempty"`
	DestTxHash   string `json:"destTxHash,omitempty"`
	FillTime     string `json:"fillTime,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Apply folds a progress event into the result, logging each transition.
func (r *ExecutionResult) Apply(ev ProgressEvent) {
	switch ev.Step {
	case StepApprove:
		if ev.Status == StatusPending {
			log.Printf("Approving token spend...")
		} else {
			log.Printf("Approval confirmed, tx: %s", ev.TxHash)
		}
	case StepDeposit:
		if ev.Status == StatusPending {
			log.Printf("Depositing funds on origin chain...")
		} else {
			r.DepositID = ev.DepositID
			r.OriginTxHash = ev.TxHash
			if ev.DepositID != nil {
				log.Printf("Deposit confirmed, id: %d, tx: %s", *ev.DepositID, ev.TxHash)
			} else {
				log.Printf("Deposit confirmed, tx: %s (no deposit id found in logs)", ev.TxHash)
			}
		}
	case StepFill:
		if ev.Status == StatusPending {
			log.Printf("Waiting for fill on destination chain...")
		} else {
			r.Success = true
			if ev.TxHash != "" {
				r.DestTxHash = ev.TxHash
			}
			r.FillTime = renderFillTime(ev.Timestamp)
			log.Printf("Fill confirmed at %s, tx: %s", r.FillTime, r.DestTxHash)
		}
	}
}

// renderFillTime tolerates both integer-string and plain numeric timestamps;
// a value that parses as neither becomes a placeholder rather than an error.
func renderFillTime(ts json.Number) string {
	if ts == "" {
		return "unknown"
	}
	sec, err := ts.Int64()
	if err != nil {
		f, ferr := ts.Float64()
		if ferr != nil {
			return "unknown"
		}
		sec = int64(f)
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// OperationRecord is the normalized operation snapshot stored in history.
type OperationRecord struct {
	Name      string `json:"name"`
	Token     string `json:"token"`
	FromChain int    `json:"fromChain"`
	ToChain   int    `json:"toChain"`
	Amount    string `json:"amount"`
	IsNative  bool   `json:"isNative"`
}

// ResultRecord is the normalized result snapshot stored in history.
// All amount-like values are plain decimal strings.
type ResultRecord struct {
	Success      bool   `json:"success"`
	DepositID    *int64 `json:"depositId"`
	OriginTxHash string `json:"originTxHash,omitempty"`
	DestTxHash   string `json:"destTxHash,omitempty"`
	FillTime     string `json:"fillTime,omitempty"`
	Error        string `json:"error,omitempty"`
	OutputAmount string `json:"outputAmount,omitempty"`
	RelayFee     string `json:"relayFee,omitempty"`
	LpFee        string `json:"lpFee,omitempty"`
}

// HistoryRecord is one appended ledger entry. Records are never edited
// or removed once written.
type HistoryRecord struct {
	ID        string          `json:"id"`
	Timestamp string          `json:"timestamp"`
	Operation OperationRecord `json:"operation"`
	Result    ResultRecord    `json:"result"`
}
