package workers

import (
	"math/big"
	"testing"

	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad wei literal " + s)
	}
	return v
}

func testQuote() *types.Quote {
	return &types.Quote{
		InputAmount:          wei("100000000000000000"), // 0.1
		OutputAmount:         wei("99500000000000000"),  // 0.0995
		EstimatedFillTimeSec: 45,
		RelayFeeTotal:        wei("500000000000000"),
		LpFeeTotal:           big.NewInt(0),
	}
}

func testOp() types.Operation {
	return types.Operation{Name: "test", Token: "ETH", FromChain: 42161, ToChain: 10, Amount: "0.1"}
}

func thresholds(minPct float64, maxFill int) config.Thresholds {
	return config.Thresholds{MinOutputPercentage: minPct, MaxFillTimeSeconds: maxFill}
}

func TestEvaluateQuoteAccepts(t *testing.T) {
	assert.True(t, EvaluateQuote(testQuote(), testOp(), thresholds(0.995, 60)))
}

func TestEvaluateQuoteRejectsSlowFill(t *testing.T) {
	// output percentage passes, fill time alone fails
	assert.False(t, EvaluateQuote(testQuote(), testOp(), thresholds(0.995, 30)))
}

func TestEvaluateQuoteRejectsLowOutput(t *testing.T) {
	assert.False(t, EvaluateQuote(testQuote(), testOp(), thresholds(0.996, 60)))
}

func TestEvaluateQuoteMonotonicInMinOutput(t *testing.T) {
	quote := testQuote()
	op := testOp()

	prev := true
	for _, minPct := range []float64{0.90, 0.95, 0.99, 0.995, 0.9951, 0.999, 1.0} {
		ok := EvaluateQuote(quote, op, thresholds(minPct, 60))
		if !prev {
			require.False(t, ok, "raising min output percentage to %f turned a reject back into an accept", minPct)
		}
		prev = ok
	}
}

func TestEvaluateQuoteRecomputesInput(t *testing.T) {
	// the quote claims a larger input than the operation actually encodes;
	// the evaluator must use the operation's amount
	quote := testQuote()
	quote.InputAmount = wei("200000000000000000")
	assert.True(t, EvaluateQuote(quote, testOp(), thresholds(0.995, 60)))
}

func TestEvaluateQuoteBadAmount(t *testing.T) {
	op := testOp()
	op.Amount = "garbage"
	assert.False(t, EvaluateQuote(testQuote(), op, thresholds(0.5, 60)))
}
