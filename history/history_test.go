package history

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/billyjitsu/across-network-automation/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOp() types.Operation {
	return types.Operation{Name: "eth-arb-to-op", Token: "ETH", FromChain: 42161, ToChain: 10, Amount: "0.001", IsNative: true}
}

func testResult() *types.ExecutionResult {
	id := int64(42)
	return &types.ExecutionResult{Success: true, DepositID: &id, OriginTxHash: "0xorigin", DestTxHash: "0xdest"}
}

func testQuote() *types.Quote {
	out, _ := new(big.Int).SetString("995000000000000", 10)
	relay, _ := new(big.Int).SetString("5000000000000", 10)
	return &types.Quote{
		InputAmount:   big.NewInt(0).Add(out, relay),
		OutputAmount:  out,
		RelayFeeTotal: relay,
		LpFeeTotal:    big.NewInt(0),
	}
}

func readLedger(t *testing.T, path string) []types.HistoryRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []types.HistoryRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	rec := NewRecorder(path)

	rec.Append(testOp(), testResult(), testQuote())

	records := readLedger(t, path)
	require.Len(t, records, 1)
	assert.True(t, records[0].Result.Success)
	assert.Equal(t, "0xorigin", records[0].Result.OriginTxHash)
	assert.Equal(t, "0.000995", records[0].Result.OutputAmount)
	assert.Equal(t, "0.000005", records[0].Result.RelayFee)
	assert.NotEmpty(t, records[0].ID)
	assert.NotEmpty(t, records[0].Timestamp)
}

func TestAppendGrowsExistingLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	rec := NewRecorder(path)

	rec.Append(testOp(), testResult(), testQuote())
	rec.Append(testOp(), &types.ExecutionResult{Error: "Quote did not meet thresholds"}, nil)

	records := readLedger(t, path)
	require.Len(t, records, 2)
	assert.False(t, records[1].Result.Success)
	assert.Equal(t, "Quote did not meet thresholds", records[1].Result.Error)
	assert.Empty(t, records[1].Result.OutputAmount, "no quote, no formatted amounts")
}

func TestMalformedLedgerTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	rec := NewRecorder(path)
	assert.Empty(t, rec.Records())

	rec.Append(testOp(), testResult(), nil)
	records := readLedger(t, path)
	assert.Len(t, records, 1)
}

func TestMissingLedgerIsEmpty(t *testing.T) {
	rec := NewRecorder(filepath.Join(t.TempDir(), "nope.json"))
	assert.Empty(t, rec.Records())
}

func TestWriteFailureDoesNotPanic(t *testing.T) {
	// directory path cannot be written as a file
	rec := NewRecorder(t.TempDir())
	assert.NotPanics(t, func() {
		rec.Append(testOp(), testResult(), nil)
	})
}
