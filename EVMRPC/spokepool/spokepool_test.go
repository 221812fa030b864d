package spokepool

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventSig = "V3FundsDeposited(address,address,uint256,uint256,uint256,uint32,uint32,uint32,uint32,address,address,address,bytes)"

func newPool(t *testing.T) *SpokePool {
	t.Helper()
	pool, err := NewSpokePool(common.Address{}, nil)
	require.NoError(t, err)
	return pool
}

func TestEventSignatureMatchesCanonical(t *testing.T) {
	pool := newPool(t)
	assert.Equal(t, crypto.Keccak256Hash([]byte(eventSig)), pool.abi.Events["V3FundsDeposited"].ID)
}

func TestDepositIDExtraction(t *testing.T) {
	pool := newPool(t)

	receipt := &ethtypes.Receipt{Logs: []*ethtypes.Log{
		{
			// unrelated log, skipped
			Topics: []common.Hash{crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))},
		},
		{
			Topics: []common.Hash{
				pool.abi.Events["V3FundsDeposited"].ID,
				common.BigToHash(big.NewInt(10)),     // destinationChainId
				common.BigToHash(big.NewInt(123456)), // depositId
				common.Hash{},                        // depositor
			},
		},
	}}

	id := pool.DepositID(receipt)
	require.NotNil(t, id)
	assert.Equal(t, int64(123456), *id)
}

func TestDepositIDAbsent(t *testing.T) {
	pool := newPool(t)
	assert.Nil(t, pool.DepositID(&ethtypes.Receipt{}))
}

func TestDepositIDSkipsTruncatedLog(t *testing.T) {
	pool := newPool(t)

	// matching signature but only 2 indexed args present
	receipt := &ethtypes.Receipt{Logs: []*ethtypes.Log{
		{
			Topics: []common.Hash{
				pool.abi.Events["V3FundsDeposited"].ID,
				common.BigToHash(big.NewInt(10)),
				common.BigToHash(big.NewInt(123456)),
			},
		},
	}}

	assert.Nil(t, pool.DepositID(receipt))
}
