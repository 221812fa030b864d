// Package spokepool binds the Across V3 SpokePool methods the bridge uses:
// the depositV3 call and deposit-id extraction from its event.
package spokepool

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

const abiJSON = `[
	{"inputs":[
		{"name":"depositor","type":"address"},
		{"name":"recipient","type":"address"},
		{"name":"inputToken","type":"address"},
		{"name":"outputToken","type":"address"},
		{"name":"inputAmount","type":"uint256"},
		{"name":"outputAmount","type":"uint256"},
		{"name":"destinationChainId","type":"uint256"},
		{"name":"exclusiveRelayer","type":"address"},
		{"name":"quoteTimestamp","type":"uint32"},
		{"name":"fillDeadline","type":"uint32"},
		{"name":"exclusivityDeadline","type":"uint32"},
		{"name":"message","type":"bytes"}
	],"name":"depositV3","outputs":[],"stateMutability":"payable","type":"function"},
	{"anonymous":false,"inputs":[
		{"indexed":false,"name":"inputToken","type":"address"},
		{"indexed":false,"name":"outputToken","type":"address"},
		{"indexed":false,"name":"inputAmount","type":"uint256"},
		{"indexed":false,"name":"outputAmount","type":"uint256"},
		{"indexed":true,"name":"destinationChainId","type":"uint256"},
		{"indexed":true,"name":"depositId","type":"uint32"},
		{"indexed":false,"name":"quoteTimestamp","type":"uint32"},
		{"indexed":false,"name":"fillDeadline","type":"uint32"},
		{"indexed":false,"name":"exclusivityDeadline","type":"uint32"},
		{"indexed":true,"name":"depositor","type":"address"},
		{"indexed":false,"name":"recipient","type":"address"},
		{"indexed":false,"name":"exclusiveRelayer","type":"address"},
		{"indexed":false,"name":"message","type":"bytes"}
	],"name":"V3FundsDeposited","type":"event"}
]`

type DepositArgs struct {
	Depositor           common.Address
	Recipient           common.Address
	InputToken          common.Address
	OutputToken         common.Address
	InputAmount         *big.Int
	OutputAmount        *big.Int
	DestinationChainID  *big.Int
	ExclusiveRelayer    common.Address
	QuoteTimestamp      uint32
	FillDeadline        uint32
	ExclusivityDeadline uint32
	Message             []byte
}

type SpokePool struct {
	contract *bind.BoundContract
	abi      abi.ABI
}

func NewSpokePool(address common.Address, backend bind.ContractBackend) (*SpokePool, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}
	return &SpokePool{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		abi:      parsed,
	}, nil
}

func (s *SpokePool) DepositV3(opts *bind.TransactOpts, args DepositArgs) (*ethtypes.Transaction, error) {
	return s.contract.Transact(opts, "depositV3",
		args.Depositor, args.Recipient, args.InputToken, args.OutputToken,
		args.InputAmount, args.OutputAmount, args.DestinationChainID,
		args.ExclusiveRelayer, args.QuoteTimestamp, args.FillDeadline,
		args.ExclusivityDeadline, args.Message)
}

// DepositID extracts the deposit id from a receipt's V3FundsDeposited log,
// or nil when no such log is present.
func (s *SpokePool) DepositID(receipt *ethtypes.Receipt) *int64 {
	eventID := s.abi.Events["V3FundsDeposited"].ID
	for _, l := range receipt.Logs {
		// signature plus 3 indexed args
		if len(l.Topics) != 4 || l.Topics[0] != eventID {
			continue
		}
		// depositId is the second indexed argument
		id := new(big.Int).SetBytes(l.Topics[2].Bytes()).Int64()
		return &id
	}
	return nil
}
