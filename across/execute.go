package across

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/billyjitsu/across-network-automation/EVMRPC"
	"github.com/billyjitsu/across-network-automation/EVMRPC/erc20"
	"github.com/billyjitsu/across-network-automation/EVMRPC/spokepool"
	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/types"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// deposits must fill within this window or become refundable
const fillDeadlineWindow = 5 * time.Hour

// Executor submits approve and depositV3 transactions on the origin chain,
// reporting each step through a progress callback. It performs no polling:
// fill confirmation is the status poller's job.
type Executor struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewExecutor(privateKeyHex string) (*Executor, error) {
	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("error instantiating private key: %s", err)
	}
	return &Executor{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address is the account derived from the signing credential,
// used as both depositor and recipient.
func (e *Executor) Address() common.Address {
	return e.address
}

// Execute runs the approve/deposit flow for a quoted route. Any failure,
// including a panic below the RPC layer, comes back as an error; nothing
// escapes to the caller.
func (e *Executor) Execute(ctx context.Context, route *types.Route, quote *types.Quote, onProgress func(types.ProgressEvent)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("execution panic: %v", r)
		}
	}()

	if err := e.checkBalance(ctx, route, quote.InputAmount); err != nil {
		return err
	}

	return retryDeposit(func(attempt int) error {
		client, err := EVMRPC.Dial(route.OriginChainID, attempt)
		if err != nil {
			return err
		}
		defer client.Close()
		return e.executeOnce(ctx, client, route, quote, onProgress)
	})
}

// broadcastError marks a failure that happened after the deposit transaction
// was accepted by the network. The deposit may still mine, so retrying past
// it would submit a second one.
type broadcastError struct {
	err error
}

func (e *broadcastError) Error() string { return e.err.Error() }
func (e *broadcastError) Unwrap() error { return e.err }

// retryDeposit runs fn up to EVM_RETRIES times, rotating RPC endpoints via
// the attempt number. Only pre-broadcast failures are retried.
func retryDeposit(fn func(attempt int) error) error {
	var retErr error
	for i := 0; i < config.EVM_RETRIES; i++ {
		retErr = fn(i)
		if retErr == nil {
			return nil
		}
		var bcast *broadcastError
		if errors.As(retErr, &bcast) {
			log.Printf("Deposit already broadcast, not retrying: %s", retErr.Error())
			return retErr
		}
		log.Printf("Execution attempt %d failed: %s", i+1, retErr.Error())
	}
	return retErr
}

// checkBalance verifies the wallet can cover the input amount before any
// transaction is sent. An RPC failure here is not fatal, the deposit call
// will surface the real problem.
func (e *Executor) checkBalance(ctx context.Context, route *types.Route, amount *big.Int) error {
	balance, err := EVMRPC.WithClient(route.OriginChainID, func(client *ethclient.Client) (*big.Int, error) {
		if route.IsNative {
			return client.BalanceAt(ctx, e.address, nil)
		}
		token, err := erc20.NewErc20(common.HexToAddress(route.InputToken), client)
		if err != nil {
			return nil, err
		}
		return token.BalanceOf(&bind.CallOpts{Context: ctx}, e.address)
	})
	if err != nil {
		log.Printf("Balance preflight on chain %d failed: %s", route.OriginChainID, err.Error())
		return nil
	}
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient balance on chain %d: have %s, need %s", route.OriginChainID, balance.String(), amount.String())
	}
	return nil
}

func (e *Executor) executeOnce(ctx context.Context, client *ethclient.Client, route *types.Route, quote *types.Quote, onProgress func(types.ProgressEvent)) error {
	spokeAddr := common.HexToAddress(config.Chains[route.OriginChainID].SpokePool)

	pool, err := spokepool.NewSpokePool(spokeAddr, client)
	if err != nil {
		return fmt.Errorf("error instantiating spoke pool contract: %s", err)
	}

	// native deposits attach value, no allowance involved
	if !route.IsNative {
		if err := e.ensureAllowance(ctx, client, route, spokeAddr, quote.InputAmount, onProgress); err != nil {
			return err
		}
	}

	onProgress(types.ProgressEvent{Step: types.StepDeposit, Status: types.StatusPending})

	auth, err := e.transactor(ctx, client, route.OriginChainID)
	if err != nil {
		return err
	}
	auth.GasLimit = uint64(400000)
	if route.IsNative {
		auth.Value = quote.InputAmount
	}

	now := uint32(time.Now().Unix())
	tx, err := pool.DepositV3(auth, spokepool.DepositArgs{
		Depositor:           e.address,
		Recipient:           e.address,
		InputToken:          common.HexToAddress(route.InputToken),
		OutputToken:         common.HexToAddress(route.OutputToken),
		InputAmount:         quote.InputAmount,
		OutputAmount:        quote.OutputAmount,
		DestinationChainID:  big.NewInt(int64(route.DestinationChain)),
		ExclusiveRelayer:    common.Address{},
		QuoteTimestamp:      quote.Timestamp,
		FillDeadline:        now + uint32(fillDeadlineWindow/time.Second),
		ExclusivityDeadline: 0,
	})
	if err != nil {
		return fmt.Errorf("error calling depositV3: %s", err)
	}

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return &broadcastError{err: fmt.Errorf("error waiting for deposit tx %s: %s", tx.Hash().Hex(), err)}
	}
	if receipt.Status != 1 {
		return &broadcastError{err: fmt.Errorf("deposit tx %s reverted", tx.Hash().Hex())}
	}

	onProgress(types.ProgressEvent{
		Step:      types.StepDeposit,
		Status:    types.StatusTxSuccess,
		TxHash:    tx.Hash().Hex(),
		DepositID: pool.DepositID(receipt),
	})

	onProgress(types.ProgressEvent{Step: types.StepFill, Status: types.StatusPending})
	return nil
}

// ensureAllowance approves the spoke pool when the current allowance does
// not cover the input amount. A sufficient allowance skips the step silently.
func (e *Executor) ensureAllowance(ctx context.Context, client *ethclient.Client, route *types.Route, spender common.Address, amount *big.Int, onProgress func(types.ProgressEvent)) error {
	token, err := erc20.NewErc20(common.HexToAddress(route.InputToken), client)
	if err != nil {
		return fmt.Errorf("error instantiating token contract: %s", err)
	}

	allowance, err := token.Allowance(&bind.CallOpts{Context: ctx}, e.address, spender)
	if err != nil {
		return fmt.Errorf("error reading allowance: %s", err)
	}
	if allowance.Cmp(amount) >= 0 {
		return nil
	}

	onProgress(types.ProgressEvent{Step: types.StepApprove, Status: types.StatusPending})

	auth, err := e.transactor(ctx, client, route.OriginChainID)
	if err != nil {
		return err
	}
	auth.GasLimit = uint64(100000)

	tx, err := token.Approve(auth, spender, amount)
	if err != nil {
		return fmt.Errorf("error calling approve method: %s", err)
	}

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return fmt.Errorf("error waiting for approve tx %s: %s", tx.Hash().Hex(), err)
	}
	if receipt.Status != 1 {
		return fmt.Errorf("approve tx %s reverted", tx.Hash().Hex())
	}

	onProgress(types.ProgressEvent{Step: types.StepApprove, Status: types.StatusTxSuccess, TxHash: tx.Hash().Hex()})
	return nil
}

func (e *Executor) transactor(ctx context.Context, client *ethclient.Client, chainID int) (*bind.TransactOpts, error) {
	nonce, err := client.PendingNonceAt(ctx, e.address)
	if err != nil {
		return nil, fmt.Errorf("error getting nonce for wallet: %s", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting suggested gas price: %s", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(e.key, big.NewInt(int64(chainID)))
	if err != nil {
		return nil, fmt.Errorf("error instantiating transactor: %s", err)
	}

	auth.Context = ctx
	auth.Nonce = big.NewInt(int64(nonce))
	auth.Value = big.NewInt(0)
	if chainID == 1 {
		auth.GasPrice = gasPrice
	} else {
		auth.GasPrice = gasPrice.Mul(gasPrice, big.NewInt(2))
	}

	return auth, nil
}
