package EVMRPC

import (
	"fmt"
	"log"

	"github.com/billyjitsu/across-network-automation/config"

	"github.com/ethereum/go-ethereum/ethclient"
)

// WithClient runs f against the chain's RPC endpoints in order until one
// both connects and returns without error.
func WithClient[T any](chainID int, f func(client *ethclient.Client) (T, error)) (res T, err error) {
	var client *ethclient.Client
	for _, url := range config.Chains[chainID].RPCList {
		client, err = ethclient.Dial(url)
		if err != nil {
			log.Println(fmt.Sprintf("Error connecting to %s: %s", url, err.Error()))
			continue
		}

		res, err = f(client)
		client.Close()
		if err == nil {
			return
		}
	}
	if err == nil {
		err = fmt.Errorf("no working RPC endpoint for chain %d", chainID)
	}
	return
}

// Dial opens a client on the chain's RPC list, rotating by attempt number.
// Used by retry loops that want a different endpoint per attempt.
func Dial(chainID int, attempt int) (*ethclient.Client, error) {
	list := config.Chains[chainID].RPCList
	if len(list) == 0 {
		return nil, fmt.Errorf("no RPC endpoints configured for chain %d", chainID)
	}
	return ethclient.Dial(list[attempt%len(list)])
}
