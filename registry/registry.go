// Package registry resolves token addresses, decimals and bridge routes
// from the static chain and token registries.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/types"
)

// ErrNotSupported marks a token/chain combination absent from the registry.
var ErrNotSupported = errors.New("not supported")

// fallback decimals for symbols without a configured value
var defaultDecimals = map[string]int{
	"ETH":  18,
	"WETH": 18,
	"DAI":  18,
	"USDC": 6,
	"USDT": 6,
	"WBTC": 8,
}

// TokenAddress resolves the contract address of symbol on chainID. With
// useBridged set the "<chainID>-bridged" entry wins when present, falling
// back to the plain entry.
func TokenAddress(symbol string, chainID int, useBridged bool) (string, error) {
	entries, ok := config.Tokens[symbol]
	if !ok {
		return "", fmt.Errorf("token %s: %w", symbol, ErrNotSupported)
	}

	key := strconv.Itoa(chainID)
	if useBridged {
		if addr, ok := entries[key+"-bridged"]; ok {
			return addr, nil
		}
	}
	if addr, ok := entries[key]; ok {
		return addr, nil
	}
	return "", fmt.Errorf("token %s on chain %d: %w", symbol, chainID, ErrNotSupported)
}

// Decimals returns the decimals for symbol: an explicit override wins, then
// the configured table, then the fallback table, then 18.
func Decimals(symbol string, override int) int {
	if override > 0 {
		return override
	}
	if d, ok := config.Config.Decimals[symbol]; ok {
		return d
	}
	if d, ok := defaultDecimals[symbol]; ok {
		return d
	}
	return 18
}

// BuildRoute resolves a route for symbol from origin to destination.
// useBridged selects the origin chain's bridged variant as the input token
// when one is listed; the destination side always receives the canonical
// asset. The native flag sticks only when the symbol is the origin chain's
// native asset.
func BuildRoute(symbol string, fromChain, toChain int, isNative, useBridged bool) (*types.Route, error) {
	inputToken, err := TokenAddress(symbol, fromChain, useBridged)
	if err != nil {
		return nil, err
	}
	outputToken, err := TokenAddress(symbol, toChain, false)
	if err != nil {
		return nil, err
	}

	native := isNative && config.Chains[fromChain].NativeSymbol == symbol

	return &types.Route{
		Token:            symbol,
		OriginChainID:    fromChain,
		DestinationChain: toChain,
		InputToken:       inputToken,
		OutputToken:      outputToken,
		IsNative:         native,
	}, nil
}

// Routes enumerates every ordered pair of distinct chains that both list
// the token, bridged-variant entries excluded. Diagnostic use only.
func Routes(symbol string) ([]types.Route, error) {
	entries, ok := config.Tokens[symbol]
	if !ok {
		return nil, fmt.Errorf("token %s: %w", symbol, ErrNotSupported)
	}

	var chains []int
	for key := range entries {
		id, err := strconv.Atoi(key)
		if err != nil {
			// bridged-variant key
			continue
		}
		chains = append(chains, id)
	}
	sort.Ints(chains)

	var routes []types.Route
	for _, from := range chains {
		for _, to := range chains {
			if from == to {
				continue
			}
			routes = append(routes, types.Route{
				Token:            symbol,
				OriginChainID:    from,
				DestinationChain: to,
				InputToken:       entries[strconv.Itoa(from)],
				OutputToken:      entries[strconv.Itoa(to)],
			})
		}
	}
	return routes, nil
}

// Describe renders a human-readable description of an operation.
func Describe(op types.Operation) string {
	from := config.Chains[op.FromChain].Name
	if from == "" {
		from = strconv.Itoa(op.FromChain)
	}
	to := config.Chains[op.ToChain].Name
	if to == "" {
		to = strconv.Itoa(op.ToChain)
	}
	return fmt.Sprintf("%s %s from %s to %s", op.Amount, op.Token, from, to)
}
