package registry

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/billyjitsu/across-network-automation/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAddressResolvesConfiguredEntries(t *testing.T) {
	for symbol, entries := range config.Tokens {
		for key, want := range entries {
			chainID, bridged := parseKey(t, key)
			got, err := TokenAddress(symbol, chainID, bridged)
			require.NoError(t, err, "%s on %s", symbol, key)
			assert.Equal(t, want, got, "%s on %s", symbol, key)
		}
	}
}

func parseKey(t *testing.T, key string) (int, bool) {
	t.Helper()
	base, bridged := strings.CutSuffix(key, "-bridged")
	chainID, err := strconv.Atoi(base)
	require.NoError(t, err, "registry key %q", key)
	return chainID, bridged
}

func TestTokenAddressUnknown(t *testing.T) {
	_, err := TokenAddress("DOGE", 1, false)
	assert.ErrorIs(t, err, ErrNotSupported)

	// token exists, chain does not list it
	_, err = TokenAddress("DAI", 8453, false)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestTokenAddressBridgedVariant(t *testing.T) {
	// bridged entry exists on Arbitrum
	got, err := TokenAddress("USDC", 42161, true)
	require.NoError(t, err)
	assert.Equal(t, config.Tokens["USDC"]["42161-bridged"], got)

	// no bridged entry on mainnet, falls back to the plain one
	got, err = TokenAddress("USDC", 1, true)
	require.NoError(t, err)
	assert.Equal(t, config.Tokens["USDC"]["1"], got)
}

func TestDecimals(t *testing.T) {
	old := config.Config.Decimals
	config.Config.Decimals = map[string]int{"FOO": 9}
	defer func() { config.Config.Decimals = old }()

	assert.Equal(t, 12, Decimals("USDC", 12), "explicit override wins")
	assert.Equal(t, 9, Decimals("FOO", 0), "configured table")
	assert.Equal(t, 6, Decimals("USDC", 0), "fallback table")
	assert.Equal(t, 18, Decimals("UNKNOWN", 0), "default")
}

func TestBuildRoute(t *testing.T) {
	route, err := BuildRoute("ETH", 42161, 10, true, false)
	require.NoError(t, err)
	assert.Equal(t, 42161, route.OriginChainID)
	assert.Equal(t, 10, route.DestinationChain)
	assert.Equal(t, config.Tokens["ETH"]["42161"], route.InputToken)
	assert.Equal(t, config.Tokens["ETH"]["10"], route.OutputToken)
	assert.True(t, route.IsNative, "ETH is Arbitrum's native asset")
}

func TestBuildRouteBridgedInputToken(t *testing.T) {
	route, err := BuildRoute("USDC", 10, 1, false, true)
	require.NoError(t, err)
	assert.Equal(t, config.Tokens["USDC"]["10-bridged"], route.InputToken, "origin side uses the bridged variant")
	assert.Equal(t, config.Tokens["USDC"]["1"], route.OutputToken, "destination side stays canonical")
}

func TestBuildRouteNativeFlagOnlyForNativeAsset(t *testing.T) {
	route, err := BuildRoute("USDC", 42161, 10, true, false)
	require.NoError(t, err)
	assert.False(t, route.IsNative, "USDC is not a native asset")
}

func TestBuildRouteUnsupportedChain(t *testing.T) {
	_, err := BuildRoute("DAI", 1, 8453, false, false)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestRoutesEnumeratesOrderedPairs(t *testing.T) {
	// DAI is listed on 4 chains, so 4*3 ordered pairs
	routes, err := Routes("DAI")
	require.NoError(t, err)
	assert.Len(t, routes, 12)

	for _, r := range routes {
		assert.NotEqual(t, r.OriginChainID, r.DestinationChain)
		assert.NotEmpty(t, r.InputToken)
		assert.NotEmpty(t, r.OutputToken)
	}
}

func TestRoutesExcludesBridgedKeys(t *testing.T) {
	// USDC has 5 plain entries and 3 bridged ones; only plain count
	routes, err := Routes("USDC")
	require.NoError(t, err)
	assert.Len(t, routes, 20)
}

func TestRoutesUnknownToken(t *testing.T) {
	_, err := Routes("DOGE")
	assert.True(t, errors.Is(err, ErrNotSupported))
}
