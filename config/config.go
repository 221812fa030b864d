package config

import (
	"github.com/billyjitsu/across-network-automation/types"
)

// RetryPolicy controls re-quoting after a threshold rejection.
type RetryPolicy struct {
	Enabled      bool `yaml:"enabled"`
	MaxAttempts  int  `yaml:"max_attempts"`
	DelayMinutes int  `yaml:"delay_minutes"`
}

type Thresholds struct {
	MinOutputPercentage float64     `yaml:"min_output_percentage"`
	MaxFillTimeSeconds  int         `yaml:"max_fill_time_seconds"`
	Retry               RetryPolicy `yaml:"retry"`
}

type Monitoring struct {
	MaxPollingAttempts      int `yaml:"max_polling_attempts"`
	StatusPollingIntervalMs int `yaml:"status_polling_interval_ms"`
}

type Output struct {
	LogQuotes         bool   `yaml:"log_quotes"`
	NotifyOnRejection bool   `yaml:"notify_on_rejection"`
	HistoryFile       string `yaml:"history_file"`
}

type Configuration struct {
	// Server config (optional local API while a run is in progress)
	Server struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"server"`
	// Wallet config
	Wallet struct {
		// important private stuff, supply via PRIVATE_KEY env
		PrivateKey string `yaml:"private_key" envconfig:"PRIVATE_KEY"`
	} `yaml:"wallet"`
	// Across API config
	API struct {
		BaseURL        string `yaml:"base_url" envconfig:"ACROSS_API_URL"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"API"`
	// when false every operation stops after the threshold check
	AutoExecute bool       `yaml:"auto_execute" envconfig:"AUTO_EXECUTE"`
	Thresholds  Thresholds `yaml:"thresholds"`
	Monitoring  Monitoring `yaml:"monitoring"`
	Output      Output     `yaml:"output"`
	// configured decimals per token symbol, overrides the fallback table
	Decimals   map[string]int    `yaml:"decimals"`
	Operations []types.Operation `yaml:"operations"`
}

var Config Configuration

// maximum number of EVM RPC retries
const EVM_RETRIES = 3

// consecutive status request failures after which polling aborts early
const POLL_MAX_CONSECUTIVE_ERRORS = 5

// EVM-chains configs
type Chain struct {
	Name    string
	ChainID int
	RPCList []string
	// Across SpokePool contract address
	SpokePool string
	Explorer  string
	// native asset symbol and its wrapped ERC-20 address,
	// used for value-attached deposits
	NativeSymbol  string
	WrappedNative string
}

var Chains = map[int]Chain{
	1: {
		Name:          "Ethereum",
		ChainID:       1,
		RPCList:       []string{"https://eth.drpc.org", "https://eth.llamarpc.com"},
		SpokePool:     "0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5",
		Explorer:      "https://etherscan.io",
		NativeSymbol:  "ETH",
		WrappedNative: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
	},
	10: {
		Name:          "Optimism",
		ChainID:       10,
		RPCList:       []string{"https://mainnet.optimism.io", "https://optimism.drpc.org"},
		SpokePool:     "0x6f26Bf09B1C792e3228e5467807a900A503c0281",
		Explorer:      "https://optimistic.etherscan.io",
		NativeSymbol:  "ETH",
		WrappedNative: "0x4200000000000000000000000000000000000006",
	},
	137: {
		Name:          "Polygon",
		ChainID:       137,
		RPCList:       []string{"https://polygon-rpc.com", "https://polygon.drpc.org"},
		SpokePool:     "0x9295ee1d8C5b022Be115A2AD3c30C72E34e7F096",
		Explorer:      "https://polygonscan.com",
		NativeSymbol:  "POL",
		WrappedNative: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270",
	},
	8453: {
		Name:          "Base",
		ChainID:       8453,
		RPCList:       []string{"https://mainnet.base.org", "https://base.drpc.org"},
		SpokePool:     "0x09aea4b2242abC8bb4BB78D537A67a245A7bEC64",
		Explorer:      "https://basescan.org",
		NativeSymbol:  "ETH",
		WrappedNative: "0x4200000000000000000000000000000000000006",
	},
	42161: {
		Name:          "Arbitrum",
		ChainID:       42161,
		RPCList:       []string{"https://arb1.arbitrum.io/rpc", "https://arbitrum.drpc.org"},
		SpokePool:     "0xe35e9842fceaCA96570B734083f4a58e8F7C5f2A",
		Explorer:      "https://arbiscan.io",
		NativeSymbol:  "ETH",
		WrappedNative: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
	},
}

// token symbol -> chain id (or "<chain id>-bridged") -> contract address.
// ETH entries point at the wrapped asset, Across wraps value-attached deposits.
var Tokens = map[string]map[string]string{
	"ETH": {
		"1":     "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		"10":    "0x4200000000000000000000000000000000000006",
		"8453":  "0x4200000000000000000000000000000000000006",
		"42161": "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
	},
	"WETH": {
		"1":     "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		"10":    "0x4200000000000000000000000000000000000006",
		"137":   "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619",
		"8453":  "0x4200000000000000000000000000000000000006",
		"42161": "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
	},
	"USDC": {
		"1":             "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"10":            "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85",
		"10-bridged":    "0x7F5c764cBc14f9669B88837ca1490cCa17c31607",
		"137":           "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
		"137-bridged":   "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174",
		"8453":          "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		"42161":         "0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
		"42161-bridged": "0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8",
	},
	"USDT": {
		"1":     "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		"10":    "0x94b008aA00579c1307B0EF2c499aD98a8ce58e58",
		"137":   "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
		"42161": "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9",
	},
	"DAI": {
		"1":     "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		"10":    "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1",
		"137":   "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063",
		"42161": "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1",
	},
}
