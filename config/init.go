package config

import (
	"fmt"
	"os"
	"strconv"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// reading config error is fatal, and exits main thread
func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

func readFile(cfg *Configuration) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yml"
	}

	f, err := os.Open(path)
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		processError(err)
	}
}

func readEnv(cfg *Configuration) {
	err := envconfig.Process("", cfg)
	if err != nil {
		processError(err)
	}
}

func applyDefaults(cfg *Configuration) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://app.across.to/api"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Monitoring.MaxPollingAttempts == 0 {
		cfg.Monitoring.MaxPollingAttempts = 30
	}
	if cfg.Monitoring.StatusPollingIntervalMs == 0 {
		cfg.Monitoring.StatusPollingIntervalMs = 10000
	}
	if cfg.Output.HistoryFile == "" {
		cfg.Output.HistoryFile = "bridge_history.json"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}

// Validate checks the static registries and every configured operation
// against them. Run errors here are startup-fatal.
func Validate(cfg *Configuration) error {
	for id, chain := range Chains {
		if err := ethav.Validate(common.HexToAddress(chain.SpokePool).Hex()); err != nil {
			return fmt.Errorf("chain %d has invalid spoke pool address %s: %s", id, chain.SpokePool, err)
		}
	}
	for symbol, entries := range Tokens {
		for key, addr := range entries {
			if err := ethav.Validate(common.HexToAddress(addr).Hex()); err != nil {
				return fmt.Errorf("token %s entry %s has invalid address %s: %s", symbol, key, addr, err)
			}
		}
	}

	for _, op := range cfg.Operations {
		if _, ok := Chains[op.FromChain]; !ok {
			return fmt.Errorf("operation %s references unknown origin chain %d", op.Name, op.FromChain)
		}
		if _, ok := Chains[op.ToChain]; !ok {
			return fmt.Errorf("operation %s references unknown destination chain %d", op.Name, op.ToChain)
		}
		if op.FromChain == op.ToChain {
			return fmt.Errorf("operation %s has identical origin and destination chain %d", op.Name, op.FromChain)
		}
		if _, ok := Tokens[op.Token]; !ok {
			return fmt.Errorf("operation %s references unknown token %s", op.Name, op.Token)
		}
		if _, err := strconv.ParseFloat(op.Amount, 64); err != nil {
			return fmt.Errorf("operation %s has unparseable amount %q", op.Name, op.Amount)
		}
	}
	return nil
}

func Init() {
	// optional, keeps PRIVATE_KEY out of shell history during development
	_ = godotenv.Load()

	readFile(&Config)
	readEnv(&Config)
	applyDefaults(&Config)

	if err := Validate(&Config); err != nil {
		processError(err)
	}
}
