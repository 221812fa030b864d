package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/billyjitsu/across-network-automation/across"
	"github.com/billyjitsu/across-network-automation/config"
	"github.com/billyjitsu/across-network-automation/history"
	"github.com/billyjitsu/across-network-automation/types"
	"github.com/billyjitsu/across-network-automation/workers"
)

func main() {
	log.Print("Starting Across bridge automation")

	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("error creating logs directory, file logging disabled: %v", err)
	} else {
		f, err := os.OpenFile(fmt.Sprintf("logs/log_%s.txt", time.Now().Format("2006-01-02")), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file for writing: %v", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	config.Init()

	// missing signing credential is fatal before any operation is attempted
	if config.Config.Wallet.PrivateKey == "" {
		log.Fatal("No signing key configured, set PRIVATE_KEY")
	}
	executor, err := across.NewExecutor(config.Config.Wallet.PrivateKey)
	if err != nil {
		log.Fatalf("Invalid signing key: %v", err)
	}
	log.Printf("Using account %s on all configured chains", executor.Address().Hex())

	client := across.NewClient(config.Config.API.BaseURL, time.Duration(config.Config.API.TimeoutSeconds)*time.Second)
	recorder := history.NewRecorder(config.Config.Output.HistoryFile)

	enabled := 0
	for _, op := range config.Config.Operations {
		if op.Enabled {
			enabled++
		}
	}
	state := types.NewRunState(enabled)

	done := make(chan struct{})
	httpStopped := make(chan struct{})
	if config.Config.Server.Enabled {
		go func() {
			workers.Worker_HTTP(state, recorder, config.Config.Server.Port, done)
			close(httpStopped)
		}()
	} else {
		close(httpStopped)
	}

	orch := &workers.Orchestrator{
		Quoter:      across.NewQuoteService(client, config.Config.Output.LogQuotes),
		Executor:    executor,
		Poller:      workers.NewPoller(client, config.Config.Monitoring),
		Recorder:    recorder,
		Thresholds:  config.Config.Thresholds,
		AutoExecute: config.Config.AutoExecute,
		Notify:      config.Config.Output.NotifyOnRejection,
		State:       state,
	}

	orch.Run(context.Background(), config.Config.Operations)

	close(done)
	<-httpStopped

	log.Print("All operations processed")
}
