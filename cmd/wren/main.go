// Command wren is the UCI entry point: it wires an engine.Engine to the
// uci protocol loop over stdin/stdout.
package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"wren/engine"
	"wren/uci"
)

func main() {
	configPath := flag.String("config", "wren.toml", "path to a TOML config file")
	flag.Parse()

	logger := engine.NewLogger()
	defer logger.Sync()

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	eng := engine.NewEngine(cfg, logger)
	protocol := uci.NewProtocol(eng, os.Stdout, logger)

	if err := protocol.Run(os.Stdin); err != nil {
		logger.Error("uci loop exited with error", zap.Error(err))
		os.Exit(1)
	}
}
