package main

import (
	"errors"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type globalOptions struct {
	APIURL  string        `long:"api-url" env:"ASSET_ADMIN_API_URL" description:"base URL of the indexer API" default:"http://127.0.0.1:8080"`
	Timeout time.Duration `long:"timeout" env:"ASSET_ADMIN_TIMEOUT" description:"request timeout" default:"30s"`
}

type command interface {
	Register(parser *flags.Parser) error
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := &globalOptions{}
	parser := flags.NewParser(opts, flags.Default)

	commands := []command{
		newResyncCommand(opts, os.Stdout),
		newDiagnosticsCommand(opts, os.Stdout),
	}
	for _, cmd := range commands {
		if err := cmd.Register(parser); err != nil {
			logger.Fatal("failed to register command", zap.Error(err))
		}
	}

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		// flags.Default already printed the error.
		_ = logger.Sync()
		os.Exit(1)
	}
}
