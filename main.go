package main

import (
	"log/slog"
	"os"

	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/examples"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Read the initializer configuration from the file given on the
	// command line, or fall back to the sample configuration
	var params common.Params
	var err error
	if len(os.Args) > 1 {
		params, err = common.FromFile(os.Args[1])
	} else {
		params, err = common.FromYAML([]byte(examples.DefaultConfig))
	}
	if err != nil {
		logger.Error("could not read configuration", "error", err)
		os.Exit(1)
	}

	if err := examples.RunInitialization(params, logger); err != nil {
		logger.Error("could not initialize modules", "error", err)
		os.Exit(1)
	}
}
