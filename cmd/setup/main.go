package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"bitpanda_watcher/internal/setup"
)

func main() {
	zapLogger := zap.NewNop()
	if os.Getenv("SETUP_DEBUG") != "" {
		var err error
		zapLogger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}

	if err := setup.RunTUI(zapLogger); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
}
