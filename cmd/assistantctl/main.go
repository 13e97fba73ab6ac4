package main

import (
	"os"

	"smart-assistant/config"
	"smart-assistant/internal/app"
	"smart-assistant/pkg/log"
)

func main() {
	logger := log.Init(log.ZapConfig{
		Level:    "warn",
		Mode:     "production",
		Encoding: "console",
	})

	root := newRootCmd(os.Stdin, os.Stdout, logger, deps{
		loadConfig: config.Load,
		build:      app.Build,
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
