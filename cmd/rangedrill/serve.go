package main

import (
	"fmt"

	"github.com/lox/rangedrill/cmd/rangedrill/shared"
	"github.com/lox/rangedrill/internal/ranges"
	"github.com/lox/rangedrill/internal/server"
)

// ServeCmd runs the websocket practice server.
type ServeCmd struct {
	Config string `kong:"default='rangedrill.hcl',help='Server configuration file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Ranges string `kong:"help='Range book path, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	addr := cfg.ListenAddr()
	if c.Addr != "" {
		addr = c.Addr
	}
	if c.Ranges != "" {
		cfg.Ranges.Path = c.Ranges
	}

	book, err := ranges.Load(cfg.Ranges.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load range book: %w", err)
	}

	logger.Info("Loaded range book",
		"path", cfg.Ranges.Path, "positions", len(book.Positions()))

	ctx := shared.SetupSignalHandler(logger)
	return server.NewServer(addr, book, logger).Run(ctx)
}
