package main

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/rangedrill/cmd/rangedrill/shared"
	"github.com/lox/rangedrill/internal/client"
	"github.com/lox/rangedrill/internal/trainer"
	"github.com/lox/rangedrill/internal/tui"
)

// PracticeCmd connects to a practice server and runs the TUI.
type PracticeCmd struct {
	Config string `kong:"default='rangedrill.hcl',help='Client configuration file'"`
	Server string `kong:"help='Server URL, overrides the config file'"`
}

func (c *PracticeCmd) Run() error {
	cfg, err := client.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Server != "" {
		cfg.Server.URL = c.Server
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logger, closeLog, err := shared.SetupFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cl := client.NewClientWithClock(cfg.Server.URL, logger,
		quartz.NewReal(), time.Duration(cfg.Server.RequestTimeout)*time.Second)
	if err := cl.Connect(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Server.URL, err)
	}
	defer func() { _ = cl.Disconnect() }()

	session := trainer.NewSession(cl, trainer.NewStatistics(), logger)
	return tui.Run(session, cl, logger)
}
