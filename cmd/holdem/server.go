package main

import (
	"context"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lockhart/holdem/internal/server"
)

// ServerCmd runs the websocket table server.
type ServerCmd struct {
	Config string `short:"c" default:"holdem.hcl" help:"Path to HCL config file"`
	Addr   string `help:"Override listen address (host:port)"`
	Seed   int64  `help:"Deck RNG seed; 0 seeds from the clock"`
}

func (cmd *ServerCmd) Run(logger *log.Logger) error {
	cfg, err := server.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Address, cfg.Server.Port = splitAddr(cmd.Addr, cfg.Server.Port)
	}
	applyLogLevel(logger, cfg.Server.LogLevel)

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	srv, err := server.New(cfg, seed, quartz.NewReal(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func applyLogLevel(logger *log.Logger, level string) {
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
}

func splitAddr(addr string, defaultPort int) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, defaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, defaultPort
	}
	return host, port
}
