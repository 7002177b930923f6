package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chess-vn/skbclub/internal/app/server"
	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/chess-vn/skbclub/pkg/pgn"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		logging.Fatal("failed to load config", zap.Error(err))
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		logging.Fatal("failed to configure logging", zap.Error(err))
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, afero.NewOsFs(), pgn.NotnilRules{})
	if err := srv.Start(ctx); err != nil {
		logging.Fatal("Game server exited: ", zap.Error(err))
	}
}
