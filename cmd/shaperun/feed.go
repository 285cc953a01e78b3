package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shaperun/internal/games/shaperun"
	"github.com/vovakirdan/shaperun/internal/platform/feed"
)

var flagFeedAddr string

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Stream simulations to websocket renderers",
	Long: `Start a websocket server for graphical renderers.

Every connection at /ws gets its own simulation. Messages are msgpack
encoded: clients send configure, mission, start, input and reset messages
and receive a welcome followed by one frame per tick while a run is active.
Finished runs are stored in the run history with origin "feed".

Examples:
  shaperun feed
  shaperun feed --listen 127.0.0.1:9000 --fps 30
  shaperun feed --config ./runner.toml --log-level debug`,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&flagFeedAddr, "listen", feed.DefaultConfig().Address, "HTTP listen address (host:port)")
}

func runFeed(_ *cobra.Command, _ []string) error {
	logger := newLogger("shaperun-feed")

	runner, err := shaperun.LoadConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := feed.NewServer(
		feed.Config{Address: flagFeedAddr, TickRate: flagFPS},
		runner,
		store,
		logger,
	)
	return server.ListenAndServe(ctx)
}
