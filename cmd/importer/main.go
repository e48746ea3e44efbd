// Command importer loads YouTube Data API videos.list responses into a playlist.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"thirdcoast.systems/cardfeed/internal/application"
	"thirdcoast.systems/cardfeed/internal/config"
	"thirdcoast.systems/cardfeed/internal/db"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

func main() {
	flags := pflag.NewFlagSet("importer", pflag.ExitOnError)
	flags.String("playlist", "", "playlist ID to append videos to")
	flags.Bool("dry-run", false, "parse files and report without writing")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: importer --playlist ID [--dry-run] FILE...\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if err := viper.BindPFlags(flags); err != nil {
		slog.Error("failed to bind flags", "error", err)
		os.Exit(1)
	}
	playlistID := viper.GetString("playlist")
	if playlistID == "" || flags.NArg() == 0 {
		flags.Usage()
		os.Exit(2)
	}

	videos, err := readFiles(flags.Args())
	if err != nil {
		slog.Error("failed to read listings", "error", err)
		os.Exit(1)
	}
	slog.Info("parsed listings", "files", flags.NArg(), "videos", len(videos))
	if viper.GetBool("dry-run") {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, err := application.OpenDBPoolWithRetry(ctx, *conf)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	dbc, err := db.NewDatabaseConnection(ctx, pool)
	if err != nil {
		slog.Error("failed to create database connection", "error", err)
		os.Exit(1)
	}
	defer dbc.Close()

	added, err := db.NewPlaylistStore(dbc).AppendVideos(ctx, playlistID, videos)
	if err != nil {
		slog.Error("failed to import videos", "playlist_id", playlistID, "error", err)
		os.Exit(1)
	}
	slog.Info("import complete", "playlist_id", playlistID, "added", added)
}

func readFiles(paths []string) ([]*feed.Video, error) {
	var all []*feed.Video
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		videos, err := parseListing(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, videos...)
	}
	return all, nil
}
