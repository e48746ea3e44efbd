package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"thirdcoast.systems/cardfeed/cmd/web/handlers/api/feed_api"
	"thirdcoast.systems/cardfeed/cmd/web/internal/web"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
	"thirdcoast.systems/cardfeed/internal/application"
	"thirdcoast.systems/cardfeed/internal/config"
	"thirdcoast.systems/cardfeed/internal/db"
	"thirdcoast.systems/cardfeed/internal/events"
	"thirdcoast.systems/cardfeed/internal/thumbs"
	"thirdcoast.systems/cardfeed/pkg/feed"
	"thirdcoast.systems/cardfeed/pkg/utils/format"
)

const thumbnailTTL = 24 * time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if conf.DatabaseRetries <= 0 {
		conf.DatabaseRetries = 10
	}

	placement, err := feed.ParseFixedPlacement(conf.FeedAdSlots)
	if err != nil {
		slog.Error("invalid FEED_AD_SLOTS", "value", conf.FeedAdSlots, "error", err)
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

	var cache thumbs.Cache
	if servers := config.SplitList(conf.MemcachedServers); len(servers) > 0 {
		cache = thumbs.NewMemcachedCache(servers, thumbnailTTL)
		slog.Info("thumbnail cache", "backend", "memcached", "servers", servers)
	} else {
		cache = thumbs.NewMemoryCache()
		slog.Info("MEMCACHED_SERVERS not set; thumbnails cached in process")
	}
	prefetcher := thumbs.NewPrefetcher(thumbs.Config{
		Cache:        cache,
		AllowedHosts: config.SplitList(conf.ThumbnailAllowedHosts),
	})
	prefetcher.Start(ctx)

	publisher, err := events.Connect(ctx, conf.NatsURL)
	if err != nil {
		slog.Error("failed to connect event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	f := &feed_api.Feed{
		Registry:    feed.NewRegistry(conf.FeedSessionTTL),
		Pages:       db.NewPlaylistStore(dbc),
		PageSize:    conf.FeedPageSize,
		Placement:   placement,
		Images:      prefetcher,
		Placeholder: conf.FeedThumbnailPlaceholder,
		FormatCount: format.CountFormatter(conf.FeedCountLocale),
	}

	e, err := web.NewWebserver(ctx, f, viewer.NewManager(conf.SessionSecret), prefetcher, publisher)
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr, "ad_slots", placement.Positions(), "page_size", conf.FeedPageSize)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			prefetcher.Wait()
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
