package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"thirdcoast.systems/cardfeed/cmd/web/ctxkeys"
	"thirdcoast.systems/cardfeed/cmd/web/handlers/api/feed_api"
	"thirdcoast.systems/cardfeed/cmd/web/handlers/content"
	staticpkg "thirdcoast.systems/cardfeed/cmd/web/internal/web/utils/static"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
	"thirdcoast.systems/cardfeed/internal/thumbs"
	"thirdcoast.systems/cardfeed/static"
)

const sweepInterval = time.Minute

type Webserver struct {
	*echo.Echo
	viewers     *viewer.Manager
	feed        *feed_api.Feed
	thumbnails  *thumbs.Prefetcher
	publisher   feed_api.Publisher
	staticCache *staticpkg.StaticCache
}

func NewWebserver(ctx context.Context, f *feed_api.Feed, viewers *viewer.Manager, thumbnails *thumbs.Prefetcher, publisher feed_api.Publisher) (*Webserver, error) {
	e := echo.New()

	staticCache, err := staticpkg.NewStaticCache(static.FS)
	if err != nil {
		return nil, err
	}

	webserver := &Webserver{
		Echo:        e,
		viewers:     viewers,
		feed:        f,
		thumbnails:  thumbnails,
		publisher:   publisher,
		staticCache: staticCache,
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err = webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	go webserver.sweepSessions(ctx)

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("64K"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		// Gzip buffers SSE responses.
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/playlists/:id/slots" || c.Path() == "/api/playlists/:id/events"
		},
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/healthz", "/api/thumbnails", "/static/*":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if id, ok := c.Request().Context().Value(ctxkeys.ViewerID).(string); ok {
				fields = append(fields, "viewer_id", id)
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	// Expose a known viewer ID to handlers and the request log.
	s.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, err := s.viewers.ViewerID(c.Request()); err == nil {
				ctx := context.WithValue(c.Request().Context(), ctxkeys.ViewerID, id)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	})

	return nil
}

func (s *Webserver) registerRoutes() error {
	apiGroup := s.Group("/api")
	apiGroup.GET("/playlists/:id/slots", feed_api.HandleSlots(s.feed, s.viewers))
	apiGroup.POST("/playlists/:id/events", feed_api.HandleEvent(s.feed, s.viewers, s.publisher))
	apiGroup.GET("/thumbnails", feed_api.HandleThumbnail(s.thumbnails, s.feed.Placeholder))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	// Content routes
	s.GET("/playlists/:id", content.HandlePlaylistPage(s.viewers))

	return nil
}

// sweepSessions drops idle feed sessions until ctx is cancelled.
func (s *Webserver) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.feed.Registry.Sweep(now); n > 0 {
				slog.Debug("swept idle feed sessions", "removed", n, "remaining", s.feed.Registry.Len())
			}
		}
	}
}
