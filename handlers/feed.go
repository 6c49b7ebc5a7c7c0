package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"globalbroadcast/models"
	"globalbroadcast/registry"
)

// RegistrySource publishes registry values to subscribers.
type RegistrySource interface {
	Snapshot() registry.Registry
	Subscribe(fn registry.Listener) func()
}

// FeedObserver tracks connected feed clients. It may be nil.
type FeedObserver interface {
	FeedConnected()
	FeedDisconnected()
}

type FeedHandler struct {
	source      RegistrySource
	logger      *zap.Logger
	pushTimeout time.Duration
	origins     []string
	observer    FeedObserver
}

func NewFeedHandler(source RegistrySource, pushTimeout time.Duration, allowedOrigins []string, logger *zap.Logger) *FeedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pushTimeout <= 0 {
		pushTimeout = 5 * time.Second
	}
	return &FeedHandler{
		source:      source,
		logger:      logger,
		pushTimeout: pushTimeout,
		origins:     originPatterns(allowedOrigins),
	}
}

// SetObserver sets the client gauge.
func (h *FeedHandler) SetObserver(o FeedObserver) {
	h.observer = o
}

// Serve upgrades the request and streams a registry snapshot on connect and
// after every change. Slow clients only get the latest value.
func (h *FeedHandler) Serve(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		// Accept has already written the error response
		h.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "feed closed")

	if h.observer != nil {
		h.observer.FeedConnected()
		defer h.observer.FeedDisconnected()
	}

	// Clients never send anything; CloseRead handles their close frame.
	ctx := conn.CloseRead(c.Request.Context())

	updates := make(chan registry.Registry, 1)
	unsubscribe := h.source.Subscribe(func(r registry.Registry) {
		// Keep only the newest value so the store never blocks on a client.
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- r:
		default:
		}
	})
	defer unsubscribe()

	if err := h.push(ctx, conn, h.source.Snapshot()); err != nil {
		h.logger.Debug("feed push failed", zap.Error(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case r := <-updates:
			if err := h.push(ctx, conn, r); err != nil {
				h.logger.Debug("feed push failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *FeedHandler) push(ctx context.Context, conn *websocket.Conn, r registry.Registry) error {
	payload, err := json.Marshal(feedMessage(r))
	if err != nil {
		return fmt.Errorf("marshal feed message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.pushTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return fmt.Errorf("write feed message: %w", err)
	}
	return nil
}

func feedMessage(r registry.Registry) models.FeedMessage {
	s := r.Stats()
	return models.FeedMessage{
		Type:     "snapshot",
		Stations: r.All(),
		Stats: models.StatsResponse{
			TotalViewers:    s.TotalViewers,
			ActiveStations:  s.ActiveStations,
			TotalStations:   s.TotalStations,
			CoveragePercent: s.CoveragePercent,
		},
	}
}

// originPatterns turns CORS origins like http://localhost:5173 into the
// host patterns the websocket library matches against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			patterns = append(patterns, o)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
