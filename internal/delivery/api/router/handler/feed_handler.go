package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = feedPongWait * 9 / 10
)

// FeedHandlerParams holds dependencies for FeedHandler, injected by Fx.
type FeedHandlerParams struct {
	fx.In

	Feed   service.OrderFeed
	Config *config.Config
	Logger *slog.Logger
}

// FeedHandler pushes live order events to admin dashboards over a websocket.
type FeedHandler struct {
	feed     service.OrderFeed
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewFeedHandler is the constructor for FeedHandler.
func NewFeedHandler(params FeedHandlerParams) *FeedHandler {
	allowed := params.Config.HTTP.AllowedOrigins

	return &FeedHandler{
		feed: params.Feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowed)
			},
		},
		logger: params.Logger,
	}
}

// originAllowed accepts everything when no origins are configured, and
// requests without an Origin header (non-browser clients).
func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 || origin == "" || slices.Contains(allowed, "*") {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	origin = u.Scheme + "://" + u.Host

	return slices.ContainsFunc(allowed, func(a string) bool {
		return strings.EqualFold(strings.TrimRight(a, "/"), origin)
	})
}

// Stream upgrades the connection and relays order events until either side goes away.
func (h *FeedHandler) Stream(c echo.Context) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warn("Order feed upgrade failed", slog.Any("error", err))

		return nil
	}
	defer conn.Close()

	events, cancel := h.feed.Subscribe()
	defer cancel()

	logger.Info("Order feed connected")
	defer logger.Info("Order feed disconnected")

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Debug("Order feed write failed", slog.Any("error", err))

				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close frames are processed.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
