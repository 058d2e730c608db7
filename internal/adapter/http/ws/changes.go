package wshandler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	ws "github.com/Temutjin2k/agro-insurance/pkg/wsHub"
	"github.com/gorilla/websocket"
)

// ChangeFeed streams change events to websocket subscribers.
// Subscribers may narrow the feed with ?table=points&table=policies.
type ChangeFeed struct {
	connections *ws.ConnectionHub
	upgrader    websocket.Upgrader
	l           logger.Logger
}

func NewChangeFeed(connections *ws.ConnectionHub, l logger.Logger) *ChangeFeed {
	return &ChangeFeed{
		connections: connections,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		l: l,
	}
}

func (f *ChangeFeed) Name() string {
	return "websocket"
}

// Publish broadcasts change to every subscriber. Undeliverable subscribers are dropped,
// so it never fails.
func (f *ChangeFeed) Publish(ctx context.Context, change models.Change) error {
	f.connections.Broadcast(ctx, change)
	return nil
}

// Subscribe upgrades the request and keeps the connection registered until the peer leaves.
func (f *ChangeFeed) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_subscribe_changes")

	wsConn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		f.l.Warn(ctx, "websocket upgrade failed", "error", err.Error())
		return
	}

	conn, err := ws.NewConn(context.WithoutCancel(ctx), wsConn)
	if err != nil {
		f.l.Error(ctx, "failed to register websocket connection", err)
		_ = wsConn.Close()
		return
	}

	tables := r.URL.Query()["table"]
	if len(tables) > 0 {
		conn.SetFilter(func(v any) bool {
			change, ok := v.(models.Change)
			return !ok || slices.Contains(tables, change.Table)
		})
	}

	if err := f.connections.Add(conn); err != nil {
		f.l.Error(ctx, "failed to add websocket connection", err)
		_ = conn.Close()
		return
	}
	defer func() { _ = f.connections.Delete(conn.ID()) }()

	f.l.Info(ctx, "change subscriber connected", "conn_id", conn.ID().String(), "tables", tables)

	hello := map[string]any{"type": "subscribed", "conn_id": conn.ID().String(), "tables": tables}
	if err := f.connections.SendTo(conn.ID(), hello); err != nil {
		f.l.Warn(ctx, "failed to greet change subscriber", "error", err.Error())
		return
	}

	go f.keepAlive(ctx, conn)

	if err := conn.Listen(); err != nil {
		f.l.Debug(ctx, "change subscriber disconnected", "conn_id", conn.ID().String(), "reason", err.Error())
	}
}

const pingInterval = 30 * time.Second

// keepAlive pings conn until it is closed. A failed ping closes it, which ends Listen.
func (f *ChangeFeed) keepAlive(ctx context.Context, conn *ws.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-conn.Done():
			return
		case <-ticker.C:
			if err := conn.Health(); err != nil {
				f.l.Debug(ctx, "change subscriber ping failed", "conn_id", conn.ID().String(), "error", err.Error())
				_ = conn.Close()
				return
			}
		}
	}
}
