package wshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	ws "github.com/Temutjin2k/agro-insurance/pkg/wsHub"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeFeed_FiltersByTable(t *testing.T) {
	l := logger.InitLogger("test", logger.LevelError)
	hub := ws.NewConnHub(l)
	feed := NewChangeFeed(hub, l)

	srv := httptest.NewServer(http.HandlerFunc(feed.Subscribe))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?table=" + types.TablePoints
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))

	var hello map[string]any
	require.NoError(t, c.ReadJSON(&hello))
	assert.Equal(t, "subscribed", hello["type"])
	assert.Equal(t, 1, hub.Len())

	ctx := context.Background()
	require.NoError(t, feed.Publish(ctx, models.NewChange(types.TablePolicies, types.OpInsert, 1, nil)))
	require.NoError(t, feed.Publish(ctx, models.NewChange(types.TablePoints, types.OpUpdate, 2, nil)))

	var got models.Change
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, types.TablePoints, got.Table)
	assert.Equal(t, types.OpUpdate, got.Op)
	assert.Equal(t, int64(2), got.RecordID)
}

func TestChangeFeed_Name(t *testing.T) {
	feed := NewChangeFeed(ws.NewConnHub(logger.InitLogger("test", logger.LevelError)), logger.InitLogger("test", logger.LevelError))
	assert.Equal(t, "websocket", feed.Name())
}
