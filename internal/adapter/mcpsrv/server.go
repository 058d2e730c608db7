package mcpsrv

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
)

type (
	PointService interface {
		Nearest(ctx context.Context, query locator.Coordinate) (models.NearestPoint, error)
	}

	ClimateService interface {
		History(ctx context.Context, pointID int64, year int) (models.ClimateHistory, error)
	}
)

// Server exposes the locator and climate history as tools for language models.
type Server struct {
	mcpServer *server.MCPServer
	sseServer *server.SSEServer
	basePath  string
}

func New(name, version, baseURL, basePath string, points PointService, climate ClimateService, l logger.Logger) *Server {
	basePath = "/" + strings.Trim(basePath, "/")

	s := &Server{
		mcpServer: server.NewMCPServer(
			name,
			version,
			server.WithLogging(),
		),
		basePath: basePath,
	}

	t := &tools{points: points, climate: climate, l: l}
	s.mcpServer.AddTools(t.list()...)

	s.sseServer = server.NewSSEServer(
		s.mcpServer,
		server.WithBaseURL(strings.TrimRight(baseURL, "/")),
		server.WithStaticBasePath(basePath),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	return s
}

// Pattern is the ServeMux pattern the handler has to be mounted on.
func (s *Server) Pattern() string {
	return s.basePath + "/"
}

func (s *Server) Handler() http.Handler {
	return s.sseServer
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.sseServer.Shutdown(ctx)
}
