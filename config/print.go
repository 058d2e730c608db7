package config

import (
	"context"
	"net/url"

	"github.com/Temutjin2k/agro-insurance/pkg/logger"
)

// PrintConfig logs the effective configuration. Passwords are masked.
func PrintConfig(cfg *Config, log logger.Logger) {
	ctx := context.Background()

	log.Info(ctx, "configuration loaded",
		"service", cfg.ServiceName,
		"server_addr", cfg.Server.Addr(),
		"database", maskDSN(cfg.Database.GetDSN()),
		"database_max_conns", cfg.Database.MaxConns,
		"rabbitmq_enabled", cfg.RabbitMQ.Enabled,
		"rabbitmq", maskDSN(cfg.RabbitMQ.GetDSN()),
		"rabbitmq_exchange", cfg.RabbitMQ.Exchange,
		"cache_points_ttl", cfg.Cache.PointsTTL.String(),
		"mcp_enabled", cfg.MCP.Enabled,
		"mcp_base_path", cfg.MCP.BasePath,
		"log_level", cfg.Log.Level,
		"log_file", cfg.Log.File,
	)
}

func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "<invalid dsn>"
	}
	return u.Redacted()
}
