package mcpsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ToolNearestPoint   = "nearest_point"
	ToolClimateHistory = "climate_history"
)

type tools struct {
	points  PointService
	climate ClimateService
	l       logger.Logger
}

func (t *tools) list() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool(ToolNearestPoint,
				mcp.WithDescription("Find the registered point closest to a coordinate and its great-circle distance in kilometres."),
				mcp.WithNumber("latitude",
					mcp.Required(),
					mcp.Description("Latitude in degrees, -90 to 90"),
				),
				mcp.WithNumber("longitude",
					mcp.Required(),
					mcp.Description("Longitude in degrees, -180 to 180"),
				),
			),
			Handler: t.nearestPoint,
		},
		{
			Tool: mcp.NewTool(ToolClimateHistory,
				mcp.WithDescription("Return the daily climate records of a point, optionally limited to one year."),
				mcp.WithNumber("point_id",
					mcp.Required(),
					mcp.Description("ID of the point"),
				),
				mcp.WithNumber("year",
					mcp.DefaultNumber(0),
					mcp.Description("Only records of this year, 0 for all"),
				),
			),
			Handler: t.climateHistory,
		},
	}
}

func (t *tools) nearestPoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = wrap.WithAction(ctx, "mcp_nearest_point")

	lat, err := request.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError("latitude must be a number: " + err.Error()), nil
	}
	lon, err := request.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError("longitude must be a number: " + err.Error()), nil
	}

	query := locator.Coordinate{Latitude: lat, Longitude: lon}
	if !query.InRange() {
		return mcp.NewToolResultError("coordinate out of range"), nil
	}

	nearest, err := t.points.Nearest(ctx, query)
	metrics.RecordNearestLookup("mcp", err)
	if err != nil {
		return t.failure(ctx, err)
	}

	return jsonResult(nearest)
}

func (t *tools) climateHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = wrap.WithAction(ctx, "mcp_climate_history")

	pointID, err := request.RequireInt("point_id")
	if err != nil {
		return mcp.NewToolResultError("point_id must be a number: " + err.Error()), nil
	}
	if pointID <= 0 {
		return mcp.NewToolResultError("point_id must be positive"), nil
	}
	year := request.GetInt("year", 0)

	history, err := t.climate.History(ctx, int64(pointID), year)
	if err != nil {
		return t.failure(ctx, err)
	}

	return jsonResult(history)
}

// failure turns domain errors into tool errors the model can read. Unexpected
// errors are logged and reported without details.
func (t *tools) failure(ctx context.Context, err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, types.ErrNoPoints), errors.Is(err, locator.ErrNoCandidates):
		return mcp.NewToolResultError("no points available"), nil
	case errors.Is(err, types.ErrPointNotFound):
		return mcp.NewToolResultError("point not found"), nil
	case errors.Is(err, locator.ErrInvalidInput):
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.l.Error(wrap.ErrorCtx(ctx, err), "tool call failed", err)
	return mcp.NewToolResultError("internal error"), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(js)), nil
}
