// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hylla/assetdex/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing the index tools.
func NewHandler(cfg Config, index common.IndexService) (*Handler, error) {
	if index == nil {
		return nil, fmt.Errorf("index service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerRenderIndexTool(mcpSrv, index)
	registerListColumnsTool(mcpSrv, index)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "assetdex"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerRenderIndexTool registers the `assetdex.render_index` tool.
func registerRenderIndexTool(srv *mcpserver.MCPServer, index common.IndexService) {
	srv.AddTool(
		mcp.NewTool(
			"assetdex.render_index",
			mcp.WithDescription("Render the advanced asset index: one row per asset, one formatted cell per visible column."),
			mcp.WithString("organization_id", mcp.Description("Organization identifier (defaults to the configured or first organization)")),
			mcp.WithArray("columns", mcp.Description("Column keys such as name, status, or cf_<custom field name>"), mcp.WithStringItems()),
			mcp.WithArray("roles", mcp.Description("Viewer roles used for permission checks"), mcp.WithStringItems()),
			mcp.WithString("locale", mcp.Description("BCP 47 locale, e.g. en-US")),
			mcp.WithString("time_zone", mcp.Description("IANA time zone, e.g. Europe/Oslo")),
			mcp.WithBoolean("show_image", mcp.Description("Attach asset thumbnails to the name column")),
			mcp.WithBoolean("freeze_column", mcp.Description("Freeze the name column in advanced mode")),
			mcp.WithString("mode", mcp.Description("Index mode"), mcp.Enum("simple", "advanced")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			in := common.IndexRequest{
				OrganizationID: req.GetString("organization_id", ""),
				Columns:        req.GetStringSlice("columns", nil),
				Roles:          req.GetStringSlice("roles", nil),
				Locale:         req.GetString("locale", ""),
				TimeZone:       req.GetString("time_zone", ""),
				Mode:           req.GetString("mode", ""),
			}
			args := req.GetArguments()
			if _, ok := args["show_image"]; ok {
				v := req.GetBool("show_image", false)
				in.ShowImage = &v
			}
			if _, ok := args["freeze_column"]; ok {
				v := req.GetBool("freeze_column", false)
				in.FreezeColumn = &v
			}
			page, err := index.RenderIndex(ctx, in)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(page)
			if err != nil {
				return nil, fmt.Errorf("encode render_index result: %w", err)
			}
			return result, nil
		},
	)
}

// registerListColumnsTool registers the `assetdex.list_columns` tool.
func registerListColumnsTool(srv *mcpserver.MCPServer, index common.IndexService) {
	srv.AddTool(
		mcp.NewTool(
			"assetdex.list_columns",
			mcp.WithDescription("List the fixed index columns and one cf_ column per active custom field."),
			mcp.WithString("organization_id", mcp.Description("Organization identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			columns, err := index.ListColumns(ctx, req.GetString("organization_id", ""))
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"columns": columns})
			if err != nil {
				return nil, fmt.Errorf("encode list_columns result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps transport errors into MCP tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrBootstrapRequired):
		return mcp.NewToolResultError("bootstrap_required: " + err.Error())
	case errors.Is(err, common.ErrInvalidRequest):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
