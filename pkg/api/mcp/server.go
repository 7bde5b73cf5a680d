// Package mcp exposes supplier analysis as a Model Context Protocol tool.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/RahilKothari9/supplier-analysis/pkg/api/analyze"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/report"
)

const ToolAnalyzeSupplier = "analyze_supplier"

// NewMCPServer configures the server without starting it.
func NewMCPServer(engine analyze.Analyzer, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Supplier Ledger",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{engine: engine}

	s.AddTool(mcp.NewTool(ToolAnalyzeSupplier,
		mcp.WithDescription("Assess a supplier's financial health: liquidity, solvency, cash quality, Altman Z-Score and risk flags."),
		mcp.WithString("ticker", mcp.Description("Ticker or entity identifier, e.g. TATASTEEL.NS."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Output format. Defaults to 'json'."), mcp.Enum("json", "markdown")),
	), h.handleAnalyzeSupplier)

	return s
}

// Serve runs the server over stdio until the client disconnects.
func Serve(engine analyze.Analyzer, version string) error {
	return server.ServeStdio(NewMCPServer(engine, version))
}

type toolHandler struct {
	engine analyze.Analyzer
}

func (h *toolHandler) handleAnalyzeSupplier(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ticker := request.GetString("ticker", "")
	if ticker == "" {
		return mcp.NewToolResultError("ticker is required"), nil
	}

	rep, err := h.engine.Analyze(ctx, ticker)
	if err != nil {
		var ae *analysis.AnalysisError
		if errors.As(err, &ae) {
			return mcp.NewToolResultError(ae.Detail()), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := request.GetString("format", "json"); format {
	case "markdown":
		return mcp.NewToolResultText(report.Markdown(rep)), nil
	case "json":
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}
}
