// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpcneuro/longstat/internal/contract"
)

// NewMCPServer initializes and configures the Longstat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RunManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Longstat Computation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: compute_trends ---
	s.AddTool(mcp.NewTool("compute_trends",
		mcp.WithDescription("Estimate per-structure longitudinal trends (OLS slope, r-squared, p-value) from structural measurement records."),
		mcp.WithString("input", mcp.Description("Path to the measurement input (CSV, JSON, or Parquet). Defaults to the configured input.")),
		mcp.WithString("measure", mcp.Description("Restrict to one measure type."), mcp.Enum("volume", "thickness")),
		mcp.WithString("subject", mcp.Description("Restrict to one base subject ID.")),
		mcp.WithString("structure", mcp.Description("Case-insensitive structure name substring filter.")),
		mcp.WithNumber("alpha", mcp.Description("Significance level for the summary (defaults to 0.05).")),
		mcp.WithNumber("min_timepoints", mcp.Description("Minimum usable timepoints per series (defaults to 2).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleComputeTrends)

	// --- 2. Tool: compute_deltas ---
	s.AddTool(mcp.NewTool("compute_deltas",
		mcp.WithDescription("Compute consecutive timepoint-to-timepoint changes per subject, structure, and measure type."),
		mcp.WithString("input", mcp.Description("Path to the measurement input (CSV, JSON, or Parquet). Defaults to the configured input.")),
		mcp.WithString("measure", mcp.Description("Restrict to one measure type."), mcp.Enum("volume", "thickness")),
		mcp.WithString("subject", mcp.Description("Restrict to one base subject ID.")),
		mcp.WithString("structure", mcp.Description("Case-insensitive structure name substring filter.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleComputeDeltas)

	// --- 3. Tool: qc_summary ---
	s.AddTool(mcp.NewTool("qc_summary",
		mcp.WithDescription("Aggregate MRIQC-style image-quality documents into outlier flags and per-metric z-scores."),
		mcp.WithString("input", mcp.Description("Path to a directory of MRIQC JSON documents or a single JSON file. Defaults to the configured input.")),
	), h.handleQCSummary)

	return s
}

// StartMCPServer starts the Longstat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RunManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
