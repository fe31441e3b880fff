package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpcneuro/longstat/core"
	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/internal/source"
	"github.com/hpcneuro/longstat/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RunManager
}

// applyRecordFilters copies the shared record-level overrides from a tool
// request onto a cloned config.
func applyRecordFilters(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("input", ""); p != "" {
		if err := contract.RevalidateInput(cfg, p, ""); err != nil {
			return err
		}
	}
	if m := request.GetString("measure", ""); m != "" {
		cfg.Measure = schema.MeasureType(m)
	}
	if s := request.GetString("subject", ""); s != "" {
		cfg.Subject = s
	}
	if s := request.GetString("structure", ""); s != "" {
		cfg.Structure = s
	}
	return nil
}

func (h *toolHandler) handleComputeTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRecordFilters(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input parameters: %v", err)), nil
	}

	alpha := request.GetFloat("alpha", cfg.Alpha)
	minTimepoints := request.GetInt("min_timepoints", cfg.MinTimepoints)
	if err := contract.RevalidateTrendParams(cfg, alpha, minTimepoints); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}

	src := source.NewRecordSource(cfg)
	output, err := core.GetTrendOutput(core.WithSuppressHeader(ctx), cfg, src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend estimation failed: %v", err)), nil
	}

	if l := request.GetInt("limit", 0); l > 0 && l < len(output.Trends) {
		output.Trends = output.Trends[:l]
	}
	jsonData, _ := json.MarshalIndent(output, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeDeltas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRecordFilters(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input parameters: %v", err)), nil
	}

	src := source.NewRecordSource(cfg)
	output, err := core.GetDeltaOutput(core.WithSuppressHeader(ctx), cfg, src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delta computation failed: %v", err)), nil
	}

	if l := request.GetInt("limit", 0); l > 0 && l < len(output.Deltas) {
		output.Deltas = output.Deltas[:l]
	}
	jsonData, _ := json.MarshalIndent(output, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleQCSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		if err := contract.RevalidateInput(cfg, p, ""); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid input parameters: %v", err)), nil
		}
	}

	src := source.NewQCSource(cfg)
	output, err := core.GetQCOutput(core.WithSuppressHeader(ctx), cfg, src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("QC aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
