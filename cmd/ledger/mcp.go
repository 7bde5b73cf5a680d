package main

import (
	"github.com/spf13/cobra"

	"github.com/RahilKothari9/supplier-analysis/pkg/api/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the supplier analysis MCP server on stdio",
	Long:  `Launch an MCP server that lets AI agents run supplier health checks through the analyze_supplier tool.`,
	// Logs go to stderr; stdout carries the protocol.
	PreRunE: setup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.Serve(engine, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
