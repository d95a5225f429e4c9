package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve extraction tools over MCP stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		extractor := newExtractor(cfg, logger)

		srv := mcp.NewServer(&mcp.Implementation{
			Name:    "papersec",
			Version: "1.0.0",
		}, nil)
		extractor.RegisterMCP(srv)

		logger.Info("MCP stdio server starting")
		return srv.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}
