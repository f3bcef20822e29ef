package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"breakdown/internal/adapters/mcphost"
	"breakdown/internal/adapters/vaultfs"
	"breakdown/internal/config"
)

func main() {
	cfg := config.Load()
	vaultFlag := flag.String("vault", cfg.VaultPath, "path to the vault")
	flag.Parse()

	repo := vaultfs.NewRepository(*vaultFlag)

	mcpServer := server.NewMCPServer(
		"breakdown-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcphost.RegisterReadTools(mcpServer, repo)
	mcphost.RegisterWriteTools(mcpServer, repo)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("breakdown-mcp: %v", err)
	}
}
