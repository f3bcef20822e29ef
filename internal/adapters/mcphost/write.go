package mcphost

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"breakdown/internal/ports"
)

// RegisterWriteTools adds the vault write tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.VaultRepository) {
	s.AddTool(writeFileTool(), writeFileHandler(repo))
	s.AddTool(createFolderTool(), createFolderHandler(repo))
}

// --- write_file ---

func writeFileTool() mcp.Tool {
	return mcp.NewTool("write_file",
		mcp.WithDescription("Write a file into the vault, creating parent folders as needed."),
		mcp.WithString("path",
			mcp.Description("Vault-relative path of the file to write"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Full file content"),
			mcp.Required(),
		),
	)
}

func writeFileHandler(repo ports.VaultRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		content := req.GetString("content", "")

		if err := repo.WriteFile(path, content); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Wrote %s (%d bytes)", path, len(content))), nil
	}
}

// --- create_folder ---

func createFolderTool() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder in the vault."),
		mcp.WithString("path",
			mcp.Description("Vault-relative path of the folder to create"),
			mcp.Required(),
		),
	)
}

func createFolderHandler(repo ports.VaultRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		if err := repo.CreateFolder(path); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created folder %s", path)), nil
	}
}
