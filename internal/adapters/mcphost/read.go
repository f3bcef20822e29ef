// Package mcphost registers the vault tools the breakdown-mcp binary
// exposes over stdio.
package mcphost

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"breakdown/internal/ports"
)

// RegisterReadTools adds the read-only vault tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.VaultRepository) {
	s.AddTool(readFileTool(), readFileHandler(repo))
	s.AddTool(listFilesTool(), listFilesHandler(repo))
	s.AddTool(searchVaultTool(), searchVaultHandler(repo))
}

// --- read_file ---

func readFileTool() mcp.Tool {
	return mcp.NewTool("read_file",
		mcp.WithDescription("Read a file from the vault."),
		mcp.WithString("path",
			mcp.Description("Vault-relative path of the file to read"),
			mcp.Required(),
		),
	)
}

func readFileHandler(repo ports.VaultRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		content, err := repo.ReadFile(path)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(content), nil
	}
}

// --- list_files ---

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List files in a vault folder. Folders are suffixed with /."),
		mcp.WithString("path",
			mcp.Description("Vault-relative folder path. Omit for the vault root."),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("List nested files with their full vault-relative paths."),
		),
	)
}

func listFilesHandler(repo ports.VaultRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		recursive := req.GetBool("recursive", false)

		files, err := repo.ListFiles(path, recursive)
		if err != nil {
			return toolError(err)
		}
		if len(files) == 0 {
			return mcp.NewToolResultText("Empty folder."), nil
		}
		return mcp.NewToolResultText(strings.Join(files, "\n")), nil
	}
}

// --- search_vault ---

func searchVaultTool() mcp.Tool {
	return mcp.NewTool("search_vault",
		mcp.WithDescription("Search markdown files in the vault for a string."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Vault-relative folder to search under. Omit for the whole vault."),
		),
	)
}

func searchVaultHandler(repo ports.VaultRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		path := req.GetString("path", "")

		hits, err := repo.Search(query, path)
		if err != nil {
			return toolError(err)
		}
		if len(hits) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, h := range hits {
			fmt.Fprintf(&sb, "%s:%d  %s\n", h.Path, h.Line, h.Text)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
