// Package mcpclient implements the ToolCaller port over an MCP stdio
// connection, spawning the tool host as a subprocess.
package mcpclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Client is a ToolCaller backed by an MCP server over stdio.
type Client struct {
	mcp *client.Client
}

// Connect launches the tool host process and performs the MCP handshake.
func Connect(ctx context.Context, command string, args ...string) (*Client, error) {
	c, err := client.NewStdioMCPClient(command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("starting tool host %s: %w", command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "breakdown",
		Version: "0.1.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("initializing tool host: %w", err)
	}

	return &Client{mcp: c}, nil
}

// CallTool invokes a named tool and returns its text result. A tool-level
// error is returned as an error with the host's failure text so callers can
// record it.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("calling tool %s: %w", name, err)
	}

	text := contentText(res.Content)
	if res.IsError {
		return "", fmt.Errorf("tool %s failed: %s", name, text)
	}
	return text, nil
}

// ListTools returns the names of the tools the host exposes.
func (c *Client) ListTools(ctx context.Context) ([]string, error) {
	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

// Close shuts down the connection and the tool host process.
func (c *Client) Close() error {
	return c.mcp.Close()
}

func contentText(content []mcp.Content) string {
	var sb strings.Builder
	for _, item := range content {
		switch tc := item.(type) {
		case mcp.TextContent:
			sb.WriteString(tc.Text)
		case *mcp.TextContent:
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
