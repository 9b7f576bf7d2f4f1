// Package mcp bridges tools served over the Model Context Protocol into
// functions that agents can call. A Client starts the server as a subprocess,
// speaks the protocol over stdio and exposes every discovered tool as a
// *core.Function whose handler proxies the call back to the server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configure a Client connection.
type Options struct {
	// ClientName and ClientVersion are reported to the server during the
	// protocol handshake.
	ClientName    string
	ClientVersion string

	// Stderr receives the server subprocess diagnostics.
	Stderr io.Writer

	// Logger receives connection and discovery events.
	Logger logging.Logger
}

// Client manages the connection to a single MCP server subprocess.
type Client struct {
	name      string
	cmd       *exec.Cmd
	session   *mcpsdk.ClientSession
	functions []*core.Function
	logger    logging.Logger
}

// Connect starts the MCP server subprocess, performs the protocol handshake
// and discovers the tools it offers.
func Connect(ctx context.Context, name, command string, args []string, optFns ...func(o *Options)) (*Client, error) {
	opts := Options{
		ClientName:    "agentswarm",
		ClientVersion: "v1.0.0",
		Stderr:        os.Stderr,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	cmd := exec.Command(command, args...)
	cmd.Stderr = opts.Stderr

	sdkClient := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    opts.ClientName,
		Version: opts.ClientVersion,
	}, nil)

	session, err := sdkClient.Connect(ctx, mcpsdk.NewCommandTransport(cmd))
	if err != nil {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}

		return nil, fmt.Errorf("failed to connect to MCP server %s: %w", name, err)
	}

	client := &Client{
		name:    name,
		cmd:     cmd,
		session: session,
		logger:  opts.Logger,
	}

	if err := client.discoverTools(ctx); err != nil {
		_ = client.Close()

		return nil, err
	}

	opts.Logger.Info("mcp.connected",
		"server", name,
		"tools", len(client.functions),
	)

	return client, nil
}

// discoverTools pages through the server's tool list and registers a bridged
// function for each entry.
func (c *Client) discoverTools(ctx context.Context) error {
	params := &mcpsdk.ListToolsParams{}

	for {
		page, err := c.session.ListTools(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list tools from MCP server %s: %w", c.name, err)
		}

		for _, tool := range page.Tools {
			c.registerTool(tool.Name, tool.Description, schemaMap(tool.InputSchema))
		}

		if page.NextCursor == "" {
			break
		}

		params.Cursor = page.NextCursor
	}

	return nil
}

// registerTool builds the bridged function for one discovered tool. The
// handler captures the tool name, not the loop variable.
func (c *Client) registerTool(name, description string, schema map[string]any) {
	c.functions = append(c.functions, &core.Function{
		Name:        name,
		Description: description,
		Schema:      schema,
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return c.call(ctx, name, args)
		},
	})

	c.logger.Debug("mcp.tool.bridged",
		"server", c.name,
		"tool", name,
	)
}

// call forwards a tool invocation to the server and concatenates the textual
// content of the result.
func (c *Client) call(ctx context.Context, tool string, args map[string]any) (any, error) {
	result, err := c.session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call tool %s: %w", tool, err)
	}

	var sb strings.Builder

	for _, content := range result.Content {
		if text, ok := content.(*mcpsdk.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}

	return sb.String(), nil
}

// Name returns the configured server name.
func (c *Client) Name() string { return c.name }

// Functions returns the bridged functions discovered on the server.
func (c *Client) Functions() []*core.Function {
	out := make([]*core.Function, len(c.functions))
	copy(out, c.functions)

	return out
}

// Close terminates the session and the server subprocess.
func (c *Client) Close() error {
	var err error
	if c.session != nil {
		err = c.session.Close()
	}

	// The transport reaps the subprocess on close; the kill is a fallback.
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}

	return err
}

// schemaMap converts the wire schema into a plain map. The schema type is
// treated as opaque JSON.
func schemaMap(schema any) map[string]any {
	if schema == nil {
		return nil
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}

	return out
}
