// Package mcp carries the transport layer: a stdio server that exposes
// skillet tools to MCP clients, and a client plus tool adapter that fold
// a remote server's tools back into the skillet.Tool shape. Running the
// agent against an in-process toolkit or a served one is behaviorally
// identical.
package mcp

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerOptions configure a new Server.
type ServerOptions struct {
	// Name reported to clients during the initialize handshake.
	// Defaults to "skillet".
	Name string

	// Version reported to clients. Defaults to "0.1.0".
	Version string

	// Tools to expose. Required.
	Tools []skillet.Tool

	// Logger receives serve diagnostics. Logs must stay off stdout,
	// which belongs to the protocol; slogger writes to stderr.
	Logger slogger.Logger
}

// Server exposes a set of skillet tools over MCP stdio.
type Server struct {
	inner  *mcpserver.MCPServer
	logger slogger.Logger
	name   string
}

// NewServer creates a stdio MCP server serving the given tools.
func NewServer(opts ServerOptions) (*Server, error) {
	if len(opts.Tools) == 0 {
		return nil, ErrNoTools
	}
	if opts.Name == "" {
		opts.Name = clientName
	}
	if opts.Version == "" {
		opts.Version = clientVersion
	}
	if opts.Logger == nil {
		opts.Logger = slogger.DefaultLogger
	}
	inner := mcpserver.NewMCPServer(opts.Name, opts.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	for _, tool := range opts.Tools {
		inner.AddTool(convertToolDefinition(tool), toolHandler(tool, opts.Logger))
	}
	return &Server{
		inner:  inner,
		logger: opts.Logger,
		name:   opts.Name,
	}, nil
}

// ServeStdio serves requests on stdin/stdout until the context is
// canceled or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio", "server", s.name)
	stdio := mcpserver.NewStdioServer(s.inner)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// convertToolDefinition maps a skillet tool definition onto the MCP tool
// form. Property order in the emitted schema is made deterministic.
func convertToolDefinition(tool skillet.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(tool.Description())}
	if annotations := tool.Annotations(); annotations != nil {
		if annotations.Title != "" {
			opts = append(opts, mcp.WithTitleAnnotation(annotations.Title))
		}
		opts = append(opts,
			mcp.WithReadOnlyHintAnnotation(annotations.ReadOnlyHint),
			mcp.WithDestructiveHintAnnotation(annotations.DestructiveHint),
			mcp.WithIdempotentHintAnnotation(annotations.IdempotentHint),
			mcp.WithOpenWorldHintAnnotation(annotations.OpenWorldHint),
		)
	}
	if s := tool.Schema(); s != nil {
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			property := s.Properties[name]
			propertyOpts := []mcp.PropertyOption{mcp.Description(property.Description)}
			if required[name] {
				propertyOpts = append(propertyOpts, mcp.Required())
			}
			switch property.Type {
			case "number", "integer":
				opts = append(opts, mcp.WithNumber(name, propertyOpts...))
			case "boolean":
				opts = append(opts, mcp.WithBoolean(name, propertyOpts...))
			default:
				opts = append(opts, mcp.WithString(name, propertyOpts...))
			}
		}
	}
	return mcp.NewTool(tool.Name(), opts...)
}

// toolHandler bridges one MCP call into the tool. Go errors from the
// tool are protocol errors; error results pass through as tool output
// with the error flag set.
func toolHandler(tool skillet.Tool, logger slogger.Logger) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger.Debug("mcp tool call received", "tool", tool.Name())
		result, err := tool.Call(ctx, request.GetArguments())
		if err != nil {
			logger.Error("mcp tool call failed", "tool", tool.Name(), "error", err)
			return nil, fmt.Errorf("tool %q failed: %w", tool.Name(), err)
		}
		return convertToolResult(result), nil
	}
}

// convertToolResult maps the local tool result model onto MCP content.
func convertToolResult(result *skillet.ToolResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, block := range result.Content {
		switch block.Type {
		case skillet.ToolResultContentTypeImage:
			content = append(content, mcp.NewImageContent(block.Data, block.MimeType))
		case skillet.ToolResultContentTypeAudio:
			content = append(content, mcp.NewAudioContent(block.Data, block.MimeType))
		default:
			content = append(content, mcp.NewTextContent(block.Text))
		}
	}
	return &mcp.CallToolResult{Content: content, IsError: result.IsError}
}
