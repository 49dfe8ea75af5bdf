// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Worldbuilder tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mirefeld/worldbuilder/internal/apperr"
	"github.com/mirefeld/worldbuilder/internal/nodeservice"
	"github.com/mirefeld/worldbuilder/internal/store"
)

// Server wraps the MCP server with Worldbuilder tools.
type Server struct {
	mcp   *server.MCPServer
	store store.Provider
	svc   *nodeservice.Service
}

// New creates a new MCP server with all Worldbuilder tools registered.
func New(st store.Provider, svc *nodeservice.Service) *Server {
	s := &Server{store: st, svc: svc}

	s.mcp = server.NewMCPServer(
		"Worldbuilder",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_nodes",
		mcp.WithDescription("Full-text search through node types and notes."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNodes)

	s.mcp.AddTool(mcp.NewTool("read_node",
		mcp.WithDescription("Read the raw record of a node by key."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Node key (slug, e.g. minas_tirith)")),
	), s.readNode)

	s.mcp.AddTool(mcp.NewTool("create_node",
		mcp.WithDescription("Create a new node. The name is slugified into a key. "+
			"Records follow a strict line format (type, parent, notes). Read the contract "+
			"first via the get_record_contract tool or the worldbuilder://record-format resource."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Human-readable node name; slugified into the key")),
		mcp.WithString("type", mcp.Description("Category label, e.g. Kingdom or City (default Node)")),
		mcp.WithString("parent", mcp.Description("Key of the parent node; empty for a root")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	), s.createNode)

	s.mcp.AddTool(mcp.NewTool("get_record_contract",
		mcp.WithDescription("Returns the canonical Worldbuilder record format contract. "+
			"Call this before creating nodes to ensure correct structure."),
	), s.getRecordContract)

	s.mcp.AddTool(mcp.NewTool("list_nodes",
		mcp.WithDescription("List all nodes, optionally filtered by type."),
		mcp.WithString("type", mcp.Description("Optional type filter (case-insensitive, empty for all)")),
	), s.listNodes)

	s.mcp.AddTool(mcp.NewTool("node_tree",
		mcp.WithDescription("Render the node hierarchy as box-drawing text."),
		mcp.WithString("root", mcp.Description("Optional root key; empty renders every root")),
	), s.nodeTree)

	// Resource: record format contract.
	s.mcp.AddResource(
		mcp.NewResource("worldbuilder://record-format", "Record Format Contract",
			mcp.WithResourceDescription("Canonical flat-text record format that all nodes follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// optionalString returns the string argument value or "" when absent.
func optionalString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

func (s *Server) searchNodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", key)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) createNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind := optionalString(req, "type")
	parent := optionalString(req, "parent")
	notes := optionalString(req, "notes")

	node, err := s.svc.CreateNode(ctx, name, kind, parent, notes, false)
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return mcp.NewToolResultError(fmt.Sprintf("node already exists: %s", store.Slugify(name))), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", node.Key)), nil
}

func (s *Server) listNodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := optionalString(req, "type")

	items, err := s.svc.ListNodes(ctx, kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s [%s] parent=%s", it.Key, it.Type, it.Parent))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) nodeTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := optionalString(req, "root")

	out, err := s.svc.Tree(ctx, root)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("root not found: %s", root)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) getRecordContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecordFormatContract), nil
}

func (s *Server) readRecordFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "worldbuilder://record-format",
			MIMEType: "text/markdown",
			Text:     RecordFormatContract,
		},
	}, nil
}
