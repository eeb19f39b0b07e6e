// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only blog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nancruz/blogindex/internal/apperr"
	"github.com/nancruz/blogindex/internal/postservice"
)

const contractURI = "blogindex://post-format"

// Server wraps the MCP server with post tools.
type Server struct {
	mcp *server.MCPServer
	svc *postservice.Service
}

// New creates a new MCP server with all post tools registered.
func New(svc *postservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"blogindex",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List posts newest first. Returns slug, title, tags and date for each post."),
		mcp.WithString("tag", mcp.Description("Only return posts carrying this exact tag")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("get_post",
		mcp.WithDescription("Read one post by slug, including its Markdown body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (file name without .md)")),
		mcp.WithBoolean("html", mcp.Description("Also return the body rendered to HTML")),
	), s.getPost)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag used by at least one post, with post counts."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Full-text search through post titles, tags and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("get_post_contract",
		mcp.WithDescription("Returns the post file format: front-matter fields, date formats and slug rules."),
	), s.getPostContract)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Post Format Contract",
			mcp.WithResourceDescription("Front-matter and file naming rules every post must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// toolError turns an index error into a tool-level error result so the
// model sees the reason instead of a protocol failure.
func toolError(err error) *mcp.CallToolResult {
	var pe *apperr.ParseError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError("not found")
	case errors.As(err, &pe):
		return mcp.NewToolResultError(fmt.Sprintf("invalid post %s: %v", pe.File, pe.Err))
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.svc.ListPosts(ctx, req.GetString("tag", ""))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(posts)
}

func (s *Server) getPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.svc.GetPost(ctx, slug, req.GetBool("html", false))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(post)
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts, err := s.svc.TagCounts(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(counts)
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(results)
}

func (s *Server) getPostContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) readPostFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}
