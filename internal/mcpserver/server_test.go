package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nancruz/blogindex/internal/models"
	"github.com/nancruz/blogindex/internal/postservice"
	"github.com/nancruz/blogindex/internal/testutil"
)

func testServer(t *testing.T, withSearch bool) (*Server, string) {
	t.Helper()

	dir, store := testutil.TestContent(t)
	testutil.WriteFile(t, dir, "a.md", testutil.PostFile("Hello", "2023-01-01", []string{"go", "web"}, "# Hello\n\nfirst post\n"))
	testutil.WriteFile(t, dir, "b.md", testutil.PostFile("World", "2023-06-01", []string{"go"}, "second post\n"))

	var svc *postservice.Service
	if withSearch {
		svc = postservice.NewService(store, testutil.TestDB(t), nil)
		if err := svc.Reindex(context.Background()); err != nil {
			t.Fatal(err)
		}
	} else {
		svc = postservice.NewService(store, nil, nil)
	}
	return New(svc, "test"), dir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so dispatch to the
	// handler functions.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "get_post":
		result, err = srv.getPost(ctx, req)
	case "list_tags":
		result, err = srv.listTags(ctx, req)
	case "search_posts":
		result, err = srv.searchPosts(ctx, req)
	case "get_post_contract":
		result, err = srv.getPostContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListPosts(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "list_posts", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var posts []models.PostSummary
	if err := json.Unmarshal([]byte(resultText(r)), &posts); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 || posts[0].Slug != "b" || posts[1].Slug != "a" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestListPosts_ByTag(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "list_posts", map[string]interface{}{"tag": "web"})
	var posts []models.PostSummary
	if err := json.Unmarshal([]byte(resultText(r)), &posts); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestGetPost(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "get_post", map[string]interface{}{"slug": "a", "html": true})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var post postservice.PostDetail
	if err := json.Unmarshal([]byte(resultText(r)), &post); err != nil {
		t.Fatal(err)
	}
	if post.Title != "Hello" {
		t.Errorf("title = %q", post.Title)
	}
	if !strings.Contains(post.HTML, "<h1") {
		t.Errorf("html = %q", post.HTML)
	}
}

func TestGetPostMissing(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "get_post", map[string]interface{}{"slug": "nope"})
	if !r.IsError {
		t.Error("expected error for missing post")
	}
	r = callTool(t, srv, "get_post", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error when slug is absent")
	}
}

func TestGetPost_ParseErrorNamesFile(t *testing.T) {
	srv, dir := testServer(t, false)
	testutil.WriteFile(t, dir, "bad.md", "---\ndate: 2023-01-01\n---\nno title\n")

	r := callTool(t, srv, "get_post", map[string]interface{}{"slug": "bad"})
	if !r.IsError {
		t.Fatal("expected error for unparseable post")
	}
	if !strings.Contains(resultText(r), "bad.md") {
		t.Errorf("error text = %q", resultText(r))
	}
}

func TestListTags(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "list_tags", nil)
	var counts []postservice.TagCount
	if err := json.Unmarshal([]byte(resultText(r)), &counts); err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 || counts[0].Tag != "go" || counts[0].Count != 2 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestSearchPosts(t *testing.T) {
	srv, _ := testServer(t, true)

	r := callTool(t, srv, "search_posts", map[string]interface{}{"query": "second"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"slug": "b"`) {
		t.Errorf("search result = %s", resultText(r))
	}
}

func TestSearchPosts_Disabled(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "search_posts", map[string]interface{}{"query": "x"})
	if !r.IsError {
		t.Error("expected error when search is disabled")
	}
}

func TestPostContract(t *testing.T) {
	srv, _ := testServer(t, false)

	r := callTool(t, srv, "get_post_contract", nil)
	if !strings.Contains(resultText(r), "title") {
		t.Error("contract missing title rule")
	}
}
