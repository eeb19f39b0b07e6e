package render

import (
	"strings"
	"testing"
)

func TestHTML_HeadingsAndCode(t *testing.T) {
	r := New()
	out, err := r.HTML("# Hello World\n\n```go\nfmt.Println(1)\n```\n")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(out, `<h1 id="hello-world">Hello World</h1>`) {
		t.Errorf("missing heading with id: %s", out)
	}
	if !strings.Contains(out, `class="language-go"`) {
		t.Errorf("missing fenced code language class: %s", out)
	}
}

func TestHTML_GFMTable(t *testing.T) {
	r := New()
	out, err := r.HTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("expected table: %s", out)
	}
}

func TestHTML_RawHTMLOmitted(t *testing.T) {
	r := New()
	out, err := r.HTML("<script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML should not pass through: %s", out)
	}
}
