package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("**bold** <script>alert(1)</script>"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", out)
	}
}

func TestRenderMarkdownLinks(t *testing.T) {
	out := string(RenderMarkdown("[site](https://example.com)"))
	if !strings.Contains(out, `target="_blank"`) {
		t.Fatalf("external link missing target=_blank: %q", out)
	}
}
