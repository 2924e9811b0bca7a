package handlers

import (
	"strings"
	"testing"

	"aniverse/internal/models"
)

func TestRenderCommentHTMLWholeTree(t *testing.T) {
	child := &models.Comment{Content: "*agreed* <script>alert(1)</script>"}
	root := &models.Comment{
		Content: "**great episode**",
		Replies: []*models.Comment{child},
	}

	renderCommentHTML([]*models.Comment{root})

	if !strings.Contains(string(root.ContentHTML), "<strong>great episode</strong>") {
		t.Fatalf("root not rendered: %q", root.ContentHTML)
	}
	if !strings.Contains(string(child.ContentHTML), "<em>agreed</em>") {
		t.Fatalf("reply not rendered: %q", child.ContentHTML)
	}
	if strings.Contains(string(child.ContentHTML), "<script>") {
		t.Fatalf("script survived sanitization: %q", child.ContentHTML)
	}
}
