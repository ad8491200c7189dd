//go:build !ebiten

package main

import (
	"strings"
	"testing"
)

func TestViewRequiresEbitenTag(t *testing.T) {
	_, _, err := run(t, "view")
	if err == nil || !strings.Contains(err.Error(), "ebiten build tag") {
		t.Fatalf("expected build tag error, got %v", err)
	}
}
