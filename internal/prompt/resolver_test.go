package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	baseDir := t.TempDir()
	promptsDir := filepath.Join(baseDir, "prompts")
	if err := os.Mkdir(promptsDir, 0o755); err != nil {
		t.Fatalf("mkdir prompts: %v", err)
	}
	r, err := New(baseDir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r, promptsDir
}

func writePrompt(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestNewRequiresPromptsDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("New() with missing prompts directory should fail")
	}
}

func TestResolveBaseOnly(t *testing.T) {
	r, dir := newTestResolver(t)
	writePrompt(t, dir, "system-default.md", "A\n")

	got, err := r.Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "A" {
		t.Fatalf("Resolve() = %q, want %q", got, "A")
	}
}

func TestResolveBasePlusSupplemental(t *testing.T) {
	r, dir := newTestResolver(t)
	writePrompt(t, dir, "system-default.md", "A")
	writePrompt(t, dir, "system-claims.md", "B")

	got, err := r.Resolve("claims")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "A\n\nB" {
		t.Fatalf("Resolve() = %q, want %q", got, "A\n\nB")
	}
}

func TestResolveMissingSupplementalFallsBack(t *testing.T) {
	r, dir := newTestResolver(t)
	writePrompt(t, dir, "system-default.md", "A")

	got, err := r.Resolve("does-not-exist")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "A" {
		t.Fatalf("Resolve() = %q, want %q", got, "A")
	}
}

func TestResolveMissingBaseFails(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve("")
	if err == nil {
		t.Fatalf("Resolve() with missing base prompt should fail")
	}
	if !errors.Is(err, ErrBasePromptMissing) {
		t.Fatalf("Resolve() error = %v, want ErrBasePromptMissing", err)
	}
}

func TestResolvePreservesEmbeddedContent(t *testing.T) {
	r, dir := newTestResolver(t)
	base := "You are a coverage navigator.\n\nAlways cite the policy section.\nRépondez en français: ✓"
	writePrompt(t, dir, "system-default.md", "  "+base+"  \n")

	got, err := r.Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != base {
		t.Fatalf("Resolve() = %q, want %q", got, base)
	}
}

func TestResolveRejectsPathTraversal(t *testing.T) {
	r, dir := newTestResolver(t)
	writePrompt(t, dir, "system-default.md", "A")

	got, err := r.Resolve("../secrets")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "A" {
		t.Fatalf("Resolve() = %q, want base-only fallback %q", got, "A")
	}
}
