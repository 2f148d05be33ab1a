package prompt

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	promptsSubdir  = "prompts"
	basePromptFile = "system-default.md"
)

// ErrBasePromptMissing marks the one prompt failure that fails a request:
// the mandatory base prompt file is absent.
var ErrBasePromptMissing = errors.New("base system prompt not found")

// Resolver assembles the system directive sent to the AI provider from
// files under <baseDir>/prompts/. The base prompt is mandatory; a request
// may name one supplemental prompt which is appended when present.
type Resolver struct {
	promptsDir string
}

// New validates that the prompts directory exists. A missing directory is
// a deployment problem, so it is surfaced at startup rather than on the
// first request.
func New(baseDir string) (*Resolver, error) {
	dir := filepath.Join(baseDir, promptsSubdir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("prompts directory not found: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prompts path is not a directory: %s", dir)
	}
	return &Resolver{promptsDir: dir}, nil
}

// Resolve loads the base prompt and, when identifier is non-empty, the
// supplemental prompt system-<identifier>.md. The parts are joined with
// exactly one blank line; the result carries no leading or trailing
// whitespace. A missing supplemental file falls back to base only.
func (r *Resolver) Resolve(identifier string) (string, error) {
	base, err := os.ReadFile(filepath.Join(r.promptsDir, basePromptFile))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBasePromptMissing, filepath.Join(r.promptsDir, basePromptFile))
	}

	resolved := strings.TrimSpace(string(base))

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return resolved, nil
	}
	if !safeIdentifier(identifier) {
		log.Printf("ignoring unsafe prompt identifier %q", identifier)
		return resolved, nil
	}

	path := filepath.Join(r.promptsDir, "system-"+identifier+".md")
	supplemental, err := os.ReadFile(path)
	if err != nil {
		log.Printf("supplemental system prompt not found: %s", path)
		return resolved, nil
	}

	extra := strings.TrimSpace(string(supplemental))
	if extra == "" {
		return resolved, nil
	}
	return resolved + "\n\n" + extra, nil
}

// safeIdentifier rejects anything that could escape the prompts
// directory.
func safeIdentifier(id string) bool {
	if strings.ContainsAny(id, "/\\") {
		return false
	}
	return id == filepath.Base(id) && !strings.Contains(id, "..")
}
