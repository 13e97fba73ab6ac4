package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	pkgLog "smart-assistant/pkg/log"
)

const unknownModel = "unknown"

type fileRecorder struct {
	l    pkgLog.Logger
	path string

	mu     sync.Mutex
	counts map[string]Tokens
}

// New loads the usage file at path (a missing file starts empty) and returns a Recorder.
// An unreadable or corrupt file is logged and replaced on the next write.
func New(l pkgLog.Logger, path string) Recorder {
	r := &fileRecorder{
		l:      l,
		path:   path,
		counts: make(map[string]Tokens),
	}
	if err := r.load(); err != nil {
		l.Warnf(context.Background(), "usage: could not load %s, starting empty: %v", path, err)
	}
	return r
}

func (r *fileRecorder) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	counts := make(map[string]Tokens)
	if err := json.Unmarshal(data, &counts); err != nil {
		return err
	}
	// A file holding "null" decodes to a nil map.
	if counts == nil {
		counts = make(map[string]Tokens)
	}
	r.counts = counts
	return nil
}

func (r *fileRecorder) Record(ctx context.Context, model string, t Tokens) error {
	if model == "" {
		model = unknownModel
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[model] = r.counts[model].add(t)
	if err := r.persist(); err != nil {
		r.l.Errorf(ctx, "usage: failed to persist %s: %v", r.path, err)
		return fmt.Errorf("persist usage: %w", err)
	}
	return nil
}

// persist writes through a temp file so a crash never leaves a truncated file. Caller holds mu.
func (r *fileRecorder) persist() error {
	if r.path == "" {
		return nil
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(r.counts, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *fileRecorder) Snapshot() map[string]Tokens {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Tokens, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

func (r *fileRecorder) SummaryLines() []string {
	snap := r.Snapshot()
	models := make([]string, 0, len(snap))
	for m := range snap {
		models = append(models, m)
	}
	sort.Strings(models)

	lines := make([]string, 0, len(models))
	for _, m := range models {
		t := snap[m]
		lines = append(lines, fmt.Sprintf("%s: prompt=%d completion=%d total=%d", m, t.PromptTokens, t.CompletionTokens, t.TotalTokens))
	}
	return lines
}
