package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	pkgLog "smart-assistant/pkg/log"
)

type fileLogger struct {
	l         pkgLog.Logger
	dir       string
	retention int
	now       func() time.Time

	mu sync.Mutex
}

// New creates the audit directory, removes expired files and returns a Logger.
func New(l pkgLog.Logger, cfg Config) (Logger, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("audit: dir is required")
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = defaultRetDays
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("audit: create dir: %w", err)
	}

	fl := &fileLogger{
		l:         l,
		dir:       cfg.Dir,
		retention: cfg.RetentionDays,
		now:       cfg.Now,
	}
	if n, err := fl.Cleanup(context.Background()); err != nil {
		l.Warnf(context.Background(), "audit: cleanup failed: %v", err)
	} else if n > 0 {
		l.Infof(context.Background(), "audit: removed %d expired log files", n)
	}
	return fl, nil
}

func (f *fileLogger) LogInteraction(ctx context.Context, in Interaction) {
	success := in.Success
	f.write(ctx, TypeInteractions, Entry{
		Type:     "user_interaction",
		UserID:   in.UserID,
		Username: in.Username,
		Source:   in.Source,
		Input:    truncate(in.Input, maxInputLen),
		Output:   truncate(in.Output, maxOutputLen),
		Success:  &success,
		Metadata: sanitize(in.Metadata),
	})
}

func (f *fileLogger) LogError(ctx context.Context, in ErrorRecord) {
	f.write(ctx, TypeErrors, Entry{
		Type:         "error",
		ErrorType:    in.ErrorType,
		ErrorMessage: in.Message,
		UserID:       in.UserID,
		Username:     in.Username,
		Metadata:     sanitize(in.Context),
	})
}

func (f *fileLogger) LogSystemEvent(ctx context.Context, eventType, description string, metadata map[string]any) {
	f.write(ctx, TypeEvents, Entry{
		Type:        "system_event",
		EventType:   eventType,
		Description: description,
		Metadata:    sanitize(metadata),
	})
}

func (f *fileLogger) LogAPIUsage(ctx context.Context, model string, promptTokens, completionTokens, totalTokens int) {
	f.write(ctx, TypeAPIUsage, Entry{
		Type:             "api_usage",
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
	})
}

func (f *fileLogger) write(ctx context.Context, logType string, e Entry) {
	now := f.now()
	e.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	e.Timestamp = now

	line, err := json.Marshal(e)
	if err != nil {
		f.l.Errorf(ctx, "audit: marshal %s entry: %v", logType, err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path(logType, now), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		f.l.Errorf(ctx, "audit: open %s log: %v", logType, err)
		return
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		f.l.Errorf(ctx, "audit: write %s log: %v", logType, err)
	}
}

func (f *fileLogger) path(logType string, day time.Time) string {
	return filepath.Join(f.dir, logType+"_"+day.Format(fileDateLayout)+fileExt)
}

func (f *fileLogger) Query(ctx context.Context, logType string, from, to time.Time, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultQueryMax
	}
	if to.IsZero() {
		to = f.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -f.retention)
	}

	var out []Entry
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for !day.After(to) && len(out) < limit {
		entries, err := f.readDay(logType, day)
		if err != nil {
			return out, err
		}
		for _, e := range entries {
			if e.Timestamp.Before(from) || e.Timestamp.After(to) {
				continue
			}
			out = append(out, e)
			if len(out) >= limit {
				break
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}

func (f *fileLogger) readDay(logType string, day time.Time) ([]Entry, error) {
	file, err := os.Open(f.path(logType, day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

func (f *fileLogger) Cleanup(ctx context.Context) (int, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, "*"+fileExt))
	if err != nil {
		return 0, err
	}

	cutoff := f.now().AddDate(0, 0, -f.retention)
	removed := 0
	for _, m := range matches {
		stem := strings.TrimSuffix(filepath.Base(m), fileExt)
		idx := strings.LastIndex(stem, "_")
		if idx < 0 {
			continue
		}
		fileDate, err := time.ParseInLocation(fileDateLayout, stem[idx+1:], cutoff.Location())
		if err != nil {
			continue
		}
		if fileDate.Before(cutoff) {
			if err := os.Remove(m); err != nil {
				f.l.Warnf(ctx, "audit: remove %s: %v", m, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// sanitize returns a copy of m with values under sensitive keys redacted.
func sanitize(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if isSensitive(k) {
			out[k] = redactedValue
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = sanitize(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
