package tasklist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	pkgLog "smart-assistant/pkg/log"
)

// Provisioner maps requested list names onto a bounded set of remote lists,
// creating lists on demand while the cap allows.
type Provisioner struct {
	l        pkgLog.Logger
	backend  Backend
	registry *Registry
	scorer   Scorer

	presets   []string
	presetSet map[string]bool
	maxLists  int

	fallbackID string

	// mu serialises resolve-or-create so concurrent callers cannot both create a list.
	mu                sync.Mutex
	defaultID         string
	defaultDiscovered bool
	// remoteCount is the number of remote lists, duplicates and blank titles included.
	// The cap is checked against it, never against the cache size.
	remoteCount int
}

// NewProvisioner creates a Provisioner. It does not touch the backend; call
// EnsurePresets at startup to create presets eagerly.
func NewProvisioner(l pkgLog.Logger, backend Backend, cfg Config) *Provisioner {
	if cfg.MaxLists < 1 {
		cfg.MaxLists = 1
	}
	if cfg.Scorer == nil {
		cfg.Scorer = PrefixScorer{}
	}

	p := &Provisioner{
		l:          l,
		backend:    backend,
		registry:   NewRegistry(),
		scorer:     cfg.Scorer,
		presetSet:  make(map[string]bool),
		maxLists:   cfg.MaxLists,
		fallbackID: strings.TrimSpace(cfg.FallbackListID),
	}
	for _, name := range cfg.Presets {
		n := Normalize(name)
		if n == "" || p.presetSet[n] {
			continue
		}
		p.presetSet[n] = true
		p.presets = append(p.presets, n)
	}
	return p
}

// Registry exposes the cache for read-only callers.
func (p *Provisioner) Registry() *Registry { return p.registry }

// Presets returns the normalized preset names in configured order.
func (p *Provisioner) Presets() []string {
	out := make([]string, len(p.presets))
	copy(out, p.presets)
	return out
}

// MaxLists returns the configured cap.
func (p *Provisioner) MaxLists() int { return p.maxLists }

// ResolveOrCreate returns the id of the list a task named name should go to.
// It never fails: every problem degrades to the fallback list.
func (p *Provisioner) ResolveOrCreate(ctx context.Context, name string) string {
	n := Normalize(name)

	p.mu.Lock()
	defer p.mu.Unlock()

	if n == "" {
		return p.fallbackLocked(ctx)
	}

	if id, ok := p.registry.Lookup(n); ok {
		return id
	}

	mapping, err := p.refresh(ctx)
	if err != nil {
		p.l.Warnf(ctx, "tasklist: refresh failed, using fallback for %q: %v", n, err)
		return p.fallbackLocked(ctx)
	}
	if id, ok := mapping[n]; ok {
		return id
	}

	if len(p.presets) > 0 {
		return p.resolvePresetLocked(ctx, n)
	}

	if p.remoteCount >= p.maxLists {
		if id := containmentMatch(n, mapping); id != "" {
			p.l.Infof(ctx, "tasklist: at cap (%d), %q mapped to an existing list by name", p.maxLists, n)
			return id
		}
		p.l.Infof(ctx, "tasklist: at cap (%d), %q goes to fallback", p.maxLists, n)
		return p.fallbackLocked(ctx)
	}

	return p.createLocked(ctx, n)
}

func (p *Provisioner) resolvePresetLocked(ctx context.Context, n string) string {
	target := n
	if !p.presetSet[n] {
		if err := p.ensurePresetsLocked(ctx); err != nil {
			p.l.Warnf(ctx, "tasklist: ensure presets failed: %v", err)
		}
		target = p.closestPreset(n)
		if target == "" {
			p.l.Infof(ctx, "tasklist: no preset close to %q, using fallback", n)
			return p.fallbackLocked(ctx)
		}
		if id, ok := p.registry.Lookup(target); ok {
			return id
		}
	}

	if p.remoteCount >= p.maxLists {
		p.l.Infof(ctx, "tasklist: at cap (%d), preset %q not created", p.maxLists, target)
		return p.fallbackLocked(ctx)
	}
	return p.createLocked(ctx, target)
}

// closestPreset picks a preset by containment, then by the best positive score.
func (p *Provisioner) closestPreset(n string) string {
	for _, preset := range p.presets {
		if strings.Contains(preset, n) || strings.Contains(n, preset) {
			return preset
		}
	}

	best, bestScore := "", 0
	for _, preset := range p.presets {
		if s := p.scorer.Score(n, preset); s > bestScore {
			best, bestScore = preset, s
		}
	}
	return best
}

// EnsurePresets creates missing presets up to the cap. It is idempotent.
func (p *Provisioner) EnsurePresets(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensurePresetsLocked(ctx)
}

func (p *Provisioner) ensurePresetsLocked(ctx context.Context) error {
	if len(p.presets) == 0 {
		return nil
	}
	if _, err := p.refresh(ctx); err != nil {
		return err
	}

	for _, preset := range p.presets {
		if _, ok := p.registry.Lookup(preset); ok {
			continue
		}
		if p.remoteCount >= p.maxLists {
			p.l.Infof(ctx, "tasklist: cap %d reached, remaining presets not created", p.maxLists)
			break
		}
		created, err := p.backend.CreateList(ctx, preset)
		if err != nil || created.ID == "" {
			p.l.Warnf(ctx, "tasklist: unable to create preset %q: %v", preset, err)
			continue
		}
		p.registry.Put(preset, created.ID)
		p.remoteCount++
		p.l.Infof(ctx, "tasklist: created preset list %q", preset)
	}
	return nil
}

func (p *Provisioner) createLocked(ctx context.Context, n string) string {
	created, err := p.backend.CreateList(ctx, n)
	if err != nil || created.ID == "" {
		p.l.Warnf(ctx, "tasklist: failed to create list %q, using fallback: %v", n, err)
		return p.fallbackLocked(ctx)
	}
	p.registry.Put(n, created.ID)
	p.remoteCount++
	p.l.Infof(ctx, "tasklist: created list %q", n)
	return created.ID
}

// refresh reloads the cache and the remote count. Caller holds mu.
func (p *Provisioner) refresh(ctx context.Context) (map[string]string, error) {
	lists, err := p.backend.ListLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	p.remoteCount = len(lists)
	return p.registry.Replace(lists), nil
}

// Fallback returns the list used when nothing better can be resolved.
func (p *Provisioner) Fallback(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fallbackLocked(ctx)
}

func (p *Provisioner) fallbackLocked(ctx context.Context) string {
	if p.fallbackID != "" && p.fallbackID != DefaultListID {
		return p.fallbackID
	}
	if !p.defaultDiscovered {
		p.defaultDiscovered = true
		p.defaultID = DefaultListID
		lists, err := p.backend.ListLists(ctx)
		if err != nil {
			p.l.Warnf(ctx, "tasklist: default list discovery failed: %v", err)
		} else if len(lists) > 0 && lists[0].ID != "" {
			p.defaultID = lists[0].ID
		}
	}
	return p.defaultID
}

// containmentMatch finds an existing list whose name contains n or is contained in it.
func containmentMatch(n string, mapping map[string]string) string {
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.Contains(name, n) || strings.Contains(n, name) {
			return mapping[name]
		}
	}
	return ""
}
