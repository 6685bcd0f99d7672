package bildinfo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"k8s.io/klog/v2"
)

// TagWriter is the external persistence boundary for tag mutations. Both
// operations accept multiple paths because the store can batch, but the
// panel always targets exactly one.
type TagWriter interface {
	AddTag(ctx context.Context, paths []string, tag string) error
	RemoveTag(ctx context.Context, paths []string, tag string) error
}

// ErrMutationPending is returned when a tag mutation arrives while a prior
// one on the same panel is still awaiting its result. Overlapping edits are
// rejected rather than dispatched twice.
var ErrMutationPending = errors.New("tag mutation already in flight")

// Panel owns the editable state for the currently selected image and
// coordinates tag mutations against the store. Derived views never diverge
// from the raw tag list: local state changes only by feeding a confirmed
// new raw list back through DeriveTags.
type Panel struct {
	cfg    *Config
	writer TagWriter

	// Hooks for the enclosing application. All optional.
	OnRate          func(rating int, paths []string)
	OnSetColorLabel func(color string, paths []string)
	OnTagsChanged   func(paths []string, tags []TagItem)
	OnError         func(err error)

	mu       sync.Mutex
	img      *Image
	view     TagView
	input    string
	pending  bool
	expanded map[string]bool
}

// NewPanel creates a panel bound to a tag store.
func NewPanel(cfg *Config, w TagWriter) *Panel {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Panel{
		cfg:      cfg,
		writer:   w,
		view:     TagView{Tags: []TagItem{}},
		expanded: map[string]bool{},
	}
}

// SetSelection replaces the raw image record and re-derives the tag view.
// Passing nil clears the panel. The input buffer does not survive a
// selection change.
func (p *Panel) SetSelection(img *Image) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.img = img
	p.input = ""
	if img == nil {
		p.view = TagView{Tags: []TagItem{}}
		return
	}
	p.view = DeriveTags(img.Tags)
}

// View returns a copy of the current derived tag state.
func (p *Panel) View() TagView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return TagView{
		ColorLabel: p.view.ColorLabel,
		Tags:       append([]TagItem{}, p.view.Tags...),
	}
}

// Pending reports whether a mutation is awaiting its result.
func (p *Panel) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// SetInput stores the transient tag input buffer.
func (p *Panel) SetInput(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = s
}

// Input returns the transient tag input buffer.
func (p *Panel) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// ToggleSection flips a section's expanded state.
func (p *Panel) ToggleSection(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expanded[name] = !p.expanded[name]
}

// SectionExpanded reports a section's expanded state.
func (p *Panel) SectionExpanded(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded[name]
}

// AddTag normalizes raw input and dispatches an add for the selected image.
// Empty or already-present input is a silent no-op: no command, no error.
// The local list and raw tags change only after the store confirms the
// write; a failure leaves them untouched.
func (p *Panel) AddTag(ctx context.Context, raw string) error {
	p.mu.Lock()
	img := p.img
	if img == nil {
		p.mu.Unlock()
		return nil
	}
	name := normalizeTag(raw)
	if name == "" || hasTag(p.view.Tags, name) {
		p.mu.Unlock()
		klog.V(1).Infof("ignoring add of %q: empty or duplicate", raw)
		return nil
	}
	if p.pending {
		p.mu.Unlock()
		return ErrMutationPending
	}
	p.pending = true
	p.mu.Unlock()

	err := p.writer.AddTag(ctx, []string{img.Path}, userPrefix+name)
	if err != nil {
		p.finish()
		p.report(fmt.Errorf("add tag %q to %s: %w", name, img.Path, err))
		return err
	}

	p.applyConfirmed(img.Path, name, func(raw []string) []string {
		return append(append([]string{}, raw...), userPrefix+name)
	})
	return nil
}

// AddInput routes the transient input buffer through AddTag.
func (p *Panel) AddInput(ctx context.Context) error {
	return p.AddTag(ctx, p.Input())
}

// QuickAdd adds the i'th configured quick-add shortcut.
func (p *Panel) QuickAdd(ctx context.Context, i int) error {
	if i < 0 || i >= len(p.cfg.QuickTags) {
		return nil
	}
	return p.AddTag(ctx, p.cfg.QuickTags[i])
}

// RemoveTag reconstructs the persisted form of one display tag and
// dispatches a removal. The local view drops the entry only once the store
// confirms.
func (p *Panel) RemoveTag(ctx context.Context, item TagItem) error {
	p.mu.Lock()
	img := p.img
	if img == nil {
		p.mu.Unlock()
		return nil
	}
	if p.pending {
		p.mu.Unlock()
		return ErrMutationPending
	}
	p.pending = true
	p.mu.Unlock()

	persisted := rawTag(item)
	err := p.writer.RemoveTag(ctx, []string{img.Path}, persisted)
	if err != nil {
		p.finish()
		p.report(fmt.Errorf("remove tag %q from %s: %w", item.Name, img.Path, err))
		return err
	}

	p.applyConfirmed(img.Path, item.Name, func(raw []string) []string {
		out := []string{}
		removed := false
		for _, t := range raw {
			if !removed && t == persisted {
				removed = true
				continue
			}
			out = append(out, t)
		}
		return out
	})
	return nil
}

// Rate forwards a rating to the enclosing application. Values outside
// [0,5] are silently ignored. The rating itself is externally owned.
func (p *Panel) Rate(n int) {
	if n < 0 || n > 5 {
		klog.V(1).Infof("ignoring out-of-range rating %d", n)
		return
	}
	p.mu.Lock()
	img := p.img
	cb := p.OnRate
	p.mu.Unlock()
	if img == nil || cb == nil {
		return
	}
	cb(n, []string{img.Path})
}

// SetColorLabel forwards a color label change to the enclosing application.
// An empty color clears the label. The local view follows once the caller
// feeds back an updated raw tag list.
func (p *Panel) SetColorLabel(color string) {
	p.mu.Lock()
	img := p.img
	cb := p.OnSetColorLabel
	p.mu.Unlock()
	if img == nil || cb == nil {
		return
	}
	cb(color, []string{img.Path})
}

// applyConfirmed feeds a confirmed raw-list edit back through DeriveTags.
// If the selection moved on while the command was in flight, the result is
// dropped: it belongs to an image no longer shown.
func (p *Panel) applyConfirmed(path, name string, edit func([]string) []string) {
	p.mu.Lock()
	p.pending = false
	if p.img == nil || p.img.Path != path {
		p.mu.Unlock()
		klog.V(1).Infof("selection moved on from %s, dropping confirmed edit of %q", path, name)
		return
	}
	p.img.Tags = edit(p.img.Tags)
	p.view = DeriveTags(p.img.Tags)
	p.input = ""
	tags := append([]TagItem{}, p.view.Tags...)
	cb := p.OnTagsChanged
	p.mu.Unlock()

	if cb != nil {
		cb([]string{path}, tags)
	}
}

func (p *Panel) finish() {
	p.mu.Lock()
	p.pending = false
	p.mu.Unlock()
}

// report sends a persistence failure to the diagnostics log and the
// OnError hook. State stays at its last confirmed-good value; there is no
// automatic retry.
func (p *Panel) report(err error) {
	klog.Errorf("%v", err)
	p.mu.Lock()
	cb := p.OnError
	p.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

func hasTag(ts []TagItem, name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}
