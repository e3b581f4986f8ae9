// Package console renders watcher events and snapshots to a terminal or as
// JSON lines.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
	"go.trai.ch/pollwatch/internal/ui/output"
	"go.trai.ch/pollwatch/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

type styles struct {
	change   lipgloss.Style
	created  lipgloss.Style
	deleted  lipgloss.Style
	modified lipgloss.Style
	err      lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		change:   r.NewStyle().Foreground(style.Iris).Bold(true),
		created:  r.NewStyle().Foreground(style.Green),
		deleted:  r.NewStyle().Foreground(style.Red),
		modified: r.NewStyle().Foreground(style.Yellow),
		err:      r.NewStyle().Foreground(style.Red).Bold(true),
		dim:      r.NewStyle().Foreground(style.Slate),
	}
}

// Renderer writes one line per path, or one JSON object per event in JSON mode.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	json   bool
	styles styles
}

// New creates a Renderer writing to w.
func New(w io.Writer) *Renderer {
	r := &Renderer{}
	r.SetOutput(w)
	return r
}

// SetOutput redirects output and re-detects the color profile.
func (r *Renderer) SetOutput(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(output.ColorProfile())
	r.w = w
	r.styles = newStyles(lr)
}

// SetJSON switches between text and JSON lines.
func (r *Renderer) SetJSON(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.json = enabled
}

type eventRecord struct {
	Kind  string   `json:"kind"`
	Paths []string `json:"paths,omitempty"`
	Error string   `json:"error,omitempty"`
}

// changeRecord always carries all three keys.
type changeRecord struct {
	Kind string `json:"kind"`
	domain.ChangeSet
}

type notifyRecord struct {
	Op   string `json:"op"`
	Name string `json:"name"`
}

type snapshotRecord struct {
	Root        string   `json:"root"`
	Paths       []string `json:"paths"`
	Count       int      `json:"count"`
	Fingerprint string   `json:"fingerprint"`
}

// Render writes e.
func (r *Renderer) Render(e domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.json {
		return r.encode(record(e))
	}
	return r.write(r.text(e))
}

func record(e domain.Event) any {
	switch ev := e.(type) {
	case domain.ChangeEvent:
		return changeRecord{Kind: ev.Kind().String(), ChangeSet: ev.Change}
	case domain.PathsEvent:
		return eventRecord{Kind: ev.Kind().String(), Paths: ev.Paths}
	case domain.ErrorEvent:
		return eventRecord{Kind: ev.Kind().String(), Error: errorText(ev.Err)}
	default:
		return eventRecord{Kind: e.Kind().String()}
	}
}

func (r *Renderer) text(e domain.Event) string {
	var b strings.Builder

	switch ev := e.(type) {
	case domain.ChangeEvent:
		fmt.Fprintf(&b, "%s %s\n",
			r.styles.change.Render(ev.Kind().String()),
			r.styles.dim.Render(fmt.Sprintf("created=%d deleted=%d modified=%d",
				len(ev.Change.Created), len(ev.Change.Deleted), len(ev.Change.Modified))),
		)
	case domain.PathsEvent:
		glyph, st := r.pathStyle(ev.EventKind)
		for _, p := range ev.Paths {
			fmt.Fprintf(&b, "%s %s\n", st.Render(glyph), p)
		}
	case domain.ErrorEvent:
		fmt.Fprintf(&b, "%s %s\n", r.styles.err.Render(style.Cross), errorText(ev.Err))
	}

	return b.String()
}

func (r *Renderer) pathStyle(kind domain.EventKind) (string, lipgloss.Style) {
	switch kind {
	case domain.EventCreated:
		return style.Plus, r.styles.created
	case domain.EventDeleted:
		return style.Minus, r.styles.deleted
	default:
		return style.Tilde, r.styles.modified
	}
}

// RenderNotify writes an fsnotify event as "OP name".
func (r *Renderer) RenderNotify(e fsnotify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.json {
		return r.encode(notifyRecord{Op: e.Op.String(), Name: e.Name})
	}

	st := r.styles.modified
	switch {
	case e.Has(fsnotify.Create):
		st = r.styles.created
	case e.Has(fsnotify.Remove):
		st = r.styles.deleted
	}
	return r.write(fmt.Sprintf("%s %s\n", st.Render(e.Op.String()), e.Name))
}

// errorText keeps one failure on one line.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}

// RenderSnapshot writes every path of a single enumeration followed by a
// summary line.
func (r *Renderer) RenderSnapshot(root string, paths domain.PathSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := paths.Sorted()
	fingerprint := fmt.Sprintf("%016x", paths.Fingerprint())

	if r.json {
		return r.encode(snapshotRecord{
			Root:        root,
			Paths:       sorted,
			Count:       len(sorted),
			Fingerprint: fingerprint,
		})
	}

	var b strings.Builder
	for _, p := range sorted {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s\n", r.styles.dim.Render(
		fmt.Sprintf("%d paths in %s, fingerprint %s", len(sorted), root, fingerprint),
	))
	return r.write(b.String())
}

func (r *Renderer) encode(v any) error {
	if err := json.NewEncoder(r.w).Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode event")
	}
	return nil
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.w, s); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
