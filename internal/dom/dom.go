// Package dom models the small slice of a document the progress bar touches:
// element styles, attributes, text content, rendered width, and lookup of an
// element by identifier.
package dom

import (
	"regexp"
	"strings"
	"sync"
)

// Style and attribute names used by the progress bar.
const (
	StyleBackgroundImage    = "background-image"
	StyleBackgroundRepeat   = "background-repeat"
	StyleBackgroundPosition = "background-position"
	AttrTitle               = "title"
)

// Element is a visual node whose presentation can be mutated.
type Element interface {
	Style(name string) string
	SetStyle(name, value string)
	Attribute(name string) string
	SetAttribute(name, value string)
	Text() string
	SetText(text string)
	// Width is the rendered width in pixels, 0 when unknown.
	Width() float64
}

// Document resolves elements by identifier.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// Snapshot is a point-in-time copy of a Node.
type Snapshot struct {
	ID         string            `yaml:"id,omitempty"`
	Width      float64           `yaml:"width"`
	Styles     map[string]string `yaml:"styles,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Text       string            `yaml:"text,omitempty"`
}

// Node is an in-memory Element safe for concurrent use.
type Node struct {
	id string

	mu        sync.RWMutex
	width     float64
	styles    map[string]string
	attrs     map[string]string
	text      string
	observers []func(Snapshot)
}

// NewNode creates a Node with the given identifier and width.
func NewNode(id string, width float64) *Node {
	return &Node{
		id:     id,
		width:  width,
		styles: make(map[string]string),
		attrs:  make(map[string]string),
	}
}

// ID returns the node identifier.
func (n *Node) ID() string {
	return n.id
}

// Observe registers fn to be called with a snapshot after every mutation.
// Observers run on the mutating goroutine after the node is unlocked.
func (n *Node) Observe(fn func(Snapshot)) {
	n.mu.Lock()
	n.observers = append(n.observers, fn)
	n.mu.Unlock()
}

// Style returns the inline style value for name, or "".
func (n *Node) Style(name string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.styles[name]
}

// SetStyle sets an inline style and notifies observers.
func (n *Node) SetStyle(name, value string) {
	n.mutate(func() { n.styles[name] = value })
}

// Attribute returns the attribute value for name, or "".
func (n *Node) Attribute(name string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attrs[name]
}

// SetAttribute sets an attribute and notifies observers.
func (n *Node) SetAttribute(name, value string) {
	n.mutate(func() { n.attrs[name] = value })
}

// Text returns the text content.
func (n *Node) Text() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.text
}

// SetText replaces the text content and notifies observers.
func (n *Node) SetText(text string) {
	n.mutate(func() { n.text = text })
}

// Width returns the rendered width in pixels.
func (n *Node) Width() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.width
}

// SetWidth changes the rendered width, as a layout pass would.
func (n *Node) SetWidth(width float64) {
	n.mutate(func() { n.width = width })
}

// Snapshot copies the node state.
func (n *Node) Snapshot() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.snapshotLocked()
}

func (n *Node) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:         n.id,
		Width:      n.width,
		Styles:     make(map[string]string, len(n.styles)),
		Attributes: make(map[string]string, len(n.attrs)),
		Text:       n.text,
	}
	for k, v := range n.styles {
		s.Styles[k] = v
	}
	for k, v := range n.attrs {
		s.Attributes[k] = v
	}
	return s
}

func (n *Node) mutate(fn func()) {
	n.mu.Lock()
	fn()
	observers := n.observers
	var snap Snapshot
	if len(observers) > 0 {
		snap = n.snapshotLocked()
	}
	n.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

// Registry is an in-memory Document.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Element
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Element)}
}

// Add registers el under id, replacing any previous element.
func (r *Registry) Add(id string, el Element) {
	r.mu.Lock()
	r.nodes[id] = el
	r.mu.Unlock()
}

// Remove unregisters id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.nodes, id)
	r.mu.Unlock()
}

// ElementByID looks up id. The empty id never matches.
func (r *Registry) ElementByID(id string) (Element, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	el, ok := r.nodes[id]
	return el, ok
}

var urlWrapper = regexp.MustCompile(`^url\(["']?|["']?\)$`)

// BackgroundImageURL extracts the URL from a background-image value such as
// `url("a.png")`. It returns "" for empty values and "none".
func BackgroundImageURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return ""
	}
	return urlWrapper.ReplaceAllString(value, "")
}

// CSSURL wraps u as a CSS url() value.
func CSSURL(u string) string {
	return "url(" + u + ")"
}
