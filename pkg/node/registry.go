package node

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// Registry holds categories and node descriptors.
// Extensions build one at startup and hand it to the host.
type Registry struct {
	mu         sync.RWMutex
	categories map[string]Category
	nodes      map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		categories: make(map[string]Category),
		nodes:      make(map[string]*Descriptor),
	}
}

// RegisterCategory adds a category. Its parent path must be "/community/"
// style root or an already registered category.
func (r *Registry) RegisterCategory(c Category) error {
	if c.LevelID == "" {
		return fmt.Errorf("category %q: level ID is required", c.Name)
	}
	if strings.Contains(c.LevelID, "/") {
		return fmt.Errorf("category %q: level ID %q must not contain '/'", c.Name, c.LevelID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	parent := "/" + strings.Trim(c.Path, "/")
	if _, ok := r.categories[parent]; !ok && strings.Count(parent, "/") > 1 {
		return fmt.Errorf("category %q: parent category %q is not registered", c.Name, parent)
	}

	full := c.FullPath()
	if _, exists := r.categories[full]; exists {
		return fmt.Errorf("category %q already registered", full)
	}
	r.categories[full] = c
	return nil
}

// Register adds a node descriptor.
func (r *Registry) Register(d Descriptor) error {
	if d.ID == "" {
		return fmt.Errorf("node %q: ID is required", d.Name)
	}
	if d.Factory == nil {
		return fmt.Errorf("node %q: factory is required", d.ID)
	}

	seen := make(map[string]struct{}, len(d.Parameters))
	for _, p := range d.Parameters {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("node %q: duplicate parameter %q", d.ID, p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Port < 0 || p.Port >= len(d.Inputs) {
			return fmt.Errorf("node %q: parameter %q refers to input port %d, node has %d", d.ID, p.Name, p.Port, len(d.Inputs))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[d.Category]; !ok {
		return fmt.Errorf("node %q: category %q is not registered", d.ID, d.Category)
	}
	if _, exists := r.nodes[d.ID]; exists {
		return fmt.Errorf("node %q already registered", d.ID)
	}
	desc := d
	r.nodes[d.ID] = &desc
	return nil
}

// Get retrieves a descriptor by ID.
func (r *Registry) Get(id string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.nodes[id]
	return d, ok
}

// MustGet is like Get but panics for unknown IDs.
// Use it only with IDs known at compile time.
func (r *Registry) MustGet(id string) *Descriptor {
	d, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup is like Get but returns *UnknownNodeError for unknown IDs.
func (r *Registry) Lookup(id string) (*Descriptor, error) {
	if d, ok := r.Get(id); ok {
		return d, nil
	}
	return nil, &UnknownNodeError{ID: id, Available: r.IDs()}
}

// New creates a fresh node instance for the given ID.
func (r *Registry) New(id string) (*Descriptor, core.Node, error) {
	d, err := r.Lookup(id)
	if err != nil {
		return nil, nil, err
	}
	return d, d.Factory(), nil
}

// IDs returns all registered node IDs (sorted).
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns all descriptors sorted by category path, then name.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, 0, len(r.nodes))
	for _, d := range r.nodes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Categories returns all registered categories sorted by full path.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FullPath() < out[j].FullPath()
	})
	return out
}

// UnknownNodeError is returned when an unknown node ID is requested.
type UnknownNodeError struct {
	ID        string
	Available []string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %q\nAvailable nodes: %v\nHint: Run 'leapnodes list' to see registered nodes", e.ID, e.Available)
}
