package providers

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Post is a single blog post as reported by a post source.
type Post struct {
	Title string
	Date  time.Time
	Href  string // path relative to the site root, e.g. "/blog/hello-world"

	// Description is optional; an empty string means the post has none.
	Description string

	Slug   string
	Source string // file the post was read from
	Draft  bool
}

// HasDescription reports whether the post carries a description.
func (p Post) HasDescription() bool {
	return p.Description != ""
}

// PostProvider enumerates the posts found in a directory.
// Implementations must return posts newest first.
type PostProvider interface {
	FetchPosts(dir string) ([]Post, error)
}

// ProviderError wraps a failure reported by a post source.
type ProviderError struct {
	Provider string
	Dir      string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed reading %s: %v", e.Provider, e.Dir, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderFactory creates a new instance of a provider.
type ProviderFactory func(config any) (PostProvider, error)

// ProviderInfo contains metadata about a provider.
type ProviderInfo struct {
	Name        string
	Description string
	Version     string
	Factory     ProviderFactory
}

// ProviderRegistry manages registered post sources.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]*ProviderInfo
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]*ProviderInfo),
	}
}

// Register adds a provider to the registry.
func (r *ProviderRegistry) Register(name string, info *ProviderInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s is already registered", name)
	}

	r.providers[name] = info
	return nil
}

// Get retrieves a provider by name.
func (r *ProviderRegistry) Get(name string) (*ProviderInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", name)
	}

	return info, nil
}

// List returns all registered provider names in sorted order.
func (r *ProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// CreateProvider creates a new instance of the specified provider.
func (r *ProviderRegistry) CreateProvider(name string, config any) (PostProvider, error) {
	info, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	return info.Factory(config)
}

// FetchPosts creates the named provider and reads dir with it.
// Any failure is returned as a *ProviderError.
func (r *ProviderRegistry) FetchPosts(name string, config any, dir string) ([]Post, error) {
	provider, err := r.CreateProvider(name, config)
	if err != nil {
		return nil, &ProviderError{Provider: name, Dir: dir, Err: err}
	}

	posts, err := provider.FetchPosts(dir)
	if err != nil {
		return nil, &ProviderError{Provider: name, Dir: dir, Err: err}
	}

	return posts, nil
}

// Global registry instance
var DefaultRegistry = NewProviderRegistry()
