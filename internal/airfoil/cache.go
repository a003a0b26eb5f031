package airfoil

import (
	"path/filepath"
	"sync"
)

// Resolver resolves an airfoil spec (NACA 4-digit code or data file name) to
// a normalized Profile.
type Resolver interface {
	Resolve(spec string) (Profile, error)
}

// Cache is a concurrency-safe airfoil resolver. NACA codes are generated
// analytically; anything else is loaded as a data file relative to Dir.
// Profiles are immutable after resolution and shared by reference.
type Cache struct {
	mu    sync.RWMutex
	items map[string]Profile

	// Dir is the directory data-file references are resolved against
	// (normally the AVL file's directory).
	Dir string
	// Points is the per-side station count for generated profiles.
	Points int
}

// NewCache creates a resolver rooted at dir with the given NACA sampling
// density (0 means DefaultPoints).
func NewCache(dir string, points int) *Cache {
	if points < 2 {
		points = DefaultPoints
	}
	return &Cache{
		items:  make(map[string]Profile),
		Dir:    dir,
		Points: points,
	}
}

// Resolve returns the profile for spec, generating or loading it on first
// use. Returns *UnknownAirfoilError when the spec is neither a NACA 4-digit
// code nor a readable data file.
func (c *Cache) Resolve(spec string) (Profile, error) {
	c.mu.RLock()
	if p, ok := c.items[spec]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	p, err := c.resolve(spec)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.items[spec]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.items[spec] = p
	c.mu.Unlock()

	return p, nil
}

func (c *Cache) resolve(spec string) (Profile, error) {
	if NACA4Code(spec) != "" {
		return Generate(spec, c.Points)
	}
	path := spec
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	p, err := Load(path)
	if err != nil {
		// Report the spec as written, not the joined path.
		return nil, &UnknownAirfoilError{Name: spec}
	}
	return p, nil
}
