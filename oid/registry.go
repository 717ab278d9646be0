package oid

import (
	"fmt"
	"strings"
	"sync"
)

// Registry is a bidirectional map between canonical numeric OIDs and
// symbolic names. It is safe for concurrent read access once built;
// Register is intended to be called only during setup.
type Registry struct {
	mu     sync.RWMutex
	byOID  map[string]string // canonical numeric -> primary name
	byName map[string]string // normalized name -> canonical numeric
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byOID:  make(map[string]string),
		byName: make(map[string]string),
	}
}

// normalize strips whitespace and '-' and lowercases ASCII, per spec.md §3.
func normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Register associates name with numeric. numeric must already be a
// canonical numeric OID string (see Parse). Registering an additional name
// for an OID that is already known is allowed (it does not overwrite the
// primary name used by ToName); registering a name whose normalised form
// already maps to a different OID is a startup-time error.
func (r *Registry) Register(numeric, name string) error {
	oid, err := Parse(numeric)
	if err != nil {
		return fmt.Errorf("oid: register %q: %w", name, err)
	}
	canonical := oid.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	norm := normalize(name)
	if existing, ok := r.byName[norm]; ok && existing != canonical {
		return fmt.Errorf("oid: name %q already registered for %s", name, existing)
	}
	r.byName[norm] = canonical
	if _, ok := r.byOID[canonical]; !ok {
		r.byOID[canonical] = name
	}

	// id-XX-* short-alias rule (spec.md §6): any registered name
	// beginning with "id-XX-" also gets an alias without that prefix,
	// with disambiguation for id-ad-* and id-kp-*.
	if alias, ok := shortAlias(name); ok {
		aliasNorm := normalize(alias)
		if existing, ok := r.byName[aliasNorm]; !ok || existing == canonical {
			r.byName[aliasNorm] = canonical
		}
	}
	return nil
}

// shortAlias implements the "id-XX-" aliasing rule from spec.md §6.
func shortAlias(name string) (string, bool) {
	const prefix = "id-"
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	rest := name[len(prefix):]
	dash := strings.IndexByte(rest, '-')
	if dash < 0 {
		return "", false
	}
	infix := rest[:dash]
	tail := rest[dash+1:]
	if tail == "" {
		return "", false
	}
	switch infix {
	case "ad":
		return tail + "-IA", true
	case "kp":
		return tail + "-EKU", true
	default:
		return tail, true
	}
}

// ToName returns the registered primary name for numeric, or numeric
// itself if it is not registered.
func (r *Registry) ToName(numeric string) string {
	oid, err := Parse(numeric)
	if err != nil {
		return numeric
	}
	canonical := oid.String()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.byOID[canonical]; ok {
		return name
	}
	return canonical
}

// ToOID resolves input — a canonical or non-canonical numeric OID, or a
// registered name — to its canonical numeric string.
func (r *Registry) ToOID(input string) (string, error) {
	if parsed, err := Parse(input); err == nil {
		return parsed.String(), nil
	}
	r.mu.RLock()
	canonical, ok := r.byName[normalize(input)]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("oid: unknown name %q", input)
	}
	return canonical, nil
}

// Components resolves input the same way ToOID does and returns its arcs.
func (r *Registry) Components(input string) ([]uint64, error) {
	canonical, err := r.ToOID(input)
	if err != nil {
		return nil, err
	}
	parsed, err := Parse(canonical)
	if err != nil {
		return nil, err
	}
	return []uint64(parsed), nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide, read-only-after-init registry seeded
// with the builtin table (builtins.go). It is initialised once on first
// use; registering a conflicting name in that table is a programming error
// and panics, per spec.md §3 ("re-registration of an existing normalised
// name is a startup-time error").
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		for _, e := range builtinTable {
			if err := defaultReg.Register(e.numeric, e.name); err != nil {
				panic(err)
			}
		}
	})
	return defaultReg
}
