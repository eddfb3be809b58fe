// Package store implements the hierarchical path store the back-office runs on.
//
// A tree of nested key/value maps is addressed by slash-delimited paths.
// Reading a path returns either a scalar leaf, a map[string]any subtree or nil
// when nothing lives there. Empty maps are never stored: a subtree whose last
// leaf is removed disappears.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrBadPath = errors.New("invalid path")

// PathStore is the capability the core depends on. There is no transaction
// spanning more than one call.
type PathStore interface {
	Get(ctx context.Context, path string) (any, error)
	Set(ctx context.Context, path string, value any) error
	Update(ctx context.Context, path string, fields map[string]any) error
	Delete(ctx context.Context, path string) error
}

// Creator is implemented by stores that can write a path only when nothing
// exists there yet, as one atomic step.
type Creator interface {
	CreateIfAbsent(ctx context.Context, path string, value any) (bool, error)
}

// Join builds a path from segments, skipping empty ones.
func Join(segs ...string) string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		s = strings.Trim(s, "/")
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// Clean trims surrounding slashes and checks every segment.
func Clean(path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", nil
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if !ValidKey(s) {
			return "", fmt.Errorf("%w: %q", ErrBadPath, path)
		}
	}
	return path, nil
}

// ValidKey reports whether k can be used as a single path segment.
func ValidKey(k string) bool {
	if k == "" || len(k) > 768 {
		return false
	}
	for _, r := range k {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return !strings.ContainsAny(k, ".$#[]/")
}

// Children returns the subtree at path as a map. A missing path or a scalar
// leaf both yield an empty map.
func Children(ctx context.Context, s PathStore, path string) (map[string]any, error) {
	v, err := s.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// SortedKeys returns the keys of m in ascending order, the order the store
// hands children back in.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
