package model

import (
	"fmt"
	"strings"
	"sync"
)

// FitnessCache maps a Fix's canonical key to its fitness in [0, 1]. It is
// never invalidated within a run and is shared, single-writer, mutable
// state: any future parallelization must serialize writes but may allow
// concurrent reads.
type FitnessCache struct {
	mu     sync.Mutex
	values map[string]float64
}

// NewFitnessCache constructs an empty cache.
func NewFitnessCache() *FitnessCache {
	return &FitnessCache{values: make(map[string]float64)}
}

// Get returns the cached fitness for key, if present.
func (c *FitnessCache) Get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[key]

	return v, ok
}

// Set writes fitness for key, overwriting any prior value.
func (c *FitnessCache) Set(key string, fitness float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = fitness
}

// Len reports how many fixes have a cached fitness.
func (c *FitnessCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.values)
}

// MemoKey identifies a synthesize(...) call for memoization purposes.
type MemoKey struct {
	CompilerConfig string
	Depth          int
	Context        string
	Type           string
	Properties     string
}

// NewMemoKey canonicalizes a synthesize call's inputs into a MemoKey. The
// context bindings and property names are joined in their given (already
// ordered) form, so two calls with the same inputs in the same order
// produce identical keys, per spec's memoization-soundness property.
func NewMemoKey(compilerConfig string, depth int, contextNames, propertyNames []string, typ string) MemoKey {
	return MemoKey{
		CompilerConfig: compilerConfig,
		Depth:          depth,
		Context:        strings.Join(contextNames, ","),
		Type:           typ,
		Properties:     strings.Join(propertyNames, ","),
	}
}

func (k MemoKey) String() string {
	return fmt.Sprintf("%s|%d|%s|%s|%s", k.CompilerConfig, k.Depth, k.Context, k.Type, k.Properties)
}

// MemoCache maps a MemoKey to the canonical candidate texts produced by
// synthesize for that key. Used by the candidate generator to avoid
// re-synthesizing identical subproblems across sibling hole expansions.
type MemoCache struct {
	mu     sync.Mutex
	values map[string][]string
}

// NewMemoCache constructs an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{values: make(map[string][]string)}
}

// Get returns the cached candidate list for key, if present. The returned
// slice is a defensive copy.
func (c *MemoCache) Get(key MemoKey) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[key.String()]
	if !ok {
		return nil, false
	}

	out := make([]string, len(v))
	copy(out, v)

	return out, true
}

// Set writes the candidate list for key.
func (c *MemoCache) Set(key MemoKey, candidates []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := make([]string, len(candidates))
	copy(cp, candidates)
	c.values[key.String()] = cp
}
