package evaluator

import "fmt"

// Environment is one frame of the nested lexical scope chain. Frames are
// shared, not owned: a closure keeps its captured frame alive past the
// return of the call that created it, and mutations through one holder are
// visible to every other holder of the same frame.
//
// Lookups honor a transient searchDepth horizon: 0 means the immediate
// frame only, k > 0 adds k ancestors, negative means unbounded to the
// root. The field is single-writer and non-reentrant; concurrent
// evaluators must use independent chains.
type Environment struct {
	bindings    map[string]Amalgam
	parent      *Environment
	level       int
	searchDepth int
	name        string
}

// NewEnvironment builds a root environment (level 0, no parent).
func NewEnvironment(bindings map[string]Amalgam, name string) *Environment {
	if bindings == nil {
		bindings = map[string]Amalgam{}
	}
	if name == "" {
		name = "unknown"
	}
	return &Environment{bindings: bindings, name: name}
}

func (e *Environment) Name() string { return e.name }
func (e *Environment) Level() int { return e.level }
func (e *Environment) Parent() *Environment { return e.parent }

// Push creates a child frame holding bindings, with the receiver as its
// parent. An empty name derives one from the parent's.
func (e *Environment) Push(bindings map[string]Amalgam, name string) *Environment {
	if bindings == nil {
		bindings = map[string]Amalgam{}
	}
	if name == "" {
		name = e.name + "-child"
	}
	return &Environment{
		bindings: bindings,
		parent:   e,
		level:    e.level + 1,
		name:     name,
	}
}

// Pop discards the current frame and returns its parent. Popping the root
// is a logic error that well-formed evaluation never reaches.
func (e *Environment) Pop() *Environment {
	if e.parent == nil {
		panic("evaluator: cannot discard the top-level Environment")
	}
	return e.parent
}

// searchChain yields the frames visible under the current horizon: the
// receiver itself, then searchDepth ancestors (all of them when negative).
func (e *Environment) searchChain() []*Environment {
	chain := []*Environment{e}
	if e.parent == nil {
		return chain
	}
	depth := e.searchDepth
	if depth < 0 {
		depth = e.level
	}
	next := e.parent
	for i := 0; i < depth && next != nil; i++ {
		chain = append(chain, next)
		next = next.parent
	}
	return chain
}

// Get returns the binding for name within the current horizon.
func (e *Environment) Get(name string) (Amalgam, bool) {
	for _, env := range e.searchChain() {
		if value, ok := env.bindings[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Set overwrites the nearest existing binding within the horizon. When no
// frame in the horizon holds the name, the write lands on the last frame
// searched: the immediate frame at depth 0, the root at unbounded depth.
func (e *Environment) Set(name string, value Amalgam) {
	chain := e.searchChain()
	for _, env := range chain {
		if _, ok := env.bindings[name]; ok {
			env.bindings[name] = value
			return
		}
	}
	chain[len(chain)-1].bindings[name] = value
}

// Delete removes the nearest binding within the horizon and reports
// whether one was found.
func (e *Environment) Delete(name string) bool {
	for _, env := range e.searchChain() {
		if _, ok := env.bindings[name]; ok {
			delete(env.bindings, name)
			return true
		}
	}
	return false
}

// Contains reports whether name is bound within the horizon.
func (e *Environment) Contains(name string) bool {
	for _, env := range e.searchChain() {
		if _, ok := env.bindings[name]; ok {
			return true
		}
	}
	return false
}

// SearchAt runs fn with the lookup horizon temporarily set to depth and
// restores the previous horizon on every exit path. A depth beyond the
// frame's level is a configuration error, not a language error.
func (e *Environment) SearchAt(depth int, fn func()) error {
	if depth > e.level {
		return fmt.Errorf("search depth %d is greater than maximum level %d", depth, e.level)
	}
	e.searchDepth = depth
	defer func() { e.searchDepth = 0 }()
	fn()
	return nil
}

// mustSearchAt is SearchAt for callers passing a negative depth, which can
// never exceed the level.
func mustSearchAt(e *Environment, depth int, fn func()) {
	if err := e.SearchAt(depth, fn); err != nil {
		panic(err)
	}
}
