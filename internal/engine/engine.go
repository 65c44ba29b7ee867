// Package engine owns the top-level evaluation loop: one Engine is one
// root environment seeded with the primitive library plus the host
// bindings the primitives reach for.
package engine

import (
	"io"
	"os"

	"github.com/amalgam-lang/amalgam/internal/diagnostics"
	"github.com/amalgam-lang/amalgam/internal/evaluator"
	"github.com/amalgam-lang/amalgam/internal/parser"
)

// EngineBinding is the well-known environment name under which the engine
// stores a handle to itself, so that primitives needing host services can
// find it with an unbounded lookup.
const EngineBinding = "~engine~"

// Engine wraps a root environment. Each Engine owns fresh primitive clones,
// so contextual-flag toggling in one Engine never leaks into another.
type Engine struct {
	env *evaluator.Environment
	out io.Writer
}

// New builds an Engine whose primitives print to out. A nil out falls back
// to standard output.
func New(out io.Writer) *Engine {
	if out == nil {
		out = os.Stdout
	}
	env := evaluator.NewEnvironment(evaluator.Builtins(), "global")
	e := &Engine{env: env, out: out}
	env.Set(evaluator.OutBinding, evaluator.NewInternal(out))
	env.Set(EngineBinding, evaluator.NewInternal(e))
	return e
}

// Env exposes the root environment, mainly for tests and the REPL prompt.
func (e *Engine) Env() *evaluator.Environment { return e.env }

// EvalError is a fatal Notification promoted to a Go error, carrying
// everything needed to render a caret-snippet report.
type EvalError struct {
	Notification *evaluator.Notification
	SrcName      string
	Src          string
}

func (e *EvalError) Error() string {
	return diagnostics.Report(e.Notification, e.SrcName, e.Src)
}

// SyntaxError wraps a parser failure the same way, keeping the source
// around for the snippet.
type SyntaxError struct {
	Err     error
	SrcName string
	Src     string
}

func (e *SyntaxError) Error() string {
	return diagnostics.SyntaxError(e.Err, e.SrcName, e.Src)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Eval reduces one already-parsed expression in the root environment. A
// fatal Notification becomes an *EvalError; a non-fatal one that escaped
// every consumer surfaces as its payload.
func (e *Engine) Eval(node evaluator.Amalgam, srcName, src string) (evaluator.Amalgam, error) {
	result := node.Evaluate(e.env)
	if n, ok := result.(*evaluator.Notification); ok {
		if n.Fatal {
			return nil, &EvalError{Notification: n, SrcName: srcName, Src: src}
		}
		return n.Payload, nil
	}
	return result, nil
}

// ParseAndRun parses src (several top-level forms are sequenced as one do
// block) and evaluates the result. srcName labels diagnostics: a file path,
// "repl", "expr".
func (e *Engine) ParseAndRun(src, srcName string) (evaluator.Amalgam, error) {
	node, err := parser.Parse(src)
	if err != nil {
		return nil, &SyntaxError{Err: err, SrcName: srcName, Src: src}
	}
	return e.Eval(node, srcName, src)
}

// RunFile reads and runs a source file.
func (e *Engine) RunFile(path string) (evaluator.Amalgam, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.ParseAndRun(string(src), path)
}
