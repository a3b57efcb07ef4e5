// Package script provides the Lisp scripting layer for Neusis.
// It wraps zygomys in a sandboxed environment and replays construction
// source against a fresh engine, so a script alone determines the
// resulting sketch.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/neusis/pkg/engine"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Runner evaluates construction scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment and a fresh engine for determinism.
//
// SnapRadius, when positive, replaces the engine's default snap radius
// for (snap ...) calls that do not pass :radius. Set it before the
// first Evaluate.
type Runner struct {
	mu         sync.Mutex
	generation uint64

	SnapRadius float64
}

// NewRunner creates a new Runner instance.
func NewRunner() *Runner {
	return &Runner{}
}

// Evaluate takes Lisp source code and produces a new engine holding the
// constructed sketch. Each call creates a fresh zygomys sandbox for
// deterministic evaluation.
//
// Return semantics:
//   - On success: returns engine + nil errors + nil error
//   - On parse/eval failure: returns nil engine + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (r *Runner) Evaluate(source string) (*engine.Engine, []EvalError, error) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", rec)}
			}
		}()

		eng, evalErrs, err := r.evaluate(source)
		ch <- evalResult{eng: eng, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &r.mu, &r.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (r *Runner) evaluate(source string) (*engine.Engine, []EvalError, error) {
	// Empty source is a valid program that produces an empty sketch.
	if strings.TrimSpace(source) == "" {
		return engine.New(), nil, nil
	}

	// Create a fresh sandboxed zygomys environment.
	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	eng := engine.New()
	registerBuiltins(env, eng, r.SnapRadius)

	// Preprocessing keeps line counts intact, so error locations reported
	// by zygomys still refer to the user's source.
	processed := preprocessSource(source)

	// Load and compile the source string into bytecode.
	err := env.LoadString(processed)
	if err != nil {
		evalErrs := parseZygomysError(err)
		return nil, evalErrs, nil
	}

	// Execute the compiled bytecode. Builtins populate eng as they run.
	_, err = env.Run()
	if err != nil {
		evalErrs := parseZygomysError(err)
		return nil, evalErrs, nil
	}

	return eng, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// Try to extract line numbers from the error message.
	// zygomys formats parse errors as "Error on line N: <details>\n"
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		detail := strings.TrimSpace(m[2])
		return []EvalError{{
			Line:    line,
			Col:     0,
			Message: detail,
		}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		detail := strings.TrimSpace(m[2])
		return []EvalError{{
			Line:    line,
			Col:     0,
			Message: detail,
		}}
	}

	// Fallback: no line info available.
	return []EvalError{{
		Line:    0,
		Col:     0,
		Message: strings.TrimSpace(msg),
	}}
}
