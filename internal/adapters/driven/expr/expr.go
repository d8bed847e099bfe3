// Package expr compiles CEL where expressions into record predicates.
//
// The record is bound to the variable r as a map from field name to value:
//
//	r["No"] > 10 && r["Category"].startsWith("결제")
//
// JSON numbers are exposed as int or double; other values keep their type.
package expr

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/logger"
)

// Ensure Compiler implements the interface.
var _ driven.PredicateCompiler = (*Compiler)(nil)

// RecordVar is the variable a where expression reads the record from.
const RecordVar = "r"

// Compiler compiles where expressions. Compiled programs are cached by
// expression text.
type Compiler struct {
	env *cel.Env

	mu    sync.Mutex
	cache map[string]cel.Program
}

// NewCompiler creates a compiler with the CEL standard library and the
// strings extension.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable(RecordVar, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Compiler{env: env, cache: make(map[string]cel.Program)}, nil
}

// Compile parses and type-checks expr. The expression must yield a bool.
func (c *Compiler) Compile(expr string) (domain.Predicate, error) {
	prg, err := c.program(expr)
	if err != nil {
		return nil, err
	}

	return func(r domain.Record) (bool, error) {
		out, _, err := prg.Eval(map[string]any{RecordVar: activation(r)})
		if err != nil {
			// Missing fields and type mismatches exclude the record.
			logger.Debug("where %q: %v", expr, err)
			return false, nil
		}
		b, ok := out.(types.Bool)
		if !ok {
			return false, fmt.Errorf("%w: %q yields %s, not bool", domain.ErrInvalidExpression, expr, out.Type())
		}
		return bool(b), nil
	}, nil
}

func (c *Compiler) program(expr string) (cel.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prg, ok := c.cache[expr]; ok {
		return prg, nil
	}

	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExpression, issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(types.BoolType) && !t.IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w: %q yields %s, not bool", domain.ErrInvalidExpression, expr, t)
	}

	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExpression, err)
	}
	c.cache[expr] = prg
	return prg, nil
}

// activation converts a record to values CEL can compare.
func activation(r domain.Record) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = celValue(v)
	}
	return out
}

func celValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return int64(t)
	case map[string]any:
		return activation(domain.Record(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = celValue(item)
		}
		return out
	default:
		return v
	}
}
