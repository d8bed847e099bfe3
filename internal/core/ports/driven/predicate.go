package driven

import "github.com/custodia-labs/hioder/internal/core/domain"

// PredicateCompiler compiles where expressions into record predicates.
// Compile failures wrap domain.ErrInvalidExpression.
type PredicateCompiler interface {
	Compile(expr string) (domain.Predicate, error)
}
