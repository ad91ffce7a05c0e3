// Package policy gates access to the dashboard and diagnostic routes.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA route-access engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	// The rego entry point still parses modules as v0 unless told otherwise;
	// policies here are written in v1 syntax.
	r := rego.New(
		rego.Query("data.route_access.allow"),
		rego.Module("route_access.rego", policyContent),
		rego.SetRegoVersion(ast.RegoV1),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input describes one request for policy evaluation.
type Input struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	ExposeDebug bool   `json:"expose_debug"`
}

// Allow evaluates the route policy for the given request.
func (e *Engine) Allow(ctx context.Context, input Input) (bool, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default; no result means it failed to bind.
		return false, nil
	}

	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy returned non-boolean decision: %v", results[0].Expressions[0].Value)
	}
	return allowed, nil
}

// DefaultPolicy is the default route-access policy: everything is open except
// the diagnostic surface, which requires the expose_debug flag.
const DefaultPolicy = `
package route_access

default allow := true

allow := false if {
	startswith(input.path, "/debug/")
	not input.expose_debug
}
`
