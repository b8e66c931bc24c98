// Package policy holds the success predicates that decide when the
// repair loop terminates. Two divergent policies exist: strict never
// trusts a clean first run, lenient trusts any clean exit and treats an
// unchanged AI fix as convergence. Both are selectable via config.
package policy

import "fmt"

// Policy decides whether a sandbox run terminates the repair loop.
type Policy interface {
	Name() string

	// Success reports whether the run at iteration i (1-indexed, of
	// maxRetries) with the given exit code is a terminal success.
	Success(exitCode, iteration, maxRetries int) bool

	// ConvergeOnEcho reports whether an AI fix identical to the current
	// source counts as success rather than another attempt.
	ConvergeOnEcho() bool
}

// Strict requires a clean exit on a re-run. The first clean run is not
// trusted: the user's complaint may be a latent logic error the exit
// code cannot reveal.
type Strict struct{}

func (Strict) Name() string { return "strict" }

func (Strict) Success(exitCode, iteration, maxRetries int) bool {
	return exitCode == 0 && iteration > 1
}

func (Strict) ConvergeOnEcho() bool { return false }

// Lenient trusts any clean exit and treats no-progress as convergence.
type Lenient struct{}

func (Lenient) Name() string { return "lenient" }

func (Lenient) Success(exitCode, iteration, maxRetries int) bool {
	return exitCode == 0
}

func (Lenient) ConvergeOnEcho() bool { return true }

// FromName returns the policy for a config name. An empty name selects
// strict, the historical default of the CLI front end.
func FromName(name string) (Policy, error) {
	switch name {
	case "", "strict":
		return Strict{}, nil
	case "lenient":
		return Lenient{}, nil
	default:
		return nil, fmt.Errorf("policy: unknown policy %q", name)
	}
}
