package cloudgrow

import "fmt"

// DomainError reports a physical quantity outside the range a computation
// can accept.
type DomainError struct {
	Quantity string
	Value    float64
	Min, Max float64
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s %g outside valid range [%g, %g]",
		e.Quantity, e.Value, e.Min, e.Max)
}

// ConvergenceError reports an iterative solver that exhausted its maximum
// iterations before reaching the requested tolerance.
type ConvergenceError struct {
	Computation string
	Iterations  int
	Residual    float64
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (residual %g)",
		e.Computation, e.Iterations, e.Residual)
}

// ConfigurationError reports invalid or inconsistent setup data. It is only
// produced before a simulation starts stepping.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// StateError reports an operation invoked from a lifecycle state that does
// not allow it.
type StateError struct {
	Op    string
	State string
}

func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}
