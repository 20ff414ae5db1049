package llm

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrModelInvocation is the sentinel matched by every ModelInvocationError.
var ErrModelInvocation = errors.New("model invocation failed")

// ModelInvocationError reports a failed call to the model. It aborts the
// orchestration loop and is returned to the caller unchanged.
type ModelInvocationError struct {
	Model     string
	Iteration int
	Err       error
}

// NewModelInvocationError wraps err.
func NewModelInvocationError(model string, iteration int, err error) *ModelInvocationError {
	return &ModelInvocationError{Model: model, Iteration: iteration, Err: err}
}

func (e *ModelInvocationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("model invocation failed on iteration %d: %v", e.Iteration, e.Err)
	}
	return fmt.Sprintf("model %s invocation failed on iteration %d: %v", e.Model, e.Iteration, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrModelInvocation) hold for any ModelInvocationError.
func (e *ModelInvocationError) Is(target error) bool {
	return target == ErrModelInvocation
}
