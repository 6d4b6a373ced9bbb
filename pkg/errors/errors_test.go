package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"no cause", New(ErrCodeInvalidConfig, "wratios has %d entries, want %d", 3, 4), "INVALID_CONFIG: wratios has 3 entries, want 4"},
		{"with cause", Wrap(ErrCodeDegenerate, errors.New("singular basis"), "simplex failed"), "NUMERICAL_DEGENERACY: simplex failed: singular basis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("singular basis")
	err := Wrap(ErrCodeDegenerate, cause, "simplex failed")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if New(ErrCodeInternal, "x").Cause != nil {
		t.Error("New() should leave Cause nil")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidConfig, "x"), ErrCodeInvalidConfig, true},
		{"other code", New(ErrCodeInvalidConfig, "x"), ErrCodeInfeasible, false},
		{"outermost code wins", Wrap(ErrCodeInfeasible, New(ErrCodeDegenerate, "inner"), "outer"), ErrCodeInfeasible, true},
		{"behind fmt wrapping", fmt.Errorf("examples/a.toml: %w", New(ErrCodeInvalidFormat, "x")), ErrCodeInvalidFormat, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidConfig, false},
		{"nil", nil, ErrCodeInvalidConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeRecoverable(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidConfig, false},
		{ErrCodeInvalidFormat, false},
		{ErrCodeInfeasible, true},
		{ErrCodeSolverUnavailable, true},
		{ErrCodeDegenerate, true},
		{ErrCodeInternal, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.code.Recoverable(); got != tt.want {
			t.Errorf("%q.Recoverable() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeSolverUnavailable, "test"), ErrCodeSolverUnavailable},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidConfig, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSolverFailureClassification(t *testing.T) {
	tests := []struct {
		err         error
		config      bool
		infeasible  bool
		unavailable bool
		degenerate  bool
		solver      bool
	}{
		{New(ErrCodeInvalidConfig, "x"), true, false, false, false, false},
		{New(ErrCodeInfeasible, "x"), false, true, false, false, true},
		{New(ErrCodeSolverUnavailable, "x"), false, false, true, false, true},
		{New(ErrCodeDegenerate, "x"), false, false, false, true, true},
		{errors.New("plain"), false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(GetCode(tt.err)), func(t *testing.T) {
			if got := IsConfiguration(tt.err); got != tt.config {
				t.Errorf("IsConfiguration() = %v, want %v", got, tt.config)
			}
			if got := IsInfeasible(tt.err); got != tt.infeasible {
				t.Errorf("IsInfeasible() = %v, want %v", got, tt.infeasible)
			}
			if got := IsUnavailable(tt.err); got != tt.unavailable {
				t.Errorf("IsUnavailable() = %v, want %v", got, tt.unavailable)
			}
			if got := IsDegenerate(tt.err); got != tt.degenerate {
				t.Errorf("IsDegenerate() = %v, want %v", got, tt.degenerate)
			}
			if got := IsSolverFailure(tt.err); got != tt.solver {
				t.Errorf("IsSolverFailure() = %v, want %v", got, tt.solver)
			}
		})
	}
}
