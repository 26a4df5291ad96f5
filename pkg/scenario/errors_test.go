package scenario

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_Error(t *testing.T) {
	err := NewConfigurationError("group", "name must not be empty")
	assert.Equal(t,
		"configuration error in group: name must not be empty",
		err.Error())

	wrapped := &ConfigurationError{
		Subject: "suite.yaml",
		Reason:  "parse failed",
		Err:     errors.New("bad indent"),
	}
	assert.Contains(t, wrapped.Error(), "bad indent")
	assert.True(t, IsConfiguration(
		fmt.Errorf("load: %w", wrapped)))
}

func TestAssertionError_Error(t *testing.T) {
	err := Failf("equality", "expected %d, got %d", 1, 2)
	assert.Equal(t, "equality: expected 1, got 2", err.Error())
	assert.Equal(t, "bare",
		(&AssertionError{Message: "bare"}).Error())
}

func TestUnexpectedError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &UnexpectedError{Case: "Array #drop", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"Array #drop"`)
	assert.Equal(t, "unexpected error: boom",
		(&UnexpectedError{Err: cause}).Error())
}

func TestPanicError(t *testing.T) {
	cause := errors.New("nil map")
	assert.Equal(t, "panic: nil map",
		(&PanicError{Value: cause}).Error())
	assert.ErrorIs(t, &PanicError{Value: cause}, cause)
	assert.Equal(t, "panic: 42", (&PanicError{Value: 42}).Error())
	assert.Nil(t, (&PanicError{Value: "x"}).Unwrap())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusPassed, Classify(nil))
	assert.Equal(t, StatusFailed,
		Classify(Failf("equality", "nope")))
	assert.Equal(t, StatusFailed, Classify(
		fmt.Errorf("wrapped: %w", Failf("identity", "nope"))))
	assert.Equal(t, StatusErrored, Classify(errors.New("crash")))
	assert.Equal(t, StatusErrored,
		Classify(&PanicError{Value: "x"}))
}

func TestClassify_AssertionInsideUnexpected(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"panicked assertion", &PanicError{Value: Failf("equality", "nope")}},
		{"wrapped panicked assertion", fmt.Errorf(
			"case: %w", &PanicError{Value: Failf("equality", "nope")})},
		{"unexpected assertion", &UnexpectedError{Err: Failf("kind", "nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsAssertion(tt.err))
			assert.Equal(t, StatusErrored, Classify(tt.err))
		})
	}
}
