package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessageFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "type mismatch carries expected and actual",
			err:  TypeMismatch("integer", "symbolic"),
			want: []string{"TypeMismatchError", "[access]", "expected integer", "got symbolic"},
		},
		{
			name: "out of bounds names index and length",
			err:  OutOfBounds(3, 3),
			want: []string{"IndexOutOfRangeError", "index 3", "length 3"},
		},
		{
			name: "eval failure keeps kernel text verbatim",
			err:  EvalFailed("Ungültiges Argument", nil),
			want: []string{"EvaluationError", "Ungültiges Argument"},
		},
		{
			name: "cause is appended",
			err:  ParseFailed("bad token", fmt.Errorf("unexpected ')'")),
			want: []string{"ParseError", "bad token", "caused by: unexpected ')'"},
		},
		{
			name: "invalid handle",
			err:  InvalidHandle(0x2a),
			want: []string{"InvalidHandleError", "0x2a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.err.Error()
			for _, frag := range tc.want {
				if !strings.Contains(msg, frag) {
					t.Errorf("message %q missing %q", msg, frag)
				}
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindParse, "ParseError"},
		{KindEvaluation, "EvaluationError"},
		{KindTypeMismatch, "TypeMismatchError"},
		{KindOutOfRange, "IndexOutOfRangeError"},
		{KindUnavailable, "LibraryUnavailableError"},
		{Kind("mystery"), "mystery"},
	}
	for _, tc := range tests {
		e := &Error{Kind: tc.kind}
		if got := e.Category(); got != tc.want {
			t.Errorf("Category(%s) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := TypeMismatch("vector", "integer")
	if !stderrors.Is(err, ErrTypeMismatch) {
		t.Error("expected Is to match ErrTypeMismatch")
	}
	if stderrors.Is(err, ErrOutOfRange) {
		t.Error("Is should not match a different kind")
	}
}

func TestIsRespectsPhaseWhenSet(t *testing.T) {
	err := Wrap(PhaseDispatch, KindNotFound, nil, "no such function")
	if !stderrors.Is(err, &Error{Phase: PhaseDispatch, Kind: KindNotFound}) {
		t.Error("expected phase+kind match")
	}
	if stderrors.Is(err, &Error{Phase: PhaseEval, Kind: KindNotFound}) {
		t.Error("mismatched phase should not match")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root")
	err := EvalFailed("outer", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap chain to reach cause")
	}
}
