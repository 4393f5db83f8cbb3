package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"forbidden", Forbidden("no"), KindForbidden},
		{"not found", NotFound("missing"), KindNotFound},
		{"precondition", PreconditionFailed("wrong state"), KindPreconditionFailed},
		{"insufficient", InsufficientQuantity("short"), KindInsufficientQuantity},
		{"unauthorized", Unauthorized("who"), KindUnauthorized},
		{"plain error defaults to internal", errors.New("db down"), KindInternal},
		{"wrapped keeps kind", fmt.Errorf("saving: %w", NotFound("missing")), KindNotFound},
		{"wrap helper", Wrap(KindInternal, "query failed", errors.New("timeout")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Unauthorized("no token"), 401},
		{Forbidden("wrong role"), 403},
		{NotFound("gone"), 404},
		{PreconditionFailed("bad state"), 400},
		{InsufficientQuantity("short"), 400},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("row not found")
	err := Wrap(KindNotFound, "item lookup", inner)

	if !errors.Is(err, inner) {
		t.Error("wrapped error not reachable via errors.Is")
	}
	if err.Error() != "item lookup" {
		t.Errorf("Error() = %q, want %q", err.Error(), "item lookup")
	}
}
