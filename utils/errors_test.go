package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsAppError(t *testing.T) {
	if AsAppError(nil) != nil {
		t.Fatalf("nil stays nil")
	}

	wrapped := fmt.Errorf("load: %w", NotFound("Service not found"))
	if got := AsAppError(wrapped); got.Kind != KindNotFound || got.Message != "Service not found" {
		t.Fatalf("wrapped app error must be unwrapped, got %+v", got)
	}

	if got := AsAppError(fmt.Errorf("query: %w", context.DeadlineExceeded)); got.Kind != KindTimeout {
		t.Fatalf("deadline must map to timeout, got %s", got.Kind)
	}

	if got := AsAppError(Internal(context.DeadlineExceeded)); got.Kind != KindTimeout {
		t.Fatalf("deadline under an internal error must map to timeout, got %s", got.Kind)
	}

	if got := AsAppError(errors.New("boom")); got.Kind != KindInternal || got.Message != "Internal server error" {
		t.Fatalf("unknown errors are internal, got %+v", got)
	}
}

func TestStatusForKind(t *testing.T) {
	cases := map[ErrorKind]int{
		KindUnauthorized:  http.StatusUnauthorized,
		KindValidation:    http.StatusBadRequest,
		KindNotFound:      http.StatusNotFound,
		KindConflict:      http.StatusConflict,
		KindConfiguration: http.StatusUnprocessableEntity,
		KindTimeout:       http.StatusGatewayTimeout,
		KindInternal:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusForKind(kind); got != want {
			t.Errorf("StatusForKind(%s) = %d, want %d", kind, got, want)
		}
	}
}
