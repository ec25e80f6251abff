package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("Movie"), http.StatusNotFound},
		{NotFoundWithID("Movie", "movie-1"), http.StatusNotFound},
		{Validation("bad input", nil), http.StatusBadRequest},
		{InvalidInput("bad input"), http.StatusBadRequest},
		{Forbidden("admins only"), http.StatusForbidden},
		{Conflict("already there"), http.StatusConflict},
		{Internal("broke", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if tc.err.StatusCode() != tc.want {
			t.Errorf("%s: expected status %d, got %d", tc.err.Code, tc.want, tc.err.StatusCode())
		}
	}
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("Failed to create booking", cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to be unwrappable")
	}
	if got := err.Error(); got != "INTERNAL_ERROR: Failed to create booking (caused by: disk full)" {
		t.Errorf("unexpected error string: %s", got)
	}
}

func TestNotFoundWithIDCarriesDetails(t *testing.T) {
	err := NotFoundWithID("Movie", "movie-1")

	if err.Details["id"] != "movie-1" || err.Details["resource"] != "Movie" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestAsAppErrorWrapsUnknownErrors(t *testing.T) {
	plain := errors.New("something odd")

	appErr := AsAppError(plain)
	if appErr.Code != CodeInternal {
		t.Errorf("expected an internal wrapper, got %s", appErr.Code)
	}
	if !IsAppError(appErr) {
		t.Error("expected the wrapper to be an AppError")
	}
	if IsAppError(plain) {
		t.Error("a plain error must not be an AppError")
	}
}
