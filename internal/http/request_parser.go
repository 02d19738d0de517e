// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.

package http

import (
	"net/http"
	"net/url"
	"strings"

	"budget/internal/services"
)

// Form field names used by the transaction form.
const (
	FieldType     = "type"
	FieldAmount   = "amount"
	FieldCategory = "category"
	FieldNote     = "note"
)

// maxFormBytes bounds the body of a form submission.
const maxFormBytes = 16 << 10

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(w http.ResponseWriter, r *http.Request) *HTMXResponseBuilder {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// ParseTransactionInput extracts the four form fields. Values are trimmed;
// interpretation is left to the intake service.
func ParseTransactionInput(form url.Values) services.Input {
	return services.Input{
		Kind:     strings.TrimSpace(form.Get(FieldType)),
		Amount:   strings.TrimSpace(form.Get(FieldAmount)),
		Category: strings.TrimSpace(form.Get(FieldCategory)),
		Note:     form.Get(FieldNote),
	}
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Flash is the one-shot message shown after a plain form redirect.
type Flash string

const (
	FlashNone    Flash = ""
	FlashAdded   Flash = "added"
	FlashIgnored Flash = "ignored"
)

// ParseFlash reads the flash marker from the index query string.
func ParseFlash(query url.Values) Flash {
	switch {
	case query.Get(string(FlashAdded)) == "1":
		return FlashAdded
	case query.Get(string(FlashIgnored)) == "1":
		return FlashIgnored
	default:
		return FlashNone
	}
}

// redirectTarget is where a plain form post lands after the intake.
func redirectTarget(f Flash) string {
	if f == FlashNone {
		return "/"
	}
	return "/?" + string(f) + "=1"
}
