// Package middleware validates HTTP request bodies against an arrskema
// schema before they reach a handler. Body returns a func(http.Handler)
// http.Handler, so it plugs into gorilla/mux's Router.Use and negroni.Wrap.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	j "github.com/goccy/go-json"

	arrskema "github.com/reoring/arrskema"
)

// ctxKeyValidated is the context key for the normalized body.
type ctxKeyValidated struct{}

// ContextWithValidated attaches the normalized body to ctx.
func ContextWithValidated(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, validated{v})
}

// ValidatedFromContext retrieves the normalized body stored by Body.
func ValidatedFromContext(ctx context.Context) (any, bool) {
	v, ok := ctx.Value(ctxKeyValidated{}).(validated)
	return v.value, ok
}

// validated wraps the body so a nil (JSON null) body is still found.
type validated struct{ value any }

// Config controls Body.
type Config struct {
	Options  arrskema.Options
	MaxBytes int64    // Request bodies above this size are rejected; 0 means DefaultMaxBytes.
	Metrics  *Metrics // Optional.
}

// DefaultMaxBytes bounds request bodies when Config.MaxBytes is unset.
const DefaultMaxBytes = 1 << 20

// DefaultConfig returns a recommended default for HTTP boundaries: every
// issue is collected so clients can fix all of them in one round trip.
func DefaultConfig() Config {
	return Config{Options: arrskema.Options{Convert: true}}
}

// Body decodes the request body with the current literal driver and
// validates it against s. Malformed bodies get 400, invalid ones 422 with
// ErrorPayload; valid bodies are stored in the request context for next.
func Body(s arrskema.Schema, cfg Config) func(http.Handler) http.Handler {
	limit := cfg.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				status := http.StatusBadRequest
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				cfg.Metrics.observe(outcomeMalformed, nil)
				writeJSON(w, status, map[string]any{"error": err.Error()})
				return
			}
			doc, err := arrskema.CurrentLiteralDriver().ParseLiteral(string(raw))
			if err != nil {
				cfg.Metrics.observe(outcomeMalformed, nil)
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			res := s.Validate(r.Context(), doc, arrskema.Root(doc), cfg.Options)
			if res.Errors != nil {
				cfg.Metrics.observe(outcomeInvalid, res.Errors)
				writeJSON(w, http.StatusUnprocessableEntity, ErrorPayload(res.Errors))
				return
			}
			cfg.Metrics.observe(outcomeOK, nil)
			next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), res.Value)))
		})
	}
}

// IssueView is the JSON shape of an Issue in error responses.
type IssueView struct {
	Code    string      `json:"code"`
	Path    string      `json:"path"`
	Message string      `json:"message"`
	Reason  []IssueView `json:"reason,omitempty"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues arrskema.Issues) map[string]any {
	return map[string]any{"issues": views(issues)}
}

func views(issues arrskema.Issues) []IssueView {
	out := make([]IssueView, 0, len(issues))
	for _, it := range issues {
		out = append(out, IssueView{
			Code:    it.Code,
			Path:    it.Path,
			Message: it.Message,
			Reason:  viewsOrNil(it.Reason()),
		})
	}
	return out
}

func viewsOrNil(issues arrskema.Issues) []IssueView {
	if len(issues) == 0 {
		return nil
	}
	return views(issues)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = j.NewEncoder(w).Encode(body)
}
