package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/nsweeting/authex"
	"github.com/nsweeting/authex/scope"
	"github.com/nsweeting/authex/token"
)

// Config configures the Authenticate middleware.
type Config struct {
	// HeaderName is the header containing the token.
	// Default: "Authorization"
	HeaderName string

	// TokenPrefix is the prefix before the token in the header.
	// Default: "Bearer "
	TokenPrefix string

	// LoadResource additionally runs the configured serializer and
	// stashes the resulting resource in the request context.
	LoadResource bool

	// Logger receives one record per rejected request. Nil discards.
	Logger *slog.Logger

	// Meter and Tracer instrument the verify path. Nil disables.
	Meter  metric.Meter
	Tracer trace.Tracer

	// Unauthorized writes the rejection response. The default sends 401
	// with a WWW-Authenticate challenge and no failure detail in the body.
	Unauthorized func(w http.ResponseWriter, r *http.Request, err error)
}

func (c *Config) applyDefaults() {
	if c.HeaderName == "" {
		c.HeaderName = "Authorization"
	}
	if c.TokenPrefix == "" {
		c.TokenPrefix = "Bearer "
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Tracer == nil {
		c.Tracer = tracenoop.NewTracerProvider().Tracer("authex")
	}
	if c.Unauthorized == nil {
		c.Unauthorized = func(w http.ResponseWriter, r *http.Request, _ error) {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}
	}
}

// Authenticate returns middleware that verifies the request's bearer token
// with default configuration and stashes the claims in the context.
// Requests without a valid token are rejected with 401.
func Authenticate(auth *authex.Auth) func(http.Handler) http.Handler {
	return AuthenticateWithConfig(auth, Config{})
}

// AuthenticateWithConfig is Authenticate with custom configuration.
func AuthenticateWithConfig(auth *authex.Auth, cfg Config) func(http.Handler) http.Handler {
	cfg.applyDefaults()

	ins := noopInstruments()
	if cfg.Meter != nil {
		if built, err := newInstruments(cfg.Meter); err == nil {
			ins = built
		} else {
			cfg.Logger.Error("authex: instrument registration failed", "error", err)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			compact, ok := extractToken(r, cfg)
			if !ok {
				cfg.Logger.Info("request rejected: no bearer token",
					"path", r.URL.Path)
				cfg.Unauthorized(w, r, token.ErrBadToken)
				return
			}

			ctx, span := cfg.Tracer.Start(r.Context(), "authex.verify")
			start := time.Now()
			claims, err := auth.Verify(ctx, compact)
			ins.record(ctx, time.Since(start), err)
			if err != nil {
				reason := token.Reason(err)
				span.SetAttributes(attribute.String("authex.reason", reason))
				span.SetStatus(codes.Error, reason)
				span.End()
				cfg.Logger.Info("request rejected: verification failed",
					"path", r.URL.Path, "reason", reason)
				cfg.Unauthorized(w, r, err)
				return
			}
			span.End()

			ctx = WithClaims(ctx, claims)
			if cfg.LoadResource {
				resource, err := auth.FromToken(ctx, compact)
				if err != nil {
					cfg.Logger.Info("request rejected: resource load failed",
						"path", r.URL.Path, "error", err)
					cfg.Unauthorized(w, r, err)
					return
				}
				ctx = WithResource(ctx, resource)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the compact token out of the configured header.
func extractToken(r *http.Request, cfg Config) (string, bool) {
	header := r.Header.Get(cfg.HeaderName)
	if header == "" {
		return "", false
	}
	compact := strings.TrimPrefix(header, cfg.TokenPrefix)
	if compact == header {
		return "", false
	}
	compact = strings.TrimSpace(compact)
	return compact, compact != ""
}

// RequirePermits returns middleware that gates a handler on the request
// method and the endpoint's permit list. The verified claims must already
// be in the context (run Authenticate first); requests whose scopes match
// no "<permit>/<action>" candidate are rejected with 403, and unmapped
// methods are always rejected.
func RequirePermits(permits ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			matched, ok := scope.Match(r.Method, permits, claims.Scopes)
			if !ok {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(withMatchedScope(r.Context(), matched)))
		})
	}
}
