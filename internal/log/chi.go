package log

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ChiMiddleware installs an http middleware that logs any http request.
// Requests whose path starts with any of the quiet prefixes (probes, scrapes) are logged at debug level.
func ChiMiddleware(ctx context.Context, quiet ...string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return requestLogger(ctx, quiet)(next)
	}
}

func requestLogger(ctx context.Context, quiet []string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			//nolint:contextcheck
			defer func() {
				args := []any{
					"req-id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"uri", r.RequestURI,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"ua", r.Header.Get("User-Agent"),
					"d", time.Since(t1),
				}
				switch {
				case ww.Status() >= http.StatusInternalServerError:
					Warn(ctx, "http req", args...)
				case isQuiet(r.URL.Path, quiet):
					Debug(ctx, "http req", args...)
				default:
					Info(ctx, "http req", args...)
				}
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func isQuiet(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
