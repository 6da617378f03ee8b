package httpapi

import (
	"expvar"
	"log"
	"net/http"
	"time"
)

var (
	requestCount = expvar.NewInt("http_requests_total")
	errorCount   = expvar.NewInt("http_errors_total")
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware emits one key=value line per request and bumps the expvar
// counters exposed on /debug/vars.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		requestCount.Add(1)
		if rec.status >= 500 {
			errorCount.Add(1)
		}
		log.Printf("http method=%s path=%s status=%d duration=%s remote=%s",
			r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), r.RemoteAddr)
	})
}
