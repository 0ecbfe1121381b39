package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id that ties a response to its log line.
const RequestIDHeader = "X-Request-Id"

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (r *statusRecorder) WriteHeader(code int) {
    if r.status == 0 {
        r.status = code
    }
    r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
    if r.status == 0 {
        r.status = http.StatusOK
    }
    return r.ResponseWriter.Write(b)
}

// LogRequests tags each response with a request id and logs one line per request.
func LogRequests(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := uuid.New().String()
        w.Header().Set(RequestIDHeader, id)

        start := time.Now()
        rec := &statusRecorder{ResponseWriter: w}
        next.ServeHTTP(rec, r)
        if rec.status == 0 {
            rec.status = http.StatusOK
        }
        log.Printf("%s %s %s %d %s", id, r.Method, r.RequestURI, rec.status, time.Since(start))
    })
}
