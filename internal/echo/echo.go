package echo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"testserver/internal/headers"
)

var ErrInvalidUTF8 = errors.New("request body is not valid UTF-8")

// NewRouter returns the handler for the two echo rules. Any path is accepted;
// methods other than GET and POST get 501.
func NewRouter() *mux.Router {
    r := mux.NewRouter().SkipClean(true)
    r.PathPrefix("/").Methods(http.MethodGet).HandlerFunc(HandleGet)
    r.PathPrefix("/").Methods(http.MethodPost).HandlerFunc(HandlePost)
    r.MethodNotAllowedHandler = http.HandlerFunc(HandleUnsupported)
    r.NotFoundHandler = http.HandlerFunc(HandleUnsupported)
    return r
}

// HandleGet writes the greeting followed by the request path.
func HandleGet(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/plain")
    w.WriteHeader(http.StatusOK)
    fmt.Fprintf(w, "%s\n\nRequest path: %s\nMethod: %s", Greeting, requestPath(r), r.Method)
}

// HandlePost echoes the body, headers and content type back as JSON.
func HandlePost(w http.ResponseWriter, r *http.Request) {
    body, err := DecodeBody(declaredBody(r))
    if err != nil {
        log.Printf("post %s: %v", requestPath(r), err)
        if errors.Is(err, ErrInvalidUTF8) {
            http.Error(w, err.Error(), http.StatusInternalServerError)
            return
        }
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    hm := requestHeaders(r)
    ct, ok := hm.Get("content-type")
    if !ok || ct == "" {
        ct = UnknownCT
    }
    resp := PostResponse{
        Message:     PostAck,
        Path:        requestPath(r),
        Headers:     hm,
        Body:        body,
        ContentType: ct,
    }

    out, err := MarshalIndent(resp)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusOK)
    w.Write(out)
}

// HandleUnsupported answers methods that have no rule.
func HandleUnsupported(w http.ResponseWriter, r *http.Request) {
    http.Error(w, fmt.Sprintf("Unsupported method ('%s')", r.Method), http.StatusNotImplemented)
}

// DecodeBody reads r fully and fails with ErrInvalidUTF8 if the bytes are not
// valid UTF-8.
func DecodeBody(r io.Reader) (string, error) {
    b, err := io.ReadAll(transform.NewReader(r, encoding.UTF8Validator))
    if err != nil {
        if errors.Is(err, encoding.ErrInvalidUTF8) {
            return "", ErrInvalidUTF8
        }
        return "", errors.Wrap(err, "read body")
    }
    return string(b), nil
}

// MarshalIndent encodes v with two-space indentation and without escaping
// HTML or non-ASCII characters.
func MarshalIndent(v any) ([]byte, error) {
    var buf bytes.Buffer
    enc := json.NewEncoder(&buf)
    enc.SetEscapeHTML(false)
    enc.SetIndent("", "  ")
    if err := enc.Encode(v); err != nil {
        return nil, errors.Wrap(err, "encode response")
    }
    return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func requestPath(r *http.Request) string {
    if r.RequestURI != "" {
        return r.RequestURI
    }
    return r.URL.RequestURI()
}

// declaredBody limits the body to its Content-Length. Requests without one,
// chunked ones included, carry no body.
func declaredBody(r *http.Request) io.Reader {
    if r.ContentLength <= 0 {
        return strings.NewReader("")
    }
    return io.LimitReader(r.Body, r.ContentLength)
}

// requestHeaders rebuilds the wire headers, including Host and
// Transfer-Encoding which net/http moves out of r.Header.
func requestHeaders(r *http.Request) *headers.Map {
    h := r.Header.Clone()
    if h == nil {
        h = http.Header{}
    }
    if r.Host != "" {
        h.Set("Host", r.Host)
    }
    if len(r.TransferEncoding) > 0 {
        h.Set("Transfer-Encoding", strings.Join(r.TransferEncoding, ", "))
    }
    return headers.FromHTTP(h)
}
