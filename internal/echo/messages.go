package echo

import "testserver/internal/headers"

const (
    Greeting  = "🚀 Welcome to the test server!"
    PostAck   = "POST request received"
    UnknownCT = "unknown"
)

// PostResponse is the JSON document returned for POST requests.
type PostResponse struct {
    Message     string       `json:"message"`
    Path        string       `json:"path"`
    Headers     *headers.Map `json:"headers"`
    Body        string       `json:"body"`
    ContentType string       `json:"content_type"`
}
