package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

const UserAgent = "testclient"

// Client sends single requests and collects the full response.
type Client struct {
    HTTP *http.Client
}

func New() *Client {
    return &Client{HTTP: &http.Client{Timeout: 30 * time.Second}}
}

// Result is a fully read response.
type Result struct {
    Status string
    Proto  string
    Header http.Header
    Body   []byte
}

// Do sends method to rawURL with an optional body.
func (c *Client) Do(ctx context.Context, method, rawURL string, body *Body) (*Result, error) {
    var rd io.Reader
    if body != nil {
        rd = strings.NewReader(body.String())
    }
    req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
    if err != nil {
        return nil, errors.Wrap(err, "build request")
    }
    req.Header.Set("User-Agent", UserAgent)
    if body != nil {
        req.Header.Set("Content-Type", body.ContentType())
    }

    resp, err := c.HTTP.Do(req)
    if err != nil {
        return nil, errors.Wrapf(err, "%s %s", method, rawURL)
    }
    defer resp.Body.Close()

    b, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, errors.Wrap(err, "read response")
    }
    return &Result{Status: resp.Status, Proto: resp.Proto, Header: resp.Header, Body: b}, nil
}

// Print writes the status line, headers and body of res. JSON bodies are
// re-indented.
func Print(w io.Writer, res *Result) {
    color.New(color.Bold, color.FgCyan).Fprintf(w, "%s %s\n", res.Proto, res.Status)

    names := make([]string, 0, len(res.Header))
    for k := range res.Header {
        names = append(names, k)
    }
    sort.Strings(names)
    for _, k := range names {
        color.New(color.FgGreen).Fprintf(w, "%s", k)
        fmt.Fprintf(w, ": %s\n", strings.Join(res.Header[k], ", "))
    }
    fmt.Fprintln(w)
    fmt.Fprintln(w, string(formatBody(res)))
}

func formatBody(res *Result) []byte {
    mt, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
    if mt != "application/json" {
        return res.Body
    }
    var buf bytes.Buffer
    if err := json.Indent(&buf, res.Body, "", "  "); err != nil {
        return res.Body
    }
    return buf.Bytes()
}
