package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDoSendsBody(t *testing.T) {
    var gotCT, gotUA, gotBody string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotCT = r.Header.Get("Content-Type")
        gotUA = r.Header.Get("User-Agent")
        b, _ := io.ReadAll(r.Body)
        gotBody = string(b)
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"ok":true}`))
    }))
    defer srv.Close()

    res, err := New().Do(context.Background(), http.MethodPost, srv.URL+"/submit", RawBody("hi"))
    if err != nil {
        t.Fatalf("do: %v", err)
    }
    if gotCT != "text/plain" || gotUA != UserAgent || gotBody != "hi" {
        t.Fatalf("server saw ct=%q ua=%q body=%q", gotCT, gotUA, gotBody)
    }
    if !strings.HasPrefix(res.Status, "200") {
        t.Fatalf("status %q", res.Status)
    }
}

func TestDoWithoutBody(t *testing.T) {
    var gotCT string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotCT = r.Header.Get("Content-Type")
        w.Write([]byte("plain"))
    }))
    defer srv.Close()

    res, err := New().Do(context.Background(), http.MethodGet, srv.URL, nil)
    if err != nil {
        t.Fatalf("do: %v", err)
    }
    if gotCT != "" {
        t.Fatalf("unexpected content type %q", gotCT)
    }
    if string(res.Body) != "plain" {
        t.Fatalf("body %q", res.Body)
    }
}

func TestPrintIndentsJSON(t *testing.T) {
    color.NoColor = true
    res := &Result{
        Status: "200 OK",
        Proto:  "HTTP/1.1",
        Header: http.Header{"Content-Type": {"application/json"}},
        Body:   []byte(`{"a":1}`),
    }
    var buf bytes.Buffer
    Print(&buf, res)

    out := buf.String()
    if !strings.HasPrefix(out, "HTTP/1.1 200 OK\n") {
        t.Fatalf("missing status line: %q", out)
    }
    if !strings.Contains(out, "Content-Type: application/json\n") {
        t.Fatalf("missing header: %q", out)
    }
    if !strings.Contains(out, "{\n  \"a\": 1\n}") {
        t.Fatalf("body not indented: %q", out)
    }
}

func TestPrintLeavesTextAlone(t *testing.T) {
    color.NoColor = true
    res := &Result{Status: "200 OK", Proto: "HTTP/1.1", Header: http.Header{"Content-Type": {"text/plain"}}, Body: []byte(`{"a":1}`)}
    var buf bytes.Buffer
    Print(&buf, res)
    if !strings.Contains(buf.String(), `{"a":1}`) {
        t.Fatalf("text body modified: %q", buf.String())
    }
}
