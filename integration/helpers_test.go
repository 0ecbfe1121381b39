package integration

import (
	"bufio"
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const serverURL = "http://localhost:33000"

func buildBinary(t *testing.T, pkg, out string) {
    cmd := exec.Command("go", "build", "-o", out, pkg)
    cmd.Env = append(os.Environ(), "GOOS="+runtime.GOOS, "GOARCH="+runtime.GOARCH)
    if outBytes, err := cmd.CombinedOutput(); err != nil {
        t.Fatalf("build %s: %v\n%s", pkg, err, string(outBytes))
    }
}

// startServer builds and launches the server binary on its fixed port. The
// test is skipped when something else already holds the port.
func startServer(t *testing.T) string {
    t.Helper()
    l, err := net.Listen("tcp", "localhost:33000")
    if err != nil {
        t.Skipf("port 33000 unavailable: %v", err)
    }
    l.Close()

    tempDir := t.TempDir()
    serverBin := filepath.Join(tempDir, "testserver")
    buildBinary(t, "../cmd/server", serverBin)

    ctx, cancel := context.WithCancel(context.Background())
    cmd := exec.CommandContext(ctx, serverBin)
    cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
    if err := cmd.Start(); err != nil {
        cancel()
        t.Fatalf("start server: %v", err)
    }
    t.Cleanup(func() {
        cancel()
        cmd.Wait()
    })

    waitReady(t)
    return tempDir
}

func waitReady(t *testing.T) {
    t.Helper()
    deadline := time.Now().Add(5 * time.Second)
    for time.Now().Before(deadline) {
        resp, err := http.Get(serverURL + "/")
        if err == nil {
            resp.Body.Close()
            return
        }
        time.Sleep(50 * time.Millisecond)
    }
    t.Fatalf("server did not become ready")
}

func bufioReader(b []byte) *bufio.Reader {
    return bufio.NewReader(bytes.NewReader(b))
}
