package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"testserver/internal/echo"
	"testserver/internal/server"
)

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    srv := server.New(server.Addr, echo.NewRouter())
    if err := srv.Listen(); err != nil {
        log.Fatalf("start: %v", err)
    }

    color.New(color.Bold, color.FgGreen).Printf("🚀 Test server running at %s\n", server.URL())
    color.New(color.FgHiBlack).Println("Press Ctrl+C to stop the server")

    if err := srv.Serve(ctx); err != nil {
        log.Fatal(err)
    }
    log.Printf("test server stopped")
}
