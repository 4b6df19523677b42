// Command posserver serves the chessmg position API over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"chess-movegen/httpapi"
)

func main() {
	def := httpapi.DefaultConfig()

	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("CHESSMG_ADDR", ":8080"), "listen address")
	maxDepth := flag.Int("max-perft-depth", getenvInt("CHESSMG_MAX_PERFT_DEPTH", def.MaxPerftDepth), "deepest perft a request may ask for")
	maxBody := flag.Int64("max-body-bytes", int64(getenvInt("CHESSMG_MAX_BODY_BYTES", int(def.MaxBodyBytes))), "largest accepted JSON body")
	quiet := flag.Bool("quiet", false, "disable the access log")
	flag.Parse()

	cfg := httpapi.Config{MaxPerftDepth: *maxDepth, MaxBodyBytes: *maxBody}
	if !*quiet {
		cfg.AccessLog = os.Stdout
	}
	srv := httpapi.NewServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(*addr) }()

	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("listen: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
		if err := <-errc; err != nil {
			log.Fatalf("listen: %v", err)
		}
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("%s: %v", key, err)
		}
		return n
	}
	return def
}
