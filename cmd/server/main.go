package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"oantuti/internal/network"
	"oantuti/internal/services/cluster"
	"oantuti/internal/services/events"
	"oantuti/internal/session"
)

const serviceName = "oantuti-server"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	// The event bus is optional: without NATS_URL the publisher stays
	// nil and every publish is a no-op.
	var publisher *events.Publisher
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		var err error
		publisher, err = events.Connect(natsURL, logger)
		if err != nil {
			logger.Error("could not connect to NATS", "url", natsURL, "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
	}

	handler := session.NewGameHandler(logger, publisher)
	server := network.NewServer(handler, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.HandleFunc("/health", cluster.NewHealthHandler(handler.Registry().Len))

	// Consul registration is likewise opt-in, for clustered deployments.
	if consulAddr := os.Getenv("CONSUL_HTTP_ADDR"); consulAddr != "" {
		port := listenPort(listenAddr)
		if err := cluster.Register(serviceName, port, port, consulAddr); err != nil {
			logger.Error("could not register with Consul", "error", err)
			os.Exit(1)
		}
		logger.Info("registered with Consul", "service", serviceName, "consul", consulAddr)
	}

	logger.Info("server listening", "addr", fmt.Sprintf("ws://%s/ws", listenAddr))
	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// listenPort extracts the numeric port from an address like ":8080".
func listenPort(addr string) int {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			if port, err := strconv.Atoi(addr[i+1:]); err == nil {
				return port
			}
			break
		}
	}
	return 8080
}
