package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/selamgh/mcp-equation-solver/internal/history"
	"github.com/selamgh/mcp-equation-solver/internal/solver"
	"github.com/selamgh/mcp-equation-solver/internal/tools"
)

const (
	ServerName    = "equation-solver-server"
	ServerVersion = "0.1.0"
)

func main() {
	transport := os.Getenv("TRANSPORT")
	if transport == "" {
		transport = "streamable-http"
	}
	log.Printf("Starting with transport: %s", transport)

	s := createMCPServer()

	switch transport {
	case "stdio":
		startStdioServer(s)
	case "streamable-http":
		startHTTPServer(s)
	default:
		log.Fatalf("Unsupported transport: %s (supported: stdio or streamable-http)", transport)
	}
}

func createMCPServer() *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion)

	t := tools.New(solver.New(solver.DefaultOptions()), history.NewStore())
	t.Register(s)

	return s
}

func startStdioServer(s *server.MCPServer) {
	log.Println("Starting MCP server with stdio transport")
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("Stdio server error: %v", err)
	}
}

func startHTTPServer(s *server.MCPServer) {
	port := "8080"
	// Check for PORT environment variable first (common in containers)
	if portStr := os.Getenv("PORT"); portStr != "" {
		port = portStr
	}

	log.Printf("Starting MCP server with Streamable HTTP transport on port %s", port)

	streamServer := server.NewStreamableHTTPServer(s)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Mount the MCP streamable HTTP handler at /mcp
	mux.Handle("/mcp", streamServer)

	log.Printf("MCP endpoints available at: http://localhost:%s/mcp", port)
	log.Printf("Health check available at: http://localhost:%s/health", port)

	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), mux); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
