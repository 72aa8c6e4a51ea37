// Tourism CMS server.
// HTTP for the public site, the admin panel and MCP clients; optional stdio MCP.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/api"
	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/config"
	"github.com/jaakkos/tourism-cms/internal/repository"
	"github.com/jaakkos/tourism-cms/internal/search"
	"github.com/jaakkos/tourism-cms/internal/seed"
	"github.com/jaakkos/tourism-cms/internal/tools/cms"
)

// Version is set by -ldflags at build time.
var Version = "dev"

const logPrefix = "[tourism-cms] "

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "status":
			runStatusCommand()
			return
		case "--version", "-v", "version":
			fmt.Println("tourism-cms " + Version)
			return
		}
	}

	tmpLogger := log.New(os.Stderr, logPrefix, log.LstdFlags|log.Lshortfile)
	cfg := loadConfig(tmpLogger)

	logger := setupLogger(cfg)
	logger.Println("Starting tourism CMS server...")
	logger.Printf("State file: %s (key %s)", cfg.StatePath(), cfg.Key())

	repo, err := repository.NewSnapshotRepository(cfg.StatePath(), cfg.Key())
	if err != nil {
		logger.Fatalf("Snapshot repository: %v", err)
	}
	store, err := app.NewContentStore(repo, seed.New(cfg.SeedDir), logger, app.WithSignalFile(cfg.SignalPath()))
	if err != nil {
		logger.Fatalf("Content store: %v", err)
	}

	tokens, err := api.NewTokenIssuer(jwtSecret(cfg, logger), cfg.TokenTTL())
	if err != nil {
		logger.Fatalf("Token issuer: %v", err)
	}

	// Session store for push notifications (holds actual ClientSession objects)
	sessions := newSessionStore()
	gate := cms.NewGate(store)

	hooks := &server.Hooks{}
	hooks.AddBeforeInitialize(func(ctx context.Context, id any, message *mcp.InitializeRequest) {
		if session := server.ClientSessionFromContext(ctx); session != nil {
			sessions.set(session.SessionID(), session)
			logger.Printf("Client session registered: %s", session.SessionID())
		}
		if message != nil {
			ci := message.Params.ClientInfo
			logger.Printf("Client: %s %s, Protocol: %s", ci.Name, ci.Version, message.Params.ProtocolVersion)
		}
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		sessions.remove(session.SessionID())
		gate.Forget(session.SessionID())
		logger.Printf("Client session unregistered: %s", session.SessionID())
	})
	hooks.AddAfterCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest, result *mcp.CallToolResult) {
		if message != nil {
			logger.Printf("Calling tool: %s", message.Params.Name)
		}
	})

	mcpServer := server.NewMCPServer(
		"tourism-cms",
		Version,
		server.WithInstructions("Content management for the tourism site. Call login before any create_, update_ or delete_ tool."),
		server.WithHooks(hooks),
		server.WithResourceCapabilities(false, true),
	)
	cms.Register(mcpServer, store, gate, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handlerOpts := []api.HandlerOption{
		api.WithLogger(logger),
		api.WithCORSOrigins(cfg.CORSOrigins),
	}

	// Full-text search is optional: a failed index leaves the rest running.
	var syncDone chan struct{}
	index, err := search.NewIndex(cfg.SearchIndexPath())
	if err != nil {
		logger.Printf("Warning: search index disabled: %v", err)
	} else {
		syncer := search.NewSyncer(index, store, logger)
		syncDone = make(chan struct{})
		go func() {
			defer close(syncDone)
			syncer.Start(ctx)
		}()
		cms.RegisterSearch(mcpServer, index, logger)
		handlerOpts = append(handlerOpts, api.WithSearch(index))
	}

	signal.Ignore(syscall.SIGHUP)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	notifier := app.NewNotifier(cfg.SignalPath(), store, sessions.pushFunc(logger), logger)
	store.SetNotifier(notifier)
	go notifier.Start(ctx)

	// Retries snapshot saves that failed during a mutation.
	watchdog := app.NewWatchdog(store, logger)
	go watchdog.Start(ctx)

	handler := api.NewHandler(store, tokens, handlerOpts...)
	httpShutdown := startHTTPServer(cfg.Addr(), newRouter(handler, mcpServer, tokens), logger)

	if cfg.MCPStdio {
		logger.Println("Stdio ready (MCP client connection)")
		stdioSrv := server.NewStdioServer(mcpServer)
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("Stdio server stopped: %v", err)
		}
		cancel()
	} else {
		<-ctx.Done()
	}

	httpShutdown()
	watchdog.Stop()
	notifier.Stop()
	if index != nil {
		<-syncDone
		if err := index.Close(); err != nil {
			logger.Printf("Warning: close search index: %v", err)
		}
	}

	if err := store.Flush(); err != nil {
		logger.Printf("Warning: final flush: %v", err)
	}
	if c, ok := repo.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Printf("Warning: close snapshot repository: %v", err)
		}
	}
	logger.Println("Server stopped")
}

// newRouter mounts the streamable MCP endpoint next to the API and the
// dashboard.
func newRouter(handler *api.Handler, mcpServer *server.MCPServer, tokens *api.TokenIssuer) http.Handler {
	router := handler.Routes()
	router.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer,
		server.WithHTTPContextFunc(mcpHTTPContext(tokens)),
	))
	return router
}

// mcpHTTPContext lets an HTTP MCP client act as admin by sending the bearer
// token from /api/admin/login. Requests without a valid token stay anonymous.
func mcpHTTPContext(tokens *api.TokenIssuer) server.HTTPContextFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		email, err := tokens.VerifyRequest(r)
		if err != nil {
			return ctx
		}
		return cms.ContextWithAdmin(ctx, email)
	}
}

// startHTTPServer serves router in the background. Returns a shutdown
// function.
func startHTTPServer(addr string, router http.Handler, logger *log.Logger) func() {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalf("HTTP listen: %v", err)
	}
	actualPort := ln.Addr().(*net.TCPAddr).Port
	baseURL := fmt.Sprintf("http://localhost:%d", actualPort)

	logger.Printf("HTTP server on :%d", actualPort)
	logger.Printf("  API:          %s/api", baseURL)
	logger.Printf("  MCP clients:  %s/mcp", baseURL)
	logger.Printf("  Dashboard:    %s/dashboard", baseURL)

	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := httpServer.Serve(ln); err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
	}
}

// jwtSecret returns the configured secret, or a random one. Tokens signed
// with a random secret do not survive a restart.
func jwtSecret(cfg *config.Config, logger *log.Logger) string {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatalf("Generate JWT secret: %v", err)
	}
	logger.Println("Warning: auth.jwt_secret not set, using a random secret for this process")
	return hex.EncodeToString(buf)
}

// sessionStore holds active ClientSession objects for push notifications.
type sessionStore struct {
	mu   sync.RWMutex
	data map[string]server.ClientSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{data: make(map[string]server.ClientSession)}
}

func (ss *sessionStore) set(id string, s server.ClientSession) {
	ss.mu.Lock()
	ss.data[id] = s
	ss.mu.Unlock()
}

func (ss *sessionStore) remove(id string) {
	ss.mu.Lock()
	delete(ss.data, id)
	ss.mu.Unlock()
}

func (ss *sessionStore) snapshot() []server.ClientSession {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	out := make([]server.ClientSession, 0, len(ss.data))
	for _, s := range ss.data {
		out = append(out, s)
	}
	return out
}

// pushFunc returns the notifier callback: it sends the notification to every
// initialized session without blocking.
func (ss *sessionStore) pushFunc(logger *log.Logger) func(method string, params any) error {
	return func(method string, params any) error {
		notification := mcp.JSONRPCNotification{
			JSONRPC: "2.0",
			Notification: mcp.Notification{
				Method: method,
				Params: mcp.NotificationParams{AdditionalFields: map[string]any{"params": params}},
			},
		}
		for _, session := range ss.snapshot() {
			if !session.Initialized() {
				continue
			}
			select {
			case session.NotificationChannel() <- notification:
			default:
				logger.Printf("Notifier: push to %s dropped (channel full)", session.SessionID())
			}
		}
		return nil
	}
}

// setupLogger creates a logger that writes to the log file and optionally stderr.
// When stderr is a terminal, logs go to both; when it is redirected, only to
// the file so daemonized runs do not log every line twice.
func setupLogger(cfg *config.Config) *log.Logger {
	var writers []io.Writer

	stderrIsTerminal := false
	if info, err := os.Stderr.Stat(); err == nil {
		stderrIsTerminal = (info.Mode() & os.ModeCharDevice) != 0
	}

	hasLogFile := false
	if logFilePath := cfg.LogPath(); !cfg.FileLoggingDisabled() {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err == nil {
			f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				writers = append(writers, f)
				hasLogFile = true
			} else {
				fmt.Fprintf(os.Stderr, "%sWarning: cannot open log file %s: %v\n", logPrefix, logFilePath, err)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%sWarning: cannot create log dir %s: %v\n", logPrefix, filepath.Dir(logFilePath), err)
		}
	}

	// Always keep at least one output.
	if stderrIsTerminal || !hasLogFile {
		writers = append(writers, os.Stderr)
	}

	return log.New(io.MultiWriter(writers...), logPrefix, log.LstdFlags|log.Lshortfile)
}

// loadConfig loads the config named by TOURISM_CMS_CONFIG plus environment
// overrides. A broken file falls back to defaults with env applied.
func loadConfig(logger *log.Logger) *config.Config {
	cfg, err := config.Load()
	if err == nil {
		return cfg
	}
	logger.Printf("Warning: failed to load config: %v, using defaults", err)
	cfg = config.DefaultConfig()
	if err := config.ParseEnv(cfg); err != nil {
		logger.Printf("Warning: %v", err)
	}
	return cfg
}
