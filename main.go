// Command slidepuzzle starts the sliding tile puzzle server.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config directory, debug logging, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/tilegame/slidepuzzle/api"
	"github.com/tilegame/slidepuzzle/game/config"
	"github.com/tilegame/slidepuzzle/game/service"
	"github.com/tilegame/slidepuzzle/game/session"
	"github.com/tilegame/slidepuzzle/transport/mcp"
	"github.com/tilegame/slidepuzzle/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Slide Puzzle Server"
)

// serverOptions collects the settings shared by both run modes.
type serverOptions struct {
	host        string
	port        int
	configDir   string
	sessionsDir string
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func optionsFromCommand(cmd *cli.Command) serverOptions {
	return serverOptions{
		host:        cmd.String("host"),
		port:        int(cmd.Int("port")),
		configDir:   cmd.String("config-dir"),
		sessionsDir: cmd.String("sessions-dir"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Error loading .env file")
		}
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "port",
			Value: 8080,
			Usage: "HTTP server port",
		},
		&cli.StringFlag{
			Name:  "host",
			Value: "localhost",
			Usage: "HTTP server host",
		},
		&cli.StringFlag{
			Name:    "config-dir",
			Value:   "configs",
			Usage:   "Directory containing game configurations",
			Sources: cli.EnvVars("CONFIG_DIR"),
		},
		&cli.StringFlag{
			Name:    "sessions-dir",
			Value:   "sessions",
			Usage:   "Directory for persisted sessions",
			Sources: cli.EnvVars("SESSIONS_DIR"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Enable debug logging",
			Sources: cli.EnvVars("DEBUG"),
		},
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "Enable ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "Ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "Custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}

	root := &cli.Command{
		Name:    "slidepuzzle",
		Usage:   "sliding tile puzzle server with REST, WebSocket, and MCP interfaces",
		Version: Version,
		Flags:   flags,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run the HTTP server with API, WebSocket, and MCP endpoint",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runServe(ctx, cmd, log)
				},
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run an MCP stdio server backed by an internal or external HTTP API",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(cmd, log)
				},
			},
		},
		// No subcommand behaves like "serve"
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd, log)
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("Server exited with error")
	}
}

func runServe(ctx context.Context, cmd *cli.Command, log *logrus.Logger) error {
	opts := optionsFromCommand(cmd)
	log.WithFields(logrus.Fields{
		"version": Version,
		"mode":    "serve",
	}).Infof("Starting %s", AppName)

	gameService, err := initializeServices(opts, log)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return runHTTPServer(ctx, opts, gameService, log)
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, opts serverOptions, gameService service.GameService, log *logrus.Logger) error {
	hub := websocket.NewHub()
	hub.SetLogger(log)
	go hub.Run()

	apiServer := api.NewServer(gameService, hub, log)

	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)

	// MCP client for the /mcp endpoint proxies back through the REST API
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.WithField("addr", addr).Info("HTTP server listening")
		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, mainRouter, log)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.WithField("signal", sig.String()).Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("Server stopped")
	return nil
}

// runNgrokTunnel exposes the router through a public ngrok endpoint.
func runNgrokTunnel(ctx context.Context, opts serverOptions, handler http.Handler, log *logrus.Logger) {
	if opts.ngrokAuth == "" {
		log.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Info("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		log.WithField("domain", opts.ngrokDomain).Info("Using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(opts.ngrokAuth),
	)
	if err != nil {
		log.WithError(err).Error("Failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("Failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.WithField("url", ngrokURL).Info("🚀 Ngrok tunnel established")
	log.Infof("  REST API (ngrok): %s/api", ngrokURL)
	log.Infof("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Ngrok server error")
	}
	log.Info("Ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine to prune stale sessions.
func initializeServices(opts serverOptions, log *logrus.Logger) (service.GameService, error) {
	configManager, err := config.NewManager(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(opts.sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	sessionManager.SetLogger(log)

	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.WithError(err).Warn("Failed to load persisted sessions")
	}

	gameService := service.NewGameService(sessionManager, configManager, log)

	go sessionCleanupRoutine(sessionManager, log)
	go filesystemSyncRoutine(sessionManager, persistence, log)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(manager *session.Manager, log *logrus.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.WithField("removed", removed).Info("Cleaned up expired sessions")
		}
	}
}

// filesystemSyncRoutine periodically syncs in-memory sessions with filesystem state.
// It removes sessions from memory when their corresponding files are deleted.
func filesystemSyncRoutine(manager *session.Manager, persistence session.SessionPersistence, log *logrus.Logger) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if persistence == nil {
			continue
		}

		memorySessions := manager.List()

		pruned := 0
		for _, sess := range memorySessions {
			if !persistence.Exists(sess.ID) {
				// File deleted, remove from memory
				if err := manager.DeleteFromMemory(sess.ID); err == nil {
					pruned++
					log.WithField("session_id", sess.ID).Debug("Pruned session from memory (file deleted)")
				}
			}
		}

		if pruned > 0 {
			log.WithField("pruned", pruned).Info("Filesystem sync: pruned orphaned sessions from memory")
		}
	}
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:<port>; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(cmd *cli.Command, log *logrus.Logger) error {
	opts := optionsFromCommand(cmd)

	// MCP stdio owns stdout; keep all logging on stderr
	log.SetOutput(os.Stderr)

	var baseURL string

	externalURL := fmt.Sprintf("http://%s:%d", opts.host, opts.port)
	log.WithField("url", externalURL).Debug("Checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.WithField("url", externalURL).Info("External API server found, using it for MCP")
		baseURL = externalURL
	} else {
		log.Info("No external API server found, starting internal HTTP server")

		gameService, err := initializeServices(opts, log)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.WithField("addr", internalAddr).Info("Starting internal HTTP server for MCP stdio")

		hub := websocket.NewHub()
		hub.SetLogger(log)
		go hub.Run()

		apiServer := api.NewServer(gameService, hub, log)

		httpServer := &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Internal HTTP server error")
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.WithField("base_url", baseURL).Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
