package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Clau791/Drive-search-with-AI-extended/internal/config"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/drive"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/embedder"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/extractor"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/hybrid"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/planner"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/store"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/syncer"
)

const (
	// ServerName is the MCP server name
	ServerName = "drivesearch-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// EnvCredentialsFile locates the service account key when the config
	// file does not name one.
	EnvCredentialsFile = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	store    *store.Store
	embedder embedder.Embedder
	syncer   *syncer.Syncer
	engine   *hybrid.Engine
	search   config.SearchConfig
}

// NewServer creates a new MCP server instance wired from configuration.
func NewServer(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	st := store.New(cfg.Store.Path)
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("failed to load embedding store: %w", err)
	}

	keyFile := cfg.Drive.CredentialsFile
	if keyFile == "" {
		keyFile = os.Getenv(EnvCredentialsFile)
	}
	dc, err := drive.NewServiceAccountClient(ctx, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Drive client: %w", err)
	}

	emb, err := buildEmbedder(cfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	chat, err := planner.NewAPIClientFromConfig(cfg.Planner.BaseURL, cfg.Planner.Model)
	if err != nil && !errors.Is(err, planner.ErrNotConfigured) {
		return nil, fmt.Errorf("failed to initialize chat client: %w", err)
	}
	if chat == nil {
		// Planning degrades to deterministic fallbacks without a model.
		log.Printf("chat API not configured, query planning disabled")
	}
	var pl *planner.Planner
	if chat != nil {
		pl = planner.New(chat)
	} else {
		pl = planner.New(nil)
	}

	sy := syncer.New(dc, st, emb, extractor.NewPlain(), &syncer.Config{
		MimeType: cfg.Drive.MimeType,
		PageSize: cfg.Drive.PageSize,
		Workers:  cfg.Sync.Workers,
	})

	return newServer(dc, st, emb, pl, sy, cfg.Search), nil
}

// buildEmbedder honors the configured provider and model; an empty
// provider defers the choice to the environment.
func buildEmbedder(cfg config.EmbedderConfig) (embedder.Embedder, error) {
	if cfg.Provider == "" {
		return embedder.NewFromEnv()
	}
	return embedder.New(embedder.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
	})
}

// newServer wires a server from pre-built components. Tests use it to
// inject fakes.
func newServer(dc drive.Client, st *store.Store, emb embedder.Embedder, pl *planner.Planner, sy *syncer.Syncer, search config.SearchConfig) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		store:    st,
		embedder: emb,
		syncer:   sy,
		engine:   hybrid.New(dc, st, emb, pl, sy),
		search:   search,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.embedder.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentsTool(), s.handleSearchDocuments)
	s.mcp.AddTool(syncIndexTool(), s.handleSyncIndex)
	s.mcp.AddTool(indexStatusTool(), s.handleIndexStatus)
}

// syncTimeout returns the configured inline sync budget.
func (s *Server) syncTimeout() time.Duration {
	if s.search.SyncTimeoutSecs <= 0 {
		return hybrid.DefaultSyncTimeout
	}
	return time.Duration(s.search.SyncTimeoutSecs) * time.Second
}
