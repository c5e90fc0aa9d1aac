// Package mcp exposes the analyzer and its history to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/subjectline/internal/analyzer"
	"github.com/vijay-prabhu/subjectline/internal/history"
)

// Config configures the MCP server
type Config struct {
	Name    string
	Version string
	Logger  *zap.Logger
}

// DefaultConfig returns the server defaults
func DefaultConfig() *Config {
	return &Config{
		Name:    "subjectline",
		Version: "dev",
		Logger:  zap.NewNop(),
	}
}

// Server is an MCP server backed by an analyzer and a history store
type Server struct {
	mcp      *mcp.Server
	analyzer *analyzer.Analyzer
	store    history.Store
	logger   *zap.Logger
}

// NewServer creates a server and registers its tools and resources
func NewServer(cfg *Config, a *analyzer.Analyzer, store history.Store) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if a == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if store == nil {
		return nil, fmt.Errorf("history store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		analyzer: a,
		store:    store,
		logger:   logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves on stdio until the client disconnects or ctx is done
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// Connect serves a single session over the given transport
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}
