package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds the final save of open sessions.
const shutdownTimeout = 10 * time.Second

const instructions = `Edit numbered contract outlines. Open a draft with outline_open,
then pass the returned session to the other outline_* tools. Section numbers
are recomputed by the server; never send an index. Call outline_save to
persist, or rely on autosave, and outline_close when done.`

// Server exposes draft editing sessions over MCP.
type Server struct {
	ports    *Ports
	server   *mcp.Server
	sessions *sessions
}

// NewServer creates a server over ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "drafter", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		sessions: newSessions(),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeAll()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	defer s.closeAll()

	httpServer := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	logger.Info("MCP server listening on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// closeAll saves every open session with unsaved changes and stops
// autosaving it.
func (s *Server) closeAll() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, editor := range s.sessions.drain() {
		if s.ports.Autosaver != nil {
			s.ports.Autosaver.Untrack(editor)
		}
		if !editor.Dirty() {
			continue
		}
		if _, err := s.ports.Drafts.Save(ctx, editor); err != nil {
			logger.Error("mcp: saving %q on shutdown: %v", editor.Meta().Title, err)
		}
	}
}
