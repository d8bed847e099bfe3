package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/custodia-labs/hioder/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions tell the client how the datasets fit together.
const instructions = `hioder exposes four read-only datasets: "guide" (service guide entries),
"manual" (numbered manual articles), "voc" (monthly customer-voice summaries) and
"issues" (business issue feed). Use "categories" to list a dataset's tabs, "search"
to filter one page of records, then "detail" with a record index for the full record.
Record indexes are stable for as long as the dataset is unchanged.`

// Server is the MCP server for hioder.
type Server struct {
	ports  *Ports
	server *mcp.Server
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewServer creates a new MCP server with the given ports.
// The voc and issues tools are only registered when their services are set.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "hioder",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
		log:    logger.Named("mcp"),
		now:    time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Debugw("mcp serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves over HTTP on addr until the context is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warnw("mcp shutdown", "error", err)
		}
	}()

	s.log.Infow("mcp listening", "addr", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
