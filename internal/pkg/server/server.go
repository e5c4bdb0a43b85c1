// Package server provides the generic gin-backed HTTP server used by the
// daemon's admin surface.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/kiosk404/animus/pkg/logger"
)

// Config holds the generic server's construction inputs.
type Config struct {
	Addr      string
	Mode      string
	Profiling bool
	Healthz   bool
}

// NewConfig returns a Config with sane defaults.
func NewConfig() *Config {
	return &Config{
		Addr:    "127.0.0.1:11900",
		Mode:    gin.ReleaseMode,
		Healthz: true,
	}
}

type completedConfig struct {
	*Config
}

// Complete fills in any fields that can be derived and returns the
// completed config.
func (c *Config) Complete() completedConfig {
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	return completedConfig{c}
}

// New builds a GenericAPIServer from the completed config.
func (c completedConfig) New() *GenericAPIServer {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		Engine:    gin.New(),
		addr:      c.Addr,
		healthz:   c.Healthz,
		profiling: c.Profiling,
	}
	s.Engine.Use(gin.Recovery())
	s.installGenericAPIs()
	return s
}

// GenericAPIServer wraps a gin engine and its http.Server lifecycle.
type GenericAPIServer struct {
	*gin.Engine

	addr      string
	healthz   bool
	profiling bool

	srv *http.Server
}

func (s *GenericAPIServer) installGenericAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
	if s.profiling {
		pprof.Register(s.Engine)
	}
}

// Run serves until Close is called or the listener fails.
func (s *GenericAPIServer) Run() error {
	s.srv = &http.Server{
		Addr:    s.addr,
		Handler: s.Engine,
	}
	logger.Info("[Server] admin server listening on %s", s.addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close drains in-flight requests and stops the server.
func (s *GenericAPIServer) Close() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		logger.Warn("[Server] shutdown failed: %v", err)
	}
}
