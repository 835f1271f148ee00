package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run serves HTTP, watches manifests and prunes old events until ctx is
// cancelled or one of them fails, then shuts the HTTP server down. Ready is
// closed once the listener and the watcher are in place. Run must be called
// at most once.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if s.watcher != nil {
		if err := s.watcher.Start(gctx); err != nil {
			s.logger.Error(err, "failed to start manifest watcher, continuing without it")
			if err := s.watcher.Stop(); err != nil {
				s.logger.Error(err, "failed to close manifest watcher")
			}
		} else {
			g.Go(func() error {
				<-gctx.Done()
				return s.watcher.Stop()
			})
		}
	}

	close(s.ready)

	g.Go(func() error {
		s.startLogCleanup(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down...")
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, DefaultShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("Shutdown complete")
	return nil
}

func (s *Server) startLogCleanup(ctx context.Context) {
	if s.config.LogCleanupInterval <= 0 || s.config.LogRetentionDays <= 0 {
		return
	}

	ticker := time.NewTicker(s.config.LogCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupEvents(time.Now())
		}
	}
}

func (s *Server) cleanupEvents(now time.Time) {
	before := now.AddDate(0, 0, -s.config.LogRetentionDays)
	removed, err := s.eventStore.CleanupOldEvents(before)
	if err != nil {
		s.logger.Error(err, "failed to cleanup old events")
		return
	}
	s.logger.V(1).Info("Pruned event log", "removed", removed, "before", before)
}
