// Package ui exposes the rendered report over HTTP when the run is started
// with a serve address. The report is computed once; the server only hands
// out the finished page.
package ui

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// ReportServer serves a rendered HTML report until the context is canceled.
type ReportServer struct {
	addr string
	page []byte
}

// NewReportServer creates a server for a finished HTML report page.
func NewReportServer(addr string, page []byte) *ReportServer {
	return &ReportServer{addr: addr, page: page}
}

// Serve blocks until ctx is canceled or the listener fails.
func (s *ReportServer) Serve(ctx context.Context) error {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(s.page)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: s.addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[ReportServer] serving report on http://%s", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
