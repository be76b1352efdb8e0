package server

import (
	"context"
	"net/http"
	"time"

	"jortega/finanzas/internal/auth"
	"jortega/finanzas/internal/logging"
)

// Options configures the HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server ties the handlers, middleware and the underlying http.Server
// together.
type Server struct {
	httpServer *http.Server
	log        logging.Logger
}

// New builds the router and wraps it in the middleware chain.
func New(opts Options, verifier *auth.Verifier, imports *ImportHandler, entities *EntityHandler, pinger Pinger, log logging.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			log.WithError(err).Warn("Health check failed")
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", MetricsHandler())

	authed := Auth(verifier)
	mux.Handle("POST /api/import/csv", authed(http.HandlerFunc(imports.ImportCSV)))
	mux.Handle("GET /api/transactions", authed(http.HandlerFunc(entities.ListTransactions)))
	mux.Handle("GET /api/categories", authed(http.HandlerFunc(entities.ListCategories)))
	mux.Handle("GET /api/payees", authed(http.HandlerFunc(entities.ListPayees)))
	mux.Handle("GET /api/accounts", authed(http.HandlerFunc(entities.ListAccounts)))
	mux.Handle("POST /api/accounts", authed(http.HandlerFunc(entities.CreateAccount)))

	var handler http.Handler = mux
	handler = Metrics(handler)
	handler = Logger(log)(handler)
	handler = CORS(handler)
	handler = RequestID(handler)
	handler = Recovery(log)(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		log: log,
	}
}

// ListenAndServe blocks serving requests until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the middleware-wrapped router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
