package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/app"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/logging"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

type Server struct {
	Registry *service.Registry
	Config   *config.MerchantConfig
	Checks   []app.HealthCheck
	Router   *mux.Router
	srv      *http.Server
}

func NewServer(a *app.App, host string, port string) *Server {
	router := mux.NewRouter().UseEncodedPath()

	var handler http.Handler = router
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
	handler = handlers.LoggingHandler(logging.Component("http"), handler)

	srv := &http.Server{
		Handler:      handler,
		Addr:         host + ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Registry: a.Registry,
		Config:   a.Config,
		Checks:   a.Checks(),
		Router:   router,
		srv:      srv,
	}
}

// Handler returns the root handler including access logging and recovery.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
