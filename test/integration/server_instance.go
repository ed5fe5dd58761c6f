package integration

import (
	"context"
	"net/http/httptest"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/app"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/endpoints"
)

// ServerInstance is an in-process server serving one scenario
type ServerInstance struct {
	App       *app.App
	ServerURL string
	http      *httptest.Server
}

// StartServer builds the services over the shared primary store with a fresh
// mirror and serves them on a random local port.
func StartServer(ctx context.Context, tc *TestContext) (*ServerInstance, error) {
	if err := tc.Reset(); err != nil {
		return nil, err
	}
	a, err := app.Build(ctx, tc.Config, tc.DB)
	if err != nil {
		return nil, err
	}

	s := server.NewServer(a, "127.0.0.1", "0")
	endpoints.RegisterAll(s)
	ts := httptest.NewServer(s.Handler())

	return &ServerInstance{App: a, ServerURL: ts.URL, http: ts}, nil
}

// Stop shuts the server down. The shared database connection stays open.
func (si *ServerInstance) Stop() {
	si.http.Close()
}
