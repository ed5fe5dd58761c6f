// Package server provides the HTTP server of the merchant API.
//
// Requests are routed with gorilla/mux and wrapped in gorilla/handlers
// recovery and access logging. Endpoints are registered by the endpoints
// subpackage.
//
// # Server Setup
//
//	a, err := app.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	srv := server.NewServer(a, "0.0.0.0", "8080")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//
// # Endpoints
//
// Every entity type gets the same set of routes under its path:
//
//   - POST /api/{path} - create
//   - PUT /api/{path}/{id} - update
//   - GET /api/{path} - filtered, paged list
//   - GET /api/{path}/count - filtered count
//   - GET /api/{path}/{id} - fetch one
//   - DELETE /api/{path}/{id} - delete
//   - GET /api/_search/{path}?query= - search the mirror
//
// /management/health reports the primary store and the search mirror.
package server
