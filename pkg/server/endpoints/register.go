package endpoints

import (
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterHealthEndpoints(srv)

	reg := srv.Registry
	RegisterResource(srv, reg.MerchantTypes)
	RegisterResource(srv, reg.MerchantStatuses)
	RegisterResource(srv, reg.ProductTypes)
	RegisterResource(srv, reg.ProductStatuses)
	RegisterResource(srv, reg.OrderStatuses)
	RegisterResource(srv, reg.Merchants)
	RegisterResource(srv, reg.Products)
	RegisterResource(srv, reg.Orders)
}
