// Package client implements port.CatalogClient over the catalog service's
// HTTP and gRPC transports.
package client

import (
	"fmt"

	"github.com/rl1809/cart-store/config"
	"github.com/rl1809/cart-store/internal/port"
)

// New builds the catalog client selected by cfg.Transport. The returned
// close function releases the underlying connection.
func New(cfg config.CatalogConfig) (port.CatalogClient, func() error, error) {
	switch cfg.Transport {
	case "", "http":
		return NewHTTPClient(cfg.HTTPURL, cfg.Timeout), func() error { return nil }, nil
	case "grpc":
		c, err := DialGRPC(cfg.GRPCAddr)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog transport %q", cfg.Transport)
	}
}
