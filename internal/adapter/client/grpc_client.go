package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/rl1809/cart-store/internal/adapter/rpc"
	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/port"
)

// GRPCClient reads products and stock from the catalog's gRPC service.
type GRPCClient struct {
	conn *grpc.ClientConn
}

// DialGRPC creates a client for addr. Extra options are appended after the
// defaults, which is how tests swap in an in-memory dialer.
func DialGRPC(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial catalog %s: %w", addr, err)
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	var out rpc.ProductResponse
	if err := c.conn.Invoke(ctx, rpc.GetProductMethod, &rpc.ProductRequest{ProductID: productID}, &out); err != nil {
		return domain.Product{}, mapStatus("GetProduct", err)
	}
	return domain.Product{ID: out.ID, Title: out.Title, Price: out.Price, Image: out.Image}, nil
}

func (c *GRPCClient) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	var out rpc.StockResponse
	if err := c.conn.Invoke(ctx, rpc.GetStockMethod, &rpc.StockRequest{ProductID: productID}, &out); err != nil {
		return domain.Stock{}, mapStatus("GetStock", err)
	}
	return domain.Stock{ID: out.ID, Amount: out.Amount}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func mapStatus(method string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", method, port.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", method, err)
}
