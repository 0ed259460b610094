package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/cart-store/internal/adapter/rpc"
	"github.com/rl1809/cart-store/internal/core/service"
	"github.com/rl1809/cart-store/internal/port"
)

// CatalogServer is the gRPC surface of the catalog service.
type CatalogServer interface {
	GetProduct(ctx context.Context, req *rpc.ProductRequest) (*rpc.ProductResponse, error)
	GetStock(ctx context.Context, req *rpc.StockRequest) (*rpc.StockResponse, error)
}

type GRPCHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

func NewGRPCHandler(catalog *service.CatalogService, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{catalog: catalog, logger: logger}
}

// Register adds the catalog service to s.
func (h *GRPCHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&catalogServiceDesc, h)
}

func (h *GRPCHandler) GetProduct(ctx context.Context, req *rpc.ProductRequest) (*rpc.ProductResponse, error) {
	p, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, h.toStatus(req.ProductID, err)
	}
	return &rpc.ProductResponse{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image}, nil
}

func (h *GRPCHandler) GetStock(ctx context.Context, req *rpc.StockRequest) (*rpc.StockResponse, error) {
	s, err := h.catalog.GetStock(ctx, req.ProductID)
	if err != nil {
		return nil, h.toStatus(req.ProductID, err)
	}
	return &rpc.StockResponse{ID: s.ID, Amount: s.Amount}, nil
}

func (h *GRPCHandler) toStatus(id int, err error) error {
	if errors.Is(err, port.ErrNotFound) {
		return status.Errorf(codes.NotFound, "product %d not found", id)
	}
	h.logger.Error("catalog lookup failed", zap.Int("product_id", id), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: rpc.ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "GetStock", Handler: getStockHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rocketshoes/catalog/v1/catalog.json",
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(rpc.ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: rpc.GetProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetProduct(ctx, req.(*rpc.ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getStockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(rpc.StockRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetStock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: rpc.GetStockMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetStock(ctx, req.(*rpc.StockRequest))
	}
	return interceptor(ctx, in, info, handler)
}
