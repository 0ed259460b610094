// Package rpc holds the wire contract of the gRPC catalog service. Messages
// are plain Go structs carried by a JSON codec, so no protoc step is needed.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype clients must request.
const CodecName = "json"

const (
	ServiceName      = "rocketshoes.catalog.v1.CatalogService"
	GetProductMethod = "/" + ServiceName + "/GetProduct"
	GetStockMethod   = "/" + ServiceName + "/GetStock"
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type ProductRequest struct {
	ProductID int `json:"product_id"`
}

type ProductResponse struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type StockRequest struct {
	ProductID int `json:"product_id"`
}

type StockResponse struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}
