package api

import (
	"context"

	"github.com/imishinist/espikey/api/kvpb"
	"github.com/imishinist/espikey/internal/service"
)

// GRPCServer implements the kvpb.KVServiceServer interface.
// It wraps the KV service and exposes it over gRPC. All outcome reporting
// happens through the response Status; transport-level errors are reserved
// for the framework itself.
type GRPCServer struct {
	kvpb.UnimplementedKVServiceServer
	svc *service.KV
}

// NewGRPCServer creates a new gRPC server over the given service.
func NewGRPCServer(svc *service.KV) *GRPCServer {
	return &GRPCServer{
		svc: svc,
	}
}

// Get retrieves a value by key. The response value is set exactly when the
// status is STATUS_OK.
func (s *GRPCServer) Get(ctx context.Context, req *kvpb.GetRequest) (*kvpb.GetResponse, error) {
	st, value := s.svc.Get(req.Key)
	return &kvpb.GetResponse{
		Status: st,
		Value:  value,
	}, nil
}

// Set stores a key-value pair.
func (s *GRPCServer) Set(ctx context.Context, req *kvpb.SetRequest) (*kvpb.SetResponse, error) {
	return &kvpb.SetResponse{
		Status: s.svc.Set(req.Key, req.Value),
	}, nil
}
