package api

import (
	"bytes"
	"context"
	"testing"

	"github.com/imishinist/espikey/api/kvpb"
	"github.com/imishinist/espikey/internal/service"
	"github.com/imishinist/espikey/internal/store"
)

func newTestServer() *GRPCServer {
	return NewGRPCServer(service.New(store.NewMemStore(0)))
}

func TestGRPCGetNotFound(t *testing.T) {
	srv := newTestServer()

	resp, err := srv.Get(context.Background(), &kvpb.GetRequest{Key: []byte("message")})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Status != kvpb.Status_STATUS_NOT_FOUND {
		t.Fatalf("status = %v, want STATUS_NOT_FOUND", resp.Status)
	}
	if resp.Value != nil {
		t.Fatalf("value = %x, want absent", resp.Value)
	}
}

func TestGRPCSetThenGet(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	setResp, err := srv.Set(ctx, &kvpb.SetRequest{Key: []byte("message"), Value: []byte("Hey")})
	if err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if setResp.Status != kvpb.Status_STATUS_OK {
		t.Fatalf("Set status = %v, want STATUS_OK", setResp.Status)
	}

	getResp, err := srv.Get(ctx, &kvpb.GetRequest{Key: []byte("message")})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if getResp.Status != kvpb.Status_STATUS_OK {
		t.Fatalf("Get status = %v, want STATUS_OK", getResp.Status)
	}
	if !bytes.Equal(getResp.Value, []byte("Hey")) {
		t.Fatalf("value = %q, want \"Hey\"", getResp.Value)
	}
}

func TestGRPCOverwrite(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	srv.Set(ctx, &kvpb.SetRequest{Key: []byte("message"), Value: []byte("Hey")})
	srv.Set(ctx, &kvpb.SetRequest{Key: []byte("message"), Value: []byte("value")})

	resp, err := srv.Get(ctx, &kvpb.GetRequest{Key: []byte("message")})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !bytes.Equal(resp.Value, []byte("value")) {
		t.Fatalf("value = %q, want \"value\"", resp.Value)
	}
}

func TestGRPCEmptyKey(t *testing.T) {
	// Empty keys are ordinary keys; the transport applies no policy.
	srv := newTestServer()
	ctx := context.Background()

	if _, err := srv.Set(ctx, &kvpb.SetRequest{Key: nil, Value: []byte("v")}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	resp, err := srv.Get(ctx, &kvpb.GetRequest{Key: nil})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Status != kvpb.Status_STATUS_OK || !bytes.Equal(resp.Value, []byte("v")) {
		t.Fatalf("Get = (%v, %q), want (STATUS_OK, \"v\")", resp.Status, resp.Value)
	}
}

func TestGRPCValuePresentIffOK(t *testing.T) {
	srv := NewGRPCServer(service.New(store.NewMemStore(0), service.WithMaxValueBytes(1)))
	ctx := context.Background()

	setResp, _ := srv.Set(ctx, &kvpb.SetRequest{Key: []byte("k"), Value: []byte("big")})
	if setResp.Status != kvpb.Status_STATUS_ERROR {
		t.Fatalf("Set status = %v, want STATUS_ERROR", setResp.Status)
	}

	getResp, _ := srv.Get(ctx, &kvpb.GetRequest{Key: []byte("k")})
	if getResp.Status == kvpb.Status_STATUS_OK {
		t.Fatal("Get reported OK for a rejected Set")
	}
	if getResp.Value != nil {
		t.Fatalf("value = %x on non-OK status", getResp.Value)
	}
}
