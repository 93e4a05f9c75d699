package txstream

import (
	"context"
	"fmt"

	"github.com/tasmil-labs/tasmilindexer/internal/config"
)

// GRPCStream is a thin wrapper around the real Aptos transaction
// stream gRPC service. Dialing and the wire protocol are out of scope
// here (specified only at the interface level); this type exists so
// cmd/tasmilindexer has a concrete, configuration-driven Stream to
// construct, and so a real client can be dropped in behind this same
// Stream interface without touching internal/orchestrator.
type GRPCStream struct {
	endpoint        string
	authToken       string
	startingVersion uint64
}

// NewGRPCStream builds a stream client from the stream section of the
// loaded configuration.
func NewGRPCStream(cfg config.StreamConfig) *GRPCStream {
	return &GRPCStream{
		endpoint:        cfg.Endpoint,
		authToken:       cfg.AuthToken,
		startingVersion: cfg.StartingVersion,
	}
}

// NextBatch is unimplemented: wiring the actual gRPC transaction
// stream client is out of scope. Callers needing a working Stream for
// tests or local runs should use FakeStream.
func (g *GRPCStream) NextBatch(ctx context.Context) ([]Transaction, BatchMetadata, error) {
	return nil, BatchMetadata{}, fmt.Errorf("txstream: GRPCStream is an interface stub, dial %s and implement NextBatch to use it", g.endpoint)
}
