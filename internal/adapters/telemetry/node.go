package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pollwatch/internal/adapters/logger"
	"go.trai.ch/pollwatch/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// InstrumentationName names the tracer used for poll rounds.
const InstrumentationName = "go.trai.ch/pollwatch"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			setupOTel(NewBridge(log))
			return NewOTelTracer(InstrumentationName), nil
		},
	})
}

// setupOTel registers an SDK provider that reports spans through bridge.
func setupOTel(bridge *Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
