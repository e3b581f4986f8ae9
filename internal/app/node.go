package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pollwatch/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pollwatch/internal/adapters/console"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pollwatch/internal/adapters/find"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pollwatch/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/pollwatch/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pollwatch/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pollwatch/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.WalkerNodeID,
			find.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			console.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	finder, err := graft.Dep[*find.Finder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[*console.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, walker, finder, log, tracer, renderer), nil
}
