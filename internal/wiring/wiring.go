// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pollwatch/internal/adapters/config"
	_ "go.trai.ch/pollwatch/internal/adapters/console"
	_ "go.trai.ch/pollwatch/internal/adapters/find"
	_ "go.trai.ch/pollwatch/internal/adapters/fs"
	_ "go.trai.ch/pollwatch/internal/adapters/logger"
	_ "go.trai.ch/pollwatch/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/pollwatch/internal/app"
)
