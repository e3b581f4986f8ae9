package app

import (
	"go.trai.ch/pollwatch/internal/core/ports"
)

// Components contains the resolved application dependencies.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}
