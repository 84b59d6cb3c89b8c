package app

import "github.com/RomkoSI/ice/internal/core/ports"

// Components holds the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}
