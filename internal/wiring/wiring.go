// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/RomkoSI/ice/internal/adapters/compiler"
	_ "github.com/RomkoSI/ice/internal/adapters/config"
	_ "github.com/RomkoSI/ice/internal/adapters/fs"
	_ "github.com/RomkoSI/ice/internal/adapters/logger"
	_ "github.com/RomkoSI/ice/internal/adapters/shell"
	_ "github.com/RomkoSI/ice/internal/adapters/store"
	_ "github.com/RomkoSI/ice/internal/adapters/telemetry"
	_ "github.com/RomkoSI/ice/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/RomkoSI/ice/internal/app"
	_ "github.com/RomkoSI/ice/internal/engine/planner"
)
