// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fastboot/internal/adapters/config"
	_ "go.trai.ch/fastboot/internal/adapters/fs"
	_ "go.trai.ch/fastboot/internal/adapters/logger"
	_ "go.trai.ch/fastboot/internal/adapters/nodepath"
	_ "go.trai.ch/fastboot/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/fastboot/internal/app"
)
