// Package loader provides the plugin-like feature loading system.
//
// Application surfaces register themselves as features; the manager wires
// every enabled one onto the router at startup. Each feature implements the
// Feature interface, which defines its enablement check and route
// registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// The asset browser is the first feature; future editor surfaces (scene
// outline, material inspector) plug in the same way without touching the
// server setup.
package loader
