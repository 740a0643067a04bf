package core

// Platform is the board-support collaborator: whatever must happen before
// the first register access and after the last one. Both calls are assumed
// to succeed.
type Platform interface {
	// Init prepares caches, clocks and the console
	Init()

	// Cleanup releases what Init acquired
	Cleanup()
}

// Global singleton used by core code.
var platform Platform

// SetPlatform is called by target-specific code to register its platform.
func SetPlatform(p Platform) {
	platform = p
}

// MustPlatform returns the configured platform or panics if missing.
func MustPlatform() Platform {
	if platform == nil {
		panic("platform not configured")
	}
	return platform
}
