package parameter

import "time"

// Frame Timing
const (
	// FrameInterval is the render/tick cadence (~60fps)
	FrameInterval = 16 * time.Millisecond
)

// Flash Overlay
const (
	// FlashDuration is the full decay time of the activation flash
	FlashDuration = 500 * time.Millisecond
)

// Screen Shake
const (
	// ShakeDuration is the full decay time of a shake kick
	ShakeDuration = 600 * time.Millisecond

	// ShakeAmplitude is the maximum offset in cells at full intensity
	ShakeAmplitude = 2.0

	// ShakeFrequencyHz is the jitter oscillation rate
	ShakeFrequencyHz = 23.0
)

// Portal Rest State
const (
	// PortalRestZoom is the camera zoom before activation
	PortalRestZoom = 1.0

	// PortalRestDepth is the camera Z position before activation
	PortalRestDepth = 3.2

	// PortalRingRadius is the ring's vertical radius as a fraction of
	// half the screen height
	PortalRingRadius = 0.55

	// PortalRestGlow is the idle ring glow level
	PortalRestGlow = 0.35

	// PortalRestStarSpeed is the idle starfield drift multiplier
	PortalRestStarSpeed = 1.0
)

// Black Hole Rest State
const (
	// VortexRestTwist is the idle spiral winding factor
	VortexRestTwist = 0.4

	// VortexRestPull is the idle accretion pull level; also scales the
	// event-horizon radius
	VortexRestPull = 0.2

	// VortexDiscRadius is the accretion disc's vertical radius as a
	// fraction of half the screen height
	VortexDiscRadius = 0.6
)

// Starfield
const (
	// StarCount is the number of background stars
	StarCount = 140

	// StarBaseDrift is the outward drift in cells per second at
	// speed multiplier 1 and depth 1
	StarBaseDrift = 1.8
)

// Watchdog
const (
	// DefaultWatchdogGrace is how far past its own budget a sequence
	// may run before the coordinator force-resets to idle
	DefaultWatchdogGrace = 2 * time.Second
)
