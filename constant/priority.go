package constant

// System execution priorities, lower runs first.
//
// Bands, by convention:
//
//	0-9    bridge (must run before everything that reads the frame counter)
//	10-19  core systems (input, audio)
//	20-39  gameplay logic
//	40-59  effects and polish
//	60+    UI and diagnostics
const (
	PriorityBridge      = 0
	PriorityInput       = 10
	PriorityAudio       = 15
	PrioritySpawner     = 20
	PriorityMover       = 30
	PriorityCameraShake = 40
)
