package core

// Entity is a unique identifier for a host-side entity (prop)
type Entity uint64

// Vec3 is a world-space position or offset
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns the vector multiplied by a scalar
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// GameState is the coarse host game phase
type GameState string

const (
	StateAttract GameState = "ATTRACT"
	StateGame    GameState = "GAME"
)

// ParseGameState maps the loose string forms accepted from scripts
// to a canonical state. ok is false for anything unrecognized
func ParseGameState(s string) (GameState, bool) {
	switch s {
	case "ATTRACT", "attract", "0":
		return StateAttract, true
	case "GAME", "game", "1":
		return StateGame, true
	}
	return "", false
}
