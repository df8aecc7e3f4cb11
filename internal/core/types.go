package core

import "image/color"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract a host needs to drive and present a fire engine.
// Hosts serialize every call; none of the methods are safe for concurrent use.
type Sim interface {
	Name() string
	Size() Size
	Tick(nowMillis int64)
	Toggle(nowMillis int64)
	Lit() bool
	Cells() []uint8
	Colors() []color.RGBA
}
