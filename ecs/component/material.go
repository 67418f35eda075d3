package component

import "image/color"

// Material is copied from a cut body onto each of its fragments.
type Material struct {
	Fill       color.NRGBA
	Friction   float64
	Elasticity float64
}

var MaterialComponent = NewComponent[Material]()
