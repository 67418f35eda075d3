package common

// Logical screen size. The window scales to fit.
const (
	BaseWidth  = 800
	BaseHeight = 600
)
