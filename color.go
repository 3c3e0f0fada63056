package convert

import "fmt"

// Color is an RGB triple parsed out of a {\colortbl ...} destination.
// Indices into the resolved color table are 1-based throughout this
// package; 0 means "unset".
type Color struct {
	R, G, B byte
}

// Hex renders the color as a 6-digit uppercase hex string without a
// leading '#', e.g. "FF0000".
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}
