package plot

import (
	"image/color"
	"math"
)

// cividis maps t in [0, 1] onto the cividis colour map using the polynomial
// fit published with d3-scale-chromatic.
func cividis(t float64) color.RGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	r := -4.54 - t*(35.34-t*(2381.73-t*(6402.7-t*(7024.72-t*2710.57))))
	g := 32.49 + t*(170.73+t*(52.82-t*(131.46-t*(176.58-t*67.37))))
	b := 81.24 + t*(442.36-t*(2482.43-t*(6167.24-t*(6614.94-t*2475.67))))
	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
