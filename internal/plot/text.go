package plot

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var textFace = basicfont.Face7x13

// textWidth returns the advance of s in pixels at scale 1.
func textWidth(s string) int {
	return font.MeasureString(textFace, s).Ceil()
}

// textImage renders s onto a transparent image sized to fit it.
func textImage(s string, col color.Color) *image.RGBA {
	m := textFace.Metrics()
	img := image.NewRGBA(image.Rect(0, 0, textWidth(s), m.Height.Ceil()))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: textFace,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(s)
	return img
}

// drawText draws s with its top-left corner at (x, y), enlarged by scale.
func drawText(dst draw.Image, s string, x, y, scale int, col color.Color) {
	src := textImage(s, col)
	b := src.Bounds()
	r := image.Rect(x, y, x+b.Dx()*scale, y+b.Dy()*scale)
	draw.NearestNeighbor.Scale(dst, r, src, b, draw.Over, nil)
}

// drawTextCentered draws s horizontally centred on cx.
func drawTextCentered(dst draw.Image, s string, cx, y, scale int, col color.Color) {
	drawText(dst, s, cx-textWidth(s)*scale/2, y, scale, col)
}

// drawTextVertical draws s rotated a quarter turn counter-clockwise,
// vertically centred on cy with its left edge at x.
func drawTextVertical(dst draw.Image, s string, x, cy int, col color.Color) {
	src := textImage(s, col)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	rot := image.NewRGBA(image.Rect(0, 0, h, w))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			rot.SetRGBA(sy, w-1-sx, src.RGBAAt(sx, sy))
		}
	}
	top := cy - w/2
	draw.Draw(dst, image.Rect(x, top, x+h, top+w), rot, image.Point{}, draw.Over)
}
