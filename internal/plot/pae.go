package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/spf13/afero"
	"golang.org/x/image/draw"

	"github.com/mwiater/afplotter/internal/confidence"
)

const (
	paeCanvas    = 800
	paePlotLeft  = 90
	paePlotTop   = 50
	paePlotSize  = 600
	paeBarWidth  = paePlotSize * 3 / 4
	paeBarLeft   = paePlotLeft + (paePlotSize-paeBarWidth)/2
	paeBarTop    = paePlotTop + paePlotSize + 50
	paeBarHeight = 18
	paeTickLen   = 4
	paeDash      = 6
	paeGap       = 4

	paeTitle    = "Predicted Aligned Error (PAE)"
	paeXLabel   = "Scored Residue"
	paeYLabel   = "Aligned Residue"
	paeBarLabel = "Expected Position Error (Angstroms)"
)

var (
	frameColor   = color.RGBA{A: 255}
	textColor    = color.RGBA{A: 255}
	boundaryLine = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// PAELayout holds the data-derived geometry of a PAE heatmap.
type PAELayout struct {
	N          int
	VMin, VMax float64
	// Boundaries are token offsets at which a new chain segment starts.
	// The end of the last segment is never included.
	Boundaries []int
}

// LayoutPAE computes the colour scale and chain boundaries for an N×N matrix.
func LayoutPAE(matrix [][]float64, tokenChainIDs []string) PAELayout {
	l := PAELayout{N: len(matrix), VMin: math.Inf(1), VMax: math.Inf(-1)}
	for _, row := range matrix {
		for _, v := range row {
			l.VMin = math.Min(l.VMin, v)
			l.VMax = math.Max(l.VMax, v)
		}
	}
	if l.N == 0 {
		l.VMin, l.VMax = 0, 1
	}
	l.Boundaries = confidence.Boundaries(confidence.Segments(tokenChainIDs))
	return l
}

// norm maps v onto [0, 1] across the layout's colour scale.
func (l PAELayout) norm(v float64) float64 {
	if l.VMax <= l.VMin {
		return 0
	}
	return (v - l.VMin) / (l.VMax - l.VMin)
}

// cellEdge returns the pixel offset of token edge i along a plot axis.
func (l PAELayout) cellEdge(i int) int {
	return i * paePlotSize / l.N
}

// PAE renders the heatmap for matrix and writes it to the path derived from n.
func PAE(fs afero.Fs, matrix [][]float64, tokenChainIDs []string, n Naming) (string, error) {
	if len(matrix) == 0 {
		return "", fmt.Errorf("pae matrix is empty")
	}
	for i, row := range matrix {
		if len(row) != len(matrix) {
			return "", fmt.Errorf("pae matrix is not square: row %d has %d columns, want %d", i, len(row), len(matrix))
		}
	}
	img := renderPAE(matrix, LayoutPAE(matrix, tokenChainIDs))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode PAE png: %w", err)
	}
	out := n.Path(PAESuffix)
	if err := afero.WriteFile(fs, out, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write PAE plot %s: %w", out, err)
	}
	return out, nil
}

func renderPAE(matrix [][]float64, l PAELayout) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, paeCanvas, paeCanvas))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Row 0 sits at the bottom of the plot.
	for py := 0; py < paePlotSize; py++ {
		row := l.N - 1 - py*l.N/paePlotSize
		for px := 0; px < paePlotSize; px++ {
			col := px * l.N / paePlotSize
			img.SetRGBA(paePlotLeft+px, paePlotTop+py, cividis(l.norm(matrix[row][col])))
		}
	}

	for _, b := range l.Boundaries {
		off := l.cellEdge(b)
		dashedVLine(img, paePlotLeft+off, paePlotTop, paePlotTop+paePlotSize, boundaryLine)
		dashedHLine(img, paePlotLeft, paePlotLeft+paePlotSize, paePlotTop+paePlotSize-off, boundaryLine)
	}
	frame(img, image.Rect(paePlotLeft, paePlotTop, paePlotLeft+paePlotSize, paePlotTop+paePlotSize))

	ticks := niceTicks(0, float64(l.N-1), 6, true)
	for _, t := range ticks {
		i := int(t)
		centre := (l.cellEdge(i) + l.cellEdge(i+1)) / 2
		label := tickLabel(t, 1)

		x := paePlotLeft + centre
		vline(img, x, paePlotTop+paePlotSize, paePlotTop+paePlotSize+paeTickLen, frameColor)
		drawTextCentered(img, label, x, paePlotTop+paePlotSize+paeTickLen+2, 1, textColor)

		y := paePlotTop + paePlotSize - centre
		hline(img, paePlotLeft-paeTickLen, paePlotLeft, y, frameColor)
		drawText(img, label, paePlotLeft-paeTickLen-2-textWidth(label), y-6, 1, textColor)
	}

	drawTextCentered(img, paeTitle, paeCanvas/2, 12, 2, textColor)
	drawTextCentered(img, paeXLabel, paePlotLeft+paePlotSize/2, paePlotTop+paePlotSize+24, 1, textColor)
	drawTextVertical(img, paeYLabel, 24, paePlotTop+paePlotSize/2, textColor)

	renderColorBar(img, l)
	return img
}

func renderColorBar(img *image.RGBA, l PAELayout) {
	for px := 0; px < paeBarWidth; px++ {
		c := cividis(float64(px) / float64(paeBarWidth-1))
		for py := 0; py < paeBarHeight; py++ {
			img.SetRGBA(paeBarLeft+px, paeBarTop+py, c)
		}
	}
	frame(img, image.Rect(paeBarLeft, paeBarTop, paeBarLeft+paeBarWidth, paeBarTop+paeBarHeight))

	if l.VMax > l.VMin {
		ticks := niceTicks(l.VMin, l.VMax, 6, false)
		step := stepOf(ticks)
		for _, t := range ticks {
			x := paeBarLeft + int(math.Round(l.norm(t)*float64(paeBarWidth-1)))
			vline(img, x, paeBarTop+paeBarHeight, paeBarTop+paeBarHeight+paeTickLen, frameColor)
			drawTextCentered(img, tickLabel(t, step), x, paeBarTop+paeBarHeight+paeTickLen+2, 1, textColor)
		}
	} else {
		drawTextCentered(img, tickLabel(l.VMin, 1), paeBarLeft, paeBarTop+paeBarHeight+paeTickLen+2, 1, textColor)
	}
	drawTextCentered(img, paeBarLabel, paeBarLeft+paeBarWidth/2, paeBarTop+paeBarHeight+26, 1, textColor)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x < x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func dashedVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		if (y-y0)%(paeDash+paeGap) < paeDash {
			img.SetRGBA(x, y, c)
		}
	}
}

func dashedHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x < x1; x++ {
		if (x-x0)%(paeDash+paeGap) < paeDash {
			img.SetRGBA(x, y, c)
		}
	}
}

// frame outlines r one pixel outside its bounds.
func frame(img *image.RGBA, r image.Rectangle) {
	hline(img, r.Min.X-1, r.Max.X+1, r.Min.Y-1, frameColor)
	hline(img, r.Min.X-1, r.Max.X+1, r.Max.Y, frameColor)
	vline(img, r.Min.X-1, r.Min.Y-1, r.Max.Y+1, frameColor)
	vline(img, r.Max.X, r.Min.Y-1, r.Max.Y+1, frameColor)
}
