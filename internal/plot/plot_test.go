package plot

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputStem(t *testing.T) {
	tests := []struct {
		name   string
		source string
		glob   string
		want   string
	}{
		{name: "default glob", source: "model_x_confidences.json", glob: "*confidences.json", want: "model_x"},
		{name: "batch glob", source: "/runs/A/A_confidences.json", glob: "*_confidences.json", want: "A"},
		{name: "literal not a suffix", source: "fold_summary.json", glob: "*confidences.json", want: "fold_summary"},
		{
			// a character-set strip would also eat the trailing "ins" of "chains"
			name:   "only the literal is removed",
			source: "chains_confidences.json",
			glob:   "*_confidences.json",
			want:   "chains",
		},
		{name: "glob without extension", source: "x_confidences.json", glob: "*confidences", want: "x"},
		{name: "bare wildcard", source: "x_confidences.json", glob: "*", want: "x_confidences"},
		{name: "one separator trimmed", source: "run__confidences.json", glob: "*confidences.json", want: "run_"},
		{name: "mixed separators", source: "a-._confidences.json", glob: "*confidences.json", want: "a-."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputStem(tt.source, tt.glob))
		})
	}
}

func TestNamingPath(t *testing.T) {
	n := Naming{Source: "in/model_x_confidences.json", OutputDir: "out", Glob: "*confidences.json"}
	assert.Equal(t, filepath.Join("out", "model_xPLDDT.png"), n.Path(PLDDTSuffix))
	assert.Equal(t, filepath.Join("out", "model_xPAE.png"), n.Path(PAESuffix))
}

func TestLayoutPLDDTSingleChain(t *testing.T) {
	l := LayoutPLDDT([]float64{95, 72, 30.5}, []string{"A", "A", "A"})

	assert.Empty(t, l.Separators)
	assert.Equal(t, plddtXLabel, l.XLabel)
	assert.Equal(t, 30.5, l.YMin)
	assert.Equal(t, 100.0, l.YMax)
	require.Len(t, l.Bands, 4)
	assert.Equal(t, 30.5, l.Bands[3].Lo)
	assert.Equal(t, 4.0, l.XMax)
}

func TestLayoutPLDDTMultiChain(t *testing.T) {
	ids := make([]string, 0, 2600)
	for i := 0; i < 2500; i++ {
		ids = append(ids, "A")
	}
	ids = append(ids, "B", "B", "C")
	scores := make([]float64, len(ids))
	for i := range scores {
		scores[i] = 80
	}

	l := LayoutPLDDT(scores, ids)

	assert.Equal(t, plddtXLabelChains, l.XLabel)
	assert.Equal(t, []float64{2500.5, 2502.5}, l.Separators)

	var values []float64
	var labels []string
	for _, tick := range l.XTicks {
		values = append(values, tick.Value)
		labels = append(labels, tick.Label)
	}
	assert.Equal(t, []float64{0, 1, 1001, 2001, 2501, 2503, 2504}, values)
	assert.Equal(t, []string{"", "0", "1000", "2000", "0", "0", ""}, labels)
}

// assertTickSpan checks that the tick span, which go-chart uses as the axis
// range, matches the layout's intended range.
func assertTickSpan(t *testing.T, l PLDDTLayout) {
	t.Helper()
	require.NotEmpty(t, l.XTicks)
	require.NotEmpty(t, l.YTicks)
	assert.Equal(t, l.XMin, l.XTicks[0].Value)
	assert.Equal(t, l.XMax, l.XTicks[len(l.XTicks)-1].Value)
	assert.Equal(t, l.YMin, l.YTicks[0].Value)
	assert.Equal(t, l.YMax, l.YTicks[len(l.YTicks)-1].Value)
	for i := 1; i < len(l.XTicks); i++ {
		assert.Less(t, l.XTicks[i-1].Value, l.XTicks[i].Value)
	}
	for i := 1; i < len(l.YTicks); i++ {
		assert.Less(t, l.YTicks[i-1].Value, l.YTicks[i].Value)
	}
}

func TestLayoutPLDDTTicksSpanAxisRange(t *testing.T) {
	repeat := func(id string, n int) []string {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = id
		}
		return ids
	}
	scores := func(n int, low float64) []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = 85
		}
		s[n/2] = low
		return s
	}

	tests := []struct {
		name   string
		scores []float64
		chains []string
	}{
		{name: "one atom", scores: []float64{80}, chains: []string{"A"}},
		{name: "single chain", scores: scores(12345, 30.5), chains: repeat("A", 12345)},
		{name: "two chains", scores: scores(600, 62), chains: append(repeat("A", 300), repeat("B", 300)...)},
		{name: "low minimum score", scores: []float64{95, 12.25, 70}, chains: []string{"A", "B", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LayoutPLDDT(tt.scores, tt.chains)
			assertTickSpan(t, l)
			assert.Equal(t, float64(len(tt.scores)+1), l.XMax)
		})
	}
}

func TestPLDDTRendersSingleAtom(t *testing.T) {
	fs := afero.NewMemMapFs()
	n := Naming{Source: "/in/one_confidences.json", OutputDir: "/out", Glob: "*_confidences.json"}

	out, err := PLDDT(fs, []float64{80}, []string{"A"}, n)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "onePLDDT.png"), out)
}

func TestLayoutPLDDTHighScoresKeepFloorAtFifty(t *testing.T) {
	l := LayoutPLDDT([]float64{92, 97}, []string{"A", "A"})
	assert.Equal(t, 50.0, l.YMin)
	assert.Equal(t, l.Bands[3].Lo, l.Bands[3].Hi)
}

func TestLayoutPAE(t *testing.T) {
	single := LayoutPAE([][]float64{{0, 2}, {4, 1}}, []string{"A", "A"})
	assert.Empty(t, single.Boundaries)
	assert.Equal(t, 0.0, single.VMin)
	assert.Equal(t, 4.0, single.VMax)

	multi := LayoutPAE(make([][]float64, 6), []string{"A", "A", "B", "B", "C", "C"})
	assert.Equal(t, []int{2, 4}, multi.Boundaries)
}

func TestRenderPAEOrientationAndBoundaries(t *testing.T) {
	matrix := [][]float64{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{8, 8, 8, 8},
	}

	img := renderPAE(matrix, LayoutPAE(matrix, []string{"A", "A", "A", "A"}))
	bottomLeft := img.RGBAAt(paePlotLeft, paePlotTop+paePlotSize-1)
	topLeft := img.RGBAAt(paePlotLeft, paePlotTop)
	assert.Equal(t, cividis(0), bottomLeft, "row 0 is drawn at the bottom")
	assert.Equal(t, cividis(1), topLeft)
	assert.Equal(t, cividis(0), img.RGBAAt(paePlotLeft+paePlotSize/2, paePlotTop+paePlotSize-1))

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	chained := renderPAE(matrix, LayoutPAE(matrix, []string{"A", "A", "B", "B"}))
	assert.Equal(t, white, chained.RGBAAt(paePlotLeft+paePlotSize/2, paePlotTop+2))
	assert.Equal(t, white, chained.RGBAAt(paePlotLeft, paePlotTop+paePlotSize/2))
	assert.NotEqual(t, white, img.RGBAAt(paePlotLeft+paePlotSize/2, paePlotTop+2))
}

func TestCividisEndpoints(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0, G: 32, B: 81, A: 255}, cividis(0))
	assert.Equal(t, cividis(0), cividis(-3))
	assert.Equal(t, cividis(1), cividis(7))
	hi := cividis(1)
	assert.Greater(t, hi.R, uint8(240))
	assert.Greater(t, hi.G, uint8(220))
}

func TestNiceTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2, 3}, niceTicks(0, 3, 6, true))
	assert.Equal(t, []float64{0, 10, 20, 30}, niceTicks(0, 31.75, 6, false))
	assert.Equal(t, "0.5", tickLabel(0.5, 0.5))
	assert.Equal(t, "20", tickLabel(20, 5))
}

func TestPLDDTWritesPNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0o755))
	n := Naming{Source: "/in/m_confidences.json", OutputDir: "/out", Glob: "*_confidences.json"}

	out, err := PLDDT(fs, []float64{91, 75, 55, 20, 88}, []string{"A", "A", "B", "B", "B"}, n)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "mPLDDT.png"), out)

	data, err := afero.ReadFile(fs, out)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, plddtWidth, img.Bounds().Dx())
	assert.Equal(t, plddtHeight, img.Bounds().Dy())
}

func TestPAEWritesPNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	n := Naming{Source: "/in/m_confidences.json", OutputDir: "/out", Glob: "*_confidences.json"}

	out, err := PAE(fs, [][]float64{{0.2, 5}, {6, 0.3}}, []string{"A", "B"}, n)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "mPAE.png"), out)

	data, err := afero.ReadFile(fs, out)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, paeCanvas, img.Bounds().Dx())
}

func TestRenderingIsDeterministic(t *testing.T) {
	fs := afero.NewMemMapFs()
	scores := []float64{91, 75, 55, 20, 88, 64}
	chains := []string{"A", "A", "A", "B", "B", "B"}
	pae := [][]float64{{0, 1, 9}, {1, 0, 8}, {9, 8, 0}}
	tokens := []string{"A", "A", "B"}

	render := func(dir string) ([]byte, []byte) {
		n := Naming{Source: "x_confidences.json", OutputDir: dir, Glob: "*_confidences.json"}
		p1, err := PLDDT(fs, scores, chains, n)
		require.NoError(t, err)
		p2, err := PAE(fs, pae, tokens, n)
		require.NoError(t, err)
		b1, err := afero.ReadFile(fs, p1)
		require.NoError(t, err)
		b2, err := afero.ReadFile(fs, p2)
		require.NoError(t, err)
		return b1, b2
	}

	a1, a2 := render("/first")
	b1, b2 := render("/second")
	assert.True(t, bytes.Equal(a1, b1), "pLDDT output differs between runs")
	assert.True(t, bytes.Equal(a2, b2), "PAE output differs between runs")
}

func TestOutputDirectoryIsNotCreated(t *testing.T) {
	fs := afero.NewOsFs()
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	n := Naming{Source: "x_confidences.json", OutputDir: missing, Glob: "*_confidences.json"}

	_, err := PAE(fs, [][]float64{{1}}, []string{"A"}, n)
	require.Error(t, err)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPlotInputErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	n := Naming{Source: "x.json", OutputDir: "/out", Glob: "*.json"}

	_, err := PLDDT(fs, nil, nil, n)
	assert.Error(t, err)
	_, err = PLDDT(fs, []float64{1}, []string{"A", "B"}, n)
	assert.Error(t, err)
	_, err = PAE(fs, [][]float64{{1, 2}, {3}}, []string{"A", "B"}, n)
	assert.Error(t, err)
}
