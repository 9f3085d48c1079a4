package plot

import (
	"math"
	"strconv"
)

// niceStep picks a 1/2/5 x 10^k step that splits span into roughly target intervals.
func niceStep(span float64, target int) float64 {
	if span <= 0 || target < 1 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// niceTicks returns the multiples of a nice step that fall inside [min, max].
func niceTicks(min, max float64, target int, integer bool) []float64 {
	step := niceStep(max-min, target)
	if integer && step < 1 {
		step = 1
	}
	start := math.Ceil(min/step) * step
	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > max+step*1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

// tickLabel formats v with no more decimals than step needs.
func tickLabel(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// stepOf returns the spacing of an evenly spaced tick slice.
func stepOf(ticks []float64) float64 {
	if len(ticks) < 2 {
		return 1
	}
	return ticks[1] - ticks[0]
}
