package ta

import "math"

// SMA returns the simple average of the last n values.
func SMA(values []float64, n int) float64 {
	if len(values) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(values) - n; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(n)
}

// EMASeries returns the exponential moving average series seeded with the SMA of the first n
// values. The result has len(values)-n+1 entries, aligned to the end of the input.
func EMASeries(values []float64, n int) []float64 {
	if len(values) < n || n <= 0 {
		return nil
	}
	k := 2.0 / float64(n+1)
	out := make([]float64, 0, len(values)-n+1)
	prev := SMA(values[:n], n)
	out = append(out, prev)
	for i := n; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out = append(out, prev)
	}
	return out
}

// EMA returns the last value of EMASeries.
func EMA(values []float64, n int) float64 {
	s := EMASeries(values, n)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// RSI is the Wilder-smoothed relative strength index of the last close.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		g, l := 0.0, 0.0
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
	}
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// MACD returns the macd line, signal line and histogram of the last close. ok is false when
// there is not enough data for the slow EMA. hasSignal is false when the signal EMA does not yet
// have enough macd values, in which case signal and histogram are zero.
func MACD(closes []float64, fast, slow, signal int) (macd, sig, hist float64, hasSignal, ok bool) {
	if fast <= 0 || slow <= fast || signal <= 0 || len(closes) < slow {
		return 0, 0, 0, false, false
	}
	fastS := EMASeries(closes, fast)
	slowS := EMASeries(closes, slow)
	// fastS starts at index fast-1 of closes, slowS at slow-1.
	offset := slow - fast
	line := make([]float64, len(slowS))
	for i := range slowS {
		line[i] = fastS[i+offset] - slowS[i]
	}
	macd = line[len(line)-1]
	sigS := EMASeries(line, signal)
	if len(sigS) == 0 {
		return macd, 0, 0, false, true
	}
	sig = sigS[len(sigS)-1]
	return macd, sig, macd - sig, true, true
}

// StdDev is the population standard deviation of the last n values.
func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n))
}

func Bollinger(closes []float64, n int, k float64) (mid, up, low float64) {
	mid = SMA(closes, n)
	sd := StdDev(closes, n)
	up = mid + k*sd
	low = mid - k*sd
	return
}

// ATR is the Wilder-smoothed average true range. The first bar's true range is high-low.
func ATR(highs, lows, closes []float64, period int) float64 {
	if len(highs) != len(lows) || len(lows) != len(closes) {
		return math.NaN()
	}
	if period <= 0 || len(closes) < period {
		return math.NaN()
	}
	trs := make([]float64, len(closes))
	for i := range closes {
		tr := highs[i] - lows[i]
		if i > 0 {
			tr = math.Max(tr, math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
		}
		trs[i] = tr
	}
	atr := SMA(trs[:period], period)
	for i := period; i < len(trs); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
	}
	return atr
}
