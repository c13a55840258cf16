package calculator

// RSIWindow is how many trailing closes feed CalculateRSI.
const RSIWindow = 15

// minRSICloses is the fewest closes CalculateRSI will score.
const minRSICloses = 14

// CalculateRSI computes a simple-average RSI over every consecutive pair of closes.
// Callers pass at most the last RSIWindow closes. Returns 50 if data is insufficient.
func CalculateRSI(closes []float64) float64 {
	if len(closes) < minRSICloses {
		return 50.0 // neutral when data insufficient
	}

	var gains, losses float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change // make positive
		}
	}

	intervals := float64(len(closes) - 1)
	avgGain := gains / intervals
	avgLoss := losses / intervals

	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// LastN returns the trailing n values of prices, or all of them when there are fewer.
func LastN(prices []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(prices) <= n {
		return prices
	}
	return prices[len(prices)-n:]
}
