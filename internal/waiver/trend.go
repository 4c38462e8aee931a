package waiver

// trendPoint is one (week, value) observation for the trend regression.
type trendPoint struct {
	Week  int
	Value float64
}

// olsSlope fits y = a + b*week by ordinary least squares and returns b.
// Returns nil with fewer than two points or when all weeks coincide.
func olsSlope(points []trendPoint) *float64 {
	n := float64(len(points))
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := float64(p.Week)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return &slope
}
