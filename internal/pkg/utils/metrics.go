package utils

import "math"

// Rate returns part/total as a percentage rounded to one decimal, 0 when total is 0.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(part) / float64(total) * 100)
}

// Percent is Rate for fractional quantities such as days or hours.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round1(part / total * 100)
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Mean returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	acc := 0.0
	for _, v := range values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(len(values)))
}

// LinearRegression fits y = intercept + slope*x by ordinary least squares with x = 0..n-1.
func LinearRegression(ys []float64) (slope, intercept float64) {
	if len(ys) == 0 {
		return 0, 0
	}
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
