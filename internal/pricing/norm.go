package pricing

import "gonum.org/v1/gonum/stat/distuv"

// NormCDF computes the cumulative distribution function of the standard normal
// distribution at x. It is erfc based and accurate in both tails.
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
