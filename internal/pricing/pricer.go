package pricing

import (
	"fmt"
	"math"
)

// Default market parameters: an at-the-money option struck at $100 with one
// year to maturity, 5% risk-free rate and 20% volatility.
const (
	DefaultStrike   = 100.0
	DefaultRate     = 0.05
	DefaultMaturity = 1.0
	DefaultSpot     = 100.0
	DefaultSigma    = 0.2
)

// Params holds the five Black-Scholes market parameters of a European vanilla option.
type Params struct {
	Strike   float64 `json:"strike" yaml:"strike"`     // K, strike price
	Rate     float64 `json:"rate" yaml:"rate"`         // r, continuously compounded risk-free rate
	Maturity float64 `json:"maturity" yaml:"maturity"` // T, time to maturity in years
	Spot     float64 `json:"spot" yaml:"spot"`         // S, current price of the underlying
	Sigma    float64 `json:"sigma" yaml:"sigma"`       // annualized volatility, as a decimal
}

// DefaultParams returns the parameters used when the caller specifies none.
func DefaultParams() Params {
	return Params{
		Strike:   DefaultStrike,
		Rate:     DefaultRate,
		Maturity: DefaultMaturity,
		Spot:     DefaultSpot,
		Sigma:    DefaultSigma,
	}
}

// Validate reports whether p lies in the domain of the Black-Scholes formula.
//
// Every parameter must be finite. Strike, spot, maturity and volatility must
// also be strictly positive: a non-positive strike or spot makes ln(S/K)
// undefined, and a zero maturity or volatility divides d1 by zero.
// The returned error wraps ErrInvalidParameter.
func (p Params) Validate() error {
	fields := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"strike", p.Strike, true},
		{"rate", p.Rate, false},
		{"maturity", p.Maturity, true},
		{"spot", p.Spot, true},
		{"sigma", p.Sigma, true},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be finite, got %v: %w", f.name, f.value, ErrInvalidParameter)
		}
		if f.positive && f.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v: %w", f.name, f.value, ErrInvalidParameter)
		}
	}

	return nil
}

// Pricer prices a European vanilla call and put under the Black-Scholes model.
//
// d1, d2 and the discounted strike are computed once by the constructor and
// shared by both price methods, so call and put always satisfy put-call parity
// up to floating point rounding. A Pricer is never mutated after construction
// and is safe for concurrent use.
type Pricer struct {
	params           Params
	d1               float64
	d2               float64
	discountedStrike float64
}

// New builds a Pricer from the strike K, risk-free rate r, maturity T in years,
// spot S and volatility sigma, in that order.
//
// It returns an error wrapping ErrInvalidParameter when the parameters are
// outside the domain of the formula (see Params.Validate).
func New(strike, rate, maturity, spot, sigma float64) (Pricer, error) {
	return NewFromParams(Params{
		Strike:   strike,
		Rate:     rate,
		Maturity: maturity,
		Spot:     spot,
		Sigma:    sigma,
	})
}

// NewFromParams is New taking a Params value.
func NewFromParams(p Params) (Pricer, error) {
	if err := p.Validate(); err != nil {
		return Pricer{}, err
	}

	pr := newPricer(p)

	// finite inputs can still overflow, e.g. rate*maturity beyond the float64 range
	for _, v := range []float64{pr.d1, pr.d2, pr.discountedStrike} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Pricer{}, fmt.Errorf("parameters %+v overflow the pricing formula: %w", p, ErrInvalidParameter)
		}
	}

	return pr, nil
}

// Default returns the Pricer for DefaultParams.
func Default() Pricer {
	return newPricer(DefaultParams())
}

func newPricer(p Params) Pricer {
	sigmaSqrtT := p.Sigma * math.Sqrt(p.Maturity)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Sigma*p.Sigma)*p.Maturity) / sigmaSqrtT

	return Pricer{
		params:           p,
		d1:               d1,
		d2:               d1 - sigmaSqrtT,
		discountedStrike: p.Strike * math.Exp(-p.Rate*p.Maturity),
	}
}

// CallPrice returns S·N(d1) − K·e^(−rT)·N(d2).
func (p Pricer) CallPrice() float64 {
	return p.params.Spot*NormCDF(p.d1) - p.discountedStrike*NormCDF(p.d2)
}

// PutPrice returns K·e^(−rT)·N(−d2) − S·N(−d1).
func (p Pricer) PutPrice() float64 {
	return p.discountedStrike*NormCDF(-p.d2) - p.params.Spot*NormCDF(-p.d1)
}

// Price returns the premium of the given option type.
func (p Pricer) Price(optionType OptionType) (float64, error) {
	switch optionType {
	case Call:
		return p.CallPrice(), nil
	case Put:
		return p.PutPrice(), nil
	}
	return 0, optionType.Validate()
}

func (p Pricer) Params() Params { return p.params }

// D1 is the standardized distance of spot from strike after drift and volatility.
func (p Pricer) D1() float64 { return p.d1 }

// D2 is D1 less sigma·√T.
func (p Pricer) D2() float64 { return p.d2 }

// DiscountedStrike is K·e^(−rT), the present value of the strike.
func (p Pricer) DiscountedStrike() float64 { return p.discountedStrike }
