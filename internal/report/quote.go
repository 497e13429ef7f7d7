package report

import (
	"github.com/shopspring/decimal"

	"github.com/contactkeval/vanilla-pricer/internal/pricing"
)

// Places is the number of decimal places kept in machine-readable output.
const Places = 4

// Quote is a rounded snapshot of a priced option.
type Quote struct {
	Label  string
	Params pricing.Params
	D1     decimal.Decimal
	D2     decimal.Decimal
	Call   *decimal.Decimal // nil when the call was not requested
	Put    *decimal.Decimal // nil when the put was not requested
}

// NewQuote prices p for each requested option type, both call and put when
// none are given.
func NewQuote(label string, p pricing.Pricer, types ...pricing.OptionType) (Quote, error) {
	if len(types) == 0 {
		types = []pricing.OptionType{pricing.Call, pricing.Put}
	}

	q := Quote{
		Label:  label,
		Params: p.Params(),
		D1:     decimal.NewFromFloat(p.D1()),
		D2:     decimal.NewFromFloat(p.D2()),
	}

	for _, t := range types {
		price, err := p.Price(t)
		if err != nil {
			return Quote{}, err
		}

		d := decimal.NewFromFloat(price)
		switch t {
		case pricing.Call:
			q.Call = &d
		case pricing.Put:
			q.Put = &d
		}
	}

	return q, nil
}

// Row is the flat, string-valued form of a Quote shared by the JSON, CSV and
// YAML renderers.
type Row struct {
	Label    string `json:"label" yaml:"label" csv:"label"`
	Strike   string `json:"strike" yaml:"strike" csv:"strike"`
	Rate     string `json:"rate" yaml:"rate" csv:"rate"`
	Maturity string `json:"maturity" yaml:"maturity" csv:"maturity"`
	Spot     string `json:"spot" yaml:"spot" csv:"spot"`
	Sigma    string `json:"sigma" yaml:"sigma" csv:"sigma"`
	D1       string `json:"d1" yaml:"d1" csv:"d1"`
	D2       string `json:"d2" yaml:"d2" csv:"d2"`
	Call     string `json:"call,omitempty" yaml:"call,omitempty" csv:"call"`
	Put      string `json:"put,omitempty" yaml:"put,omitempty" csv:"put"`
}

func (q Quote) Row() Row {
	fixed := func(v float64) string { return decimal.NewFromFloat(v).StringFixed(Places) }
	optional := func(d *decimal.Decimal) string {
		if d == nil {
			return ""
		}
		return d.StringFixed(Places)
	}

	return Row{
		Label:    q.Label,
		Strike:   fixed(q.Params.Strike),
		Rate:     fixed(q.Params.Rate),
		Maturity: fixed(q.Params.Maturity),
		Spot:     fixed(q.Params.Spot),
		Sigma:    fixed(q.Params.Sigma),
		D1:       q.D1.StringFixed(Places),
		D2:       q.D2.StringFixed(Places),
		Call:     optional(q.Call),
		Put:      optional(q.Put),
	}
}

func rows(quotes []Quote) []Row {
	out := make([]Row, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.Row())
	}
	return out
}
