// Package deal computes the plain arithmetic of a fixed-term, fixed-rate
// dual-investment offer: accrued interest, breakeven price and the net
// gain once the forecast purchase loss is accounted for.
package deal

import (
	"fmt"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// Params describes a proposed deal. All numeric fields must be strictly
// positive and the symbol at least three characters.
type Params struct {
	Amount     float64 // invested amount
	AnnualRate float64 // annual percentage yield, e.g. 57 for 57%
	TermDays   int
	DealPrice  float64 // negotiated execution price
	Symbol     string
}

// Validate rejects parameters before any computation, naming the field
// and constraint that failed.
func (p Params) Validate() error {
	switch {
	case p.Amount <= 0:
		return core.WrapError(core.ErrInvalidInput, fmt.Errorf("amount must be positive, got %v", p.Amount))
	case p.AnnualRate <= 0:
		return core.WrapError(core.ErrInvalidInput, fmt.Errorf("annual rate must be positive, got %v", p.AnnualRate))
	case p.TermDays <= 0:
		return core.WrapError(core.ErrInvalidInput, fmt.Errorf("term days must be positive, got %d", p.TermDays))
	case p.DealPrice <= 0:
		return core.WrapError(core.ErrInvalidInput, fmt.Errorf("deal price must be positive, got %v", p.DealPrice))
	case len(p.Symbol) < 3:
		return core.WrapError(core.ErrInvalidInput, fmt.Errorf("symbol must be at least 3 characters, got %q", p.Symbol))
	}
	return nil
}

// NetGain is the derived outcome of a deal at a predicted price.
type NetGain struct {
	RateForTerm    float64 // annual rate scaled to the term
	Interest       float64 // amount * rate for term
	BreakevenPrice float64
	PredictedPrice float64
	PurchaseLoss   float64 // capital at risk if the deal executes below forecast
	NetGain        float64 // interest - purchase loss
}

// Evaluate computes the deal outcome against the forecaster's base-case
// predicted price. When the prediction stays above the deal price the
// purchase is presumed not to execute and the loss is zero.
func Evaluate(p Params, predictedPrice float64) NetGain {
	rate := p.AnnualRate / 100 * float64(p.TermDays) / 365
	interest := p.Amount * rate

	var purchaseLoss float64
	if predictedPrice <= p.DealPrice {
		purchaseLoss = p.Amount * (1 - predictedPrice/p.DealPrice)
	}

	return NetGain{
		RateForTerm:    rate,
		Interest:       interest,
		BreakevenPrice: p.DealPrice * (1 - rate),
		PredictedPrice: predictedPrice,
		PurchaseLoss:   purchaseLoss,
		NetGain:        interest - purchaseLoss,
	}
}
