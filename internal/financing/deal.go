package financing

import (
	"fmt"
	"math"

	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/internal/settings"
	"github.com/megamarcio/bhph-engine/pkg/amortization"
	"github.com/megamarcio/bhph-engine/pkg/constants"
)

// Deal is a fully computed payment plan. Immutable once built; changing any
// input produces a new Deal. InterestRate is the monthly rate as a
// percentage, captured so the Deal reproduces exactly even if the
// dealership settings change afterwards.
type Deal struct {
	Vehicle          inventory.Vehicle `json:"vehicle"`
	DownPayment      float64           `json:"downPayment"`
	Installments     int               `json:"installments"`
	InstallmentValue float64           `json:"installmentValue"`
	InterestRate     float64           `json:"interestRate"`
}

// ClampInstallments normalizes an installment count to the product's
// supported term range. Out-of-range input is silently clamped rather than
// rejected, matching how the entry screens treat it.
func ClampInstallments(n int) int {
	if n < constants.MinInstallments {
		return constants.MinInstallments
	}
	if n > constants.MaxInstallments {
		return constants.MaxInstallments
	}
	return n
}

// BuildDeal composes a vehicle, a resolved down payment, and a term into a
// Deal. The down payment must be a real amount within [0, salePrice];
// anything else fails with ErrInvalidAmount so a negative principal can
// never reach the amortization math.
func BuildDeal(v inventory.Vehicle, downPayment float64, installments int, s settings.Settings) (Deal, error) {
	if math.IsNaN(downPayment) || math.IsInf(downPayment, 0) || downPayment < 0 {
		return Deal{}, fmt.Errorf("%w: down payment %v", ErrInvalidAmount, downPayment)
	}
	if downPayment > v.SalePrice {
		return Deal{}, fmt.Errorf("%w: down payment %.2f exceeds sale price %.2f",
			ErrInvalidAmount, downPayment, v.SalePrice)
	}

	term := ClampInstallments(installments)
	principal := v.SalePrice - downPayment

	return Deal{
		Vehicle:          v,
		DownPayment:      downPayment,
		Installments:     term,
		InstallmentValue: amortization.ComputeInstallment(principal, s.MonthlyRateFraction(), term),
		InterestRate:     s.MonthlyInterestRate,
	}, nil
}

// AmountFinanced is the principal carried by the dealership.
func (d Deal) AmountFinanced() float64 {
	return d.Vehicle.SalePrice - d.DownPayment
}

// TotalReceivable is everything the customer will pay over the life of the
// deal.
func (d Deal) TotalReceivable() float64 {
	return d.DownPayment + d.InstallmentValue*float64(d.Installments)
}

// GrossMargin is the dealership's margin on the vehicle itself, before
// financing income.
func (d Deal) GrossMargin() float64 {
	return d.Vehicle.SalePrice - d.Vehicle.PurchasePrice
}

// Schedule expands the deal into its month-by-month payment breakdown.
func (d Deal) Schedule() []amortization.Payment {
	gen := amortization.NewScheduleGenerator(nil)
	return gen.Generate(d.AmountFinanced(), d.InterestRate/constants.PercentageMultiplier, d.Installments)
}
