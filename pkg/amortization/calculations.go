// Package amortization provides fixed-payment loan computation utilities.
package amortization

import (
	"fmt"
	"math"

	"github.com/megamarcio/bhph-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given payment.
type Payment struct {
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// ComputeInstallment calculates the fixed monthly installment for a financed
// principal using the standard annuity formula. monthlyRate is a fraction
// (0.03 for 3%). The result is rounded to the nearest whole currency unit;
// installments are quoted without cents and the rounded figure is the one
// the customer pays, so it must reproduce exactly from the same inputs.
func ComputeInstallment(principal, monthlyRate float64, termMonths int) float64 {
	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return mathutil.RoundWhole(principal / float64(termMonths))
	}

	factor := math.Pow(1.00+monthlyRate, float64(termMonths))
	return mathutil.RoundWhole(principal * (monthlyRate * factor) / (factor - 1.00))
}

// InterestPortion calculates the interest portion of a payment against the
// remaining principal.
func InterestPortion(remainingPrincipal, monthlyRate float64) float64 {
	return remainingPrincipal * monthlyRate
}

// ScheduleGenerator provides utilities for generating amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the month-by-month payment breakdown for a financed
// principal. The final payment absorbs rounding drift so the schedule
// always amortizes to exactly zero.
func (g *ScheduleGenerator) Generate(principal, monthlyRate float64, termMonths int) []Payment {
	if termMonths < 1 || principal <= 0 {
		return nil
	}

	installment := ComputeInstallment(principal, monthlyRate, termMonths)
	schedule := make([]Payment, 0, termMonths)

	remaining := principal
	for month := 1; month <= termMonths; month++ {
		var current Payment
		current.Interest = mathutil.Round(InterestPortion(remaining, monthlyRate))
		current.Principal = mathutil.Round(installment - current.Interest)
		current.Payment = installment

		if month == termMonths {
			// Absorb the rounding drift accumulated over the term.
			current.Principal = mathutil.Round(remaining)
			current.Payment = mathutil.Round(current.Principal + current.Interest)
			current.RemainingPrincipal = 0.00
		} else {
			current.RemainingPrincipal = mathutil.Round(remaining - current.Principal)
		}

		g.logger.Debug(fmt.Sprintf("month %d: payment %.2f with %.2f interest, %.2f remaining",
			month, current.Payment, current.Interest, current.RemainingPrincipal),
			zap.String("op", "amortization.Generate"),
		)

		schedule = append(schedule, current)
		remaining = current.RemainingPrincipal
	}

	return schedule
}
