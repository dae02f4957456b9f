package financing

import (
	"fmt"
	"math"

	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/internal/settings"
	"github.com/megamarcio/bhph-engine/pkg/mathutil"
)

// SuggestDownPayment derives the default down payment for a vehicle from the
// configured percentage of its purchase price, rounded to a whole currency
// unit. Pure; the same vehicle and settings always yield the same figure.
func SuggestDownPayment(v inventory.Vehicle, s settings.Settings) float64 {
	return mathutil.RoundWhole(mathutil.ApplyPercentage(v.PurchasePrice, s.DownPaymentPercentage))
}

// ResolveDownPayment applies an operator's proposed down payment according
// to their role. Both roles see the figure take effect immediately; a
// standard operator's figure is tagged as requiring sign-off before the
// resulting deal may be treated as binding. An invalid amount leaves the
// current proposal unchanged.
func ResolveDownPayment(role Role, proposed float64, current Proposal) (Proposal, error) {
	if !role.Valid() {
		return current, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if math.IsNaN(proposed) || math.IsInf(proposed, 0) || proposed < 0 {
		return current, fmt.Errorf("%w: proposed down payment %v", ErrInvalidAmount, proposed)
	}

	if role == RolePrivileged {
		return Proposal{Value: proposed, Origin: OriginOperatorOverride}, nil
	}
	return Proposal{Value: proposed, Origin: OriginProposedForApproval}, nil
}

// SuggestedProposal builds the proposal a freshly selected vehicle starts
// with.
func SuggestedProposal(v inventory.Vehicle, s settings.Settings) Proposal {
	return Proposal{Value: SuggestDownPayment(v, s), Origin: OriginSuggested}
}
