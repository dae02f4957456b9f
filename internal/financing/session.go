package financing

import (
	"fmt"
	"sync"

	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/internal/settings"
	"github.com/megamarcio/bhph-engine/pkg/constants"
	"go.uber.org/zap"
)

// SettingsSource supplies the dealership settings a session computes with.
// *settings.Manager satisfies it.
type SettingsSource interface {
	Get() settings.Settings
}

// Session is one live financing simulation: a selected vehicle, the active
// down payment proposal, and a term. Every mutation recomputes the Deal
// from the latest inputs under the session lock, so a caller always reads a
// Deal derived from the most recently resolved down payment and term.
//
// There is no terminal state; the simulation stays live and disposable.
// Finalize is the explicit gate for treating the current Deal as binding.
type Session struct {
	mu       sync.Mutex
	source   SettingsSource
	logger   *zap.Logger
	vehicle  *inventory.Vehicle
	proposal Proposal
	term     int
	deal     Deal
}

// NewSession creates an empty simulation session. No vehicle is selected
// yet; operations other than SelectVehicle fail with ErrNoVehicle.
func NewSession(source SettingsSource, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		source: source,
		logger: logger,
		term:   constants.MaxInstallments,
	}
}

// SelectVehicle makes the vehicle the subject of the simulation and resets
// the down payment to the policy suggestion, discarding any prior override
// or pending proposal.
func (s *Session) SelectVehicle(v inventory.Vehicle) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.source.Get()
	s.vehicle = &v
	s.proposal = SuggestedProposal(v, current)

	s.logger.Debug(fmt.Sprintf("selected vehicle %s with suggested down payment %.2f", v.ID, s.proposal.Value),
		zap.String("op", "financing.Session.SelectVehicle"),
	)

	deal, err := s.recompute(current)
	if err != nil {
		// The suggestion can exceed the sale price when a vehicle is listed
		// below cost; start the session from a zero down payment instead.
		s.proposal = Proposal{Value: 0, Origin: OriginSuggested}
		return s.recompute(current)
	}
	return deal, nil
}

// ProposeDownPayment applies an operator's down payment figure to the
// simulation according to their role. On a validation failure the prior
// proposal and Deal stay in place.
func (s *Session) ProposeDownPayment(role Role, value float64) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vehicle == nil {
		return Deal{}, ErrNoVehicle
	}

	next, err := ResolveDownPayment(role, value, s.proposal)
	if err != nil {
		return s.deal, err
	}

	current := s.source.Get()
	prior := s.proposal
	s.proposal = next

	deal, err := s.recompute(current)
	if err != nil {
		s.proposal = prior
		return s.deal, err
	}

	s.logger.Debug(fmt.Sprintf("down payment %.2f applied with origin %s", next.Value, next.Origin),
		zap.String("op", "financing.Session.ProposeDownPayment"),
	)
	return deal, nil
}

// SetInstallments changes the term. Out-of-range values are clamped, not
// rejected; the down payment state is untouched.
func (s *Session) SetInstallments(n int) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vehicle == nil {
		return Deal{}, ErrNoVehicle
	}

	s.term = ClampInstallments(n)
	return s.recompute(s.source.Get())
}

// Deal returns the most recently computed Deal.
func (s *Session) Deal() (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vehicle == nil {
		return Deal{}, ErrNoVehicle
	}
	return s.deal, nil
}

// Proposal returns the active down payment proposal.
func (s *Session) Proposal() Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposal
}

// Finalize releases the current Deal for binding use (export, contract). A
// deal whose down payment is still proposedForApproval needs a privileged
// approver; their sign-off is recorded by flipping the origin to
// operatorOverride. Standard operators cannot release their own proposals.
func (s *Session) Finalize(approver Role) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vehicle == nil {
		return Deal{}, ErrNoVehicle
	}
	if !approver.Valid() {
		return Deal{}, fmt.Errorf("%w: %q", ErrUnknownRole, approver)
	}

	if s.proposal.Origin == OriginProposedForApproval {
		if approver != RolePrivileged {
			return Deal{}, fmt.Errorf("%w: down payment %.2f", ErrApprovalRequired, s.proposal.Value)
		}
		s.proposal.Origin = OriginOperatorOverride
		s.logger.Info(fmt.Sprintf("down payment %.2f approved", s.proposal.Value),
			zap.String("op", "financing.Session.Finalize"),
		)
	}

	return s.deal, nil
}

// recompute rebuilds the Deal from the current inputs. Caller holds the
// lock.
func (s *Session) recompute(current settings.Settings) (Deal, error) {
	deal, err := BuildDeal(*s.vehicle, s.proposal.Value, s.term, current)
	if err != nil {
		return s.deal, err
	}
	s.deal = deal
	return deal, nil
}
