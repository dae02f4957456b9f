// Package financing implements the BHPH deal computation core: the down
// payment policy, the deal builder, and the live simulation session that
// ties a vehicle, an operator, and the dealership settings together.
package financing

import "errors"

// Role identifies the authority of the operator driving a simulation.
type Role string

const (
	// RolePrivileged operators set terms directly.
	RolePrivileged Role = "privileged"

	// RoleStandard operators may only propose a down payment for later
	// sign-off.
	RoleStandard Role = "standard"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePrivileged || r == RoleStandard
}

// Origin records how the active down payment figure came to be.
type Origin string

const (
	// OriginSuggested means the figure is the policy suggestion for the
	// selected vehicle, untouched by any operator.
	OriginSuggested Origin = "suggested"

	// OriginOperatorOverride means a privileged operator set the figure
	// directly.
	OriginOperatorOverride Origin = "operatorOverride"

	// OriginProposedForApproval means a standard operator set the figure;
	// it drives the simulation immediately but requires privileged
	// sign-off before the deal may be treated as binding.
	OriginProposedForApproval Origin = "proposedForApproval"
)

// Proposal is the down payment figure active in a simulation session,
// together with its provenance. Transient; never persisted.
type Proposal struct {
	Value  float64 `json:"value"`
	Origin Origin  `json:"origin"`
}

// Errors returned by the financing core. All are local and recoverable: a
// failed operation leaves the last valid state in place.
var (
	// ErrInvalidAmount indicates a non-numeric, negative, or
	// greater-than-sale-price amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrApprovalRequired indicates an attempt to finalize a deal whose
	// down payment still awaits privileged sign-off.
	ErrApprovalRequired = errors.New("down payment requires approval")

	// ErrNoVehicle indicates a session operation that needs a selected
	// vehicle.
	ErrNoVehicle = errors.New("no vehicle selected")

	// ErrUnknownRole indicates an unrecognized operator role.
	ErrUnknownRole = errors.New("unknown role")
)
