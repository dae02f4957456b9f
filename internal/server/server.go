// Package server exposes the financing engine over a small JSON API used by
// the back-office front end.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/megamarcio/bhph-engine/internal/financing"
	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/internal/quotes"
	"github.com/megamarcio/bhph-engine/internal/settings"
	"github.com/megamarcio/bhph-engine/pkg/amortization"
	"github.com/megamarcio/bhph-engine/pkg/output"
	"go.uber.org/zap"
)

// RoleHeader carries the operator role asserted by the authenticating
// front end. Authentication itself happens upstream; this service only
// enforces authority.
const RoleHeader = "X-Operator-Role"

type handler struct {
	logger   *zap.Logger
	settings *settings.Manager
	vehicles inventory.Repository
	quotes   quotes.Repository
	cache    quotes.Cache
	version  string
}

// NewHandler constructs the HTTP handler that serves the financing API.
func NewHandler(logger *zap.Logger, manager *settings.Manager, vehicles inventory.Repository,
	repo quotes.Repository, cache quotes.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:   logger,
		settings: manager,
		vehicles: vehicles,
		quotes:   repo,
		cache:    cache,
		version:  trimmedVersion,
	}

	mux := http.NewServeMux()

	// Simulation endpoint: computes a deal from a vehicle, role, and inputs
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Dealership settings, gated to privileged operators for writes
	mux.HandleFunc("/api/settings", h.handleSettings)

	// Finalization: releases a deal as binding and records the quote
	mux.HandleFunc("/api/finalize", h.handleFinalize)

	// Saved quotes
	mux.HandleFunc("/api/quotes", h.handleQuotes)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulateRequest struct {
	VehicleID    string   `json:"vehicleId"`
	Role         string   `json:"role"`
	DownPayment  *float64 `json:"downPayment,omitempty"`
	Installments int      `json:"installments"`
}

type simulateResponse struct {
	Deal      financing.Deal         `json:"deal"`
	Proposal  financing.Proposal     `json:"proposal"`
	Schedule  []amortization.Payment `json:"schedule"`
	Clipboard string                 `json:"clipboard"`
	CSV       string                 `json:"csv"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeSimulateRequest(w, r)
	if !ok {
		return
	}

	current := h.settings.Get()
	downPayment := "suggested"
	if req.DownPayment != nil {
		downPayment = fmt.Sprintf("%.2f", *req.DownPayment)
	}
	cacheKey := fmt.Sprintf("sim:%s:%s:%s:%d:%.4f:%.4f",
		req.VehicleID, req.Role, downPayment, req.Installments,
		current.DownPaymentPercentage, current.MonthlyInterestRate)
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(cached))
			return
		}
	}

	session, ok := h.runSimulation(w, req)
	if !ok {
		return
	}

	deal, err := session.Deal()
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := simulateResponse{
		Deal:      deal,
		Proposal:  session.Proposal(),
		Schedule:  deal.Schedule(),
		Clipboard: output.ClipboardText(deal),
		CSV:       output.CsvFormat(deal),
	}

	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to serialize response", http.StatusInternalServerError)
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(cacheKey, string(body)); err != nil {
			h.logger.Warn("failed to cache simulation response",
				zap.String("op", "server.handleSimulate"),
				zap.Error(err),
			)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (h *handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, h.settings.Get())

	case http.MethodPut, http.MethodPost:
		if role := financing.Role(r.Header.Get(RoleHeader)); role != financing.RolePrivileged {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		defer func() { _ = r.Body.Close() }()
		var next settings.Settings
		if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := h.settings.Update(next)
		if err != nil {
			if errors.Is(err, settings.ErrOutOfRange) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, updated)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeSimulateRequest(w, r)
	if !ok {
		return
	}

	session, ok := h.runSimulation(w, req)
	if !ok {
		return
	}

	approver := financing.Role(r.Header.Get(RoleHeader))
	if approver == "" {
		approver = financing.Role(req.Role)
	}

	deal, err := session.Finalize(approver)
	if err != nil {
		h.writeError(w, err)
		return
	}

	quote, err := h.quotes.Save(quotes.Quote{
		Deal:      deal,
		Origin:    session.Proposal().Origin,
		Finalized: true,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("quote finalized",
		zap.String("op", "server.handleFinalize"),
		zap.String("quote", quote.ID),
		zap.String("vehicle", deal.Vehicle.ID),
		zap.Float64("downPayment", deal.DownPayment),
	)
	h.writeJSON(w, quote)
}

func (h *handler) handleQuotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.quotes.List())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, map[string]string{"version": h.version})
}

func (h *handler) decodeSimulateRequest(w http.ResponseWriter, r *http.Request) (simulateRequest, bool) {
	defer func() { _ = r.Body.Close() }()

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	if req.Role == "" {
		req.Role = string(financing.RoleStandard)
	}
	return req, true
}

// runSimulation replays the requested inputs through a fresh session.
func (h *handler) runSimulation(w http.ResponseWriter, req simulateRequest) (*financing.Session, bool) {
	vehicle, found := h.vehicles.Get(req.VehicleID)
	if !found {
		http.Error(w, fmt.Sprintf("unknown vehicle %q", req.VehicleID), http.StatusNotFound)
		return nil, false
	}

	session := financing.NewSession(h.settings, h.logger)
	if _, err := session.SelectVehicle(vehicle); err != nil {
		h.writeError(w, err)
		return nil, false
	}
	if req.Installments != 0 {
		if _, err := session.SetInstallments(req.Installments); err != nil {
			h.writeError(w, err)
			return nil, false
		}
	}
	if req.DownPayment != nil {
		if _, err := session.ProposeDownPayment(financing.Role(req.Role), *req.DownPayment); err != nil {
			h.writeError(w, err)
			return nil, false
		}
	}
	return session, true
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, financing.ErrApprovalRequired):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, financing.ErrInvalidAmount),
		errors.Is(err, financing.ErrUnknownRole),
		errors.Is(err, financing.ErrNoVehicle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *handler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
