// Package api implements HTTP handlers and helpers for the pick-route service.
package api

import (
	"net/http"
	"strings"
)

type Principal struct {
	Tenant   string
	Role     string // admin, dispatcher, picker
	PickerID string
}

// getPrincipal extracts tenant and role from JWT or headers.
// - If Authorization: Bearer is present, uses configured verifier (dev/hmac).
// - Else falls back to headers for dev.
func (s *Server) getPrincipal(r *http.Request) Principal {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") && s.Auth != nil {
		tok := strings.TrimSpace(authz[len("Bearer "):])
		if pr, err := s.Auth.Verify(tok); err == nil {
			return Principal{Tenant: pr.Tenant, Role: pr.Role, PickerID: pr.PickerID}
		}
	}
	tenant := r.Header.Get("X-Tenant-Id")
	role := r.Header.Get("X-Role")
	pickerID := r.Header.Get("X-Picker-Id")
	if tenant == "" {
		tenant = "t_demo"
	}
	if role == "" {
		role = "admin"
	}
	return Principal{Tenant: tenant, Role: role, PickerID: pickerID}
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool { return p.Role == "admin" }

// CanDispatch reports whether the principal may run optimizations.
func (p Principal) CanDispatch() bool { return p.Role == "admin" || p.Role == "dispatcher" }
