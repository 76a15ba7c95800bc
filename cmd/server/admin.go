package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/worktop/internal/pricing"
	"github.com/Simplici0/worktop/internal/worktop"
)

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	valid, err := s.auth.validateCredentials(r.Context(), email, req.Password)
	if err != nil {
		s.fail(w, r, "handleLogin", err)
		return
	}
	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	s.auth.setSessionCookie(w, email)
	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleAdminFees(w http.ResponseWriter, r *http.Request) {
	fees, err := s.store.FeeSchedule(r.Context())
	if err != nil {
		s.fail(w, r, "handleAdminFees", err)
		return
	}
	writeJSON(w, http.StatusOK, fees)
}

// handleAdminFeesUpdate replaces the whole schedule. Each fee is
// {"gross": ..., "net": ...}; either may be null.
func (s *server) handleAdminFeesUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
		return
	}

	var fees worktop.FeeSchedule
	if err := json.Unmarshal(body, &fees); err != nil {
		s.fail(w, r, "handleAdminFeesUpdate", &requestError{Message: "invalid JSON body: " + err.Error()})
		return
	}
	if err := pricing.CheckFees(fees); err != nil {
		s.fail(w, r, "handleAdminFeesUpdate", err)
		return
	}

	if err := s.store.UpdateFeeSchedule(r.Context(), fees); err != nil {
		s.fail(w, r, "handleAdminFeesUpdate", err)
		return
	}
	writeJSON(w, http.StatusOK, fees)
}

func (s *server) handleAdminMaterialsCreate(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if !s.decode(w, r, &req) {
		return
	}

	created, err := s.store.CreateMaterial(r.Context(), req.toDomain(0))
	if err != nil {
		s.fail(w, r, "handleAdminMaterialsCreate", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleAdminMaterialsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid material id"})
		return
	}

	var req materialRequest
	if !s.decode(w, r, &req) {
		return
	}

	m := req.toDomain(id)
	if err := s.store.UpdateMaterial(r.Context(), m); err != nil {
		s.fail(w, r, "handleAdminMaterialsUpdate", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
