package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	apperrors "truckbook/internal/errors"
	"truckbook/internal/service"
)

const maxLoginBody = 1 << 12

type AdminAuthHandler struct {
	service service.AdminAuthService
}

func NewAdminAuthHandler(svc service.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the operator's credentials for a bearer token used on the
// /admin routes.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBody)).Decode(&req); err != nil {
		apperrors.WriteHTTPError(w, apperrors.ErrBadRequest("Invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		apperrors.WriteHTTPError(w, apperrors.ErrBadRequest("Email and password are required"))
		return
	}

	logger := log.WithFields(log.Fields{"email": req.Email, "remote": r.RemoteAddr})
	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warn("Admin login rejected")
		} else {
			logger.WithError(err).Error("Admin login failed")
		}
		apperrors.WriteHTTPError(w, apperrors.ErrUnauthorized("Invalid credentials"))
		return
	}

	logger.Info("Admin logged in")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}
