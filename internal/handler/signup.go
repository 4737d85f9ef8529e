package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/connectrandom/internal/domain"
	"github.com/msomdec/connectrandom/internal/service"
)

// SignupHandler handles the two-step OTP signup flow.
type SignupHandler struct {
	signup *service.SignupService
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(signup *service.SignupService) *SignupHandler {
	return &SignupHandler{signup: signup}
}

type signupRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	City     string `json:"city"`
	Email    string `json:"email"`
}

// fields echoes the submitted values (minus the password) back to the
// client so the form can be re-rendered for correction.
func (req signupRequest) fields() map[string]string {
	return map[string]string{
		"username": req.Username,
		"fullName": req.FullName,
		"age":      req.Age,
		"gender":   req.Gender,
		"city":     req.City,
		"email":    req.Email,
	}
}

// HandleBegin validates the signup form, issues an OTP, and emails it.
// POST /api/signup
// Request:  {"username":"...","fullName":"...","password":"...","age":"20","gender":"...","city":"...","email":"..."}
// Response: 202 {"email":"..."} — the client advances to the verify step.
func (h *SignupHandler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	err := h.signup.Begin(r.Context(), service.SignupForm{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
		City:     req.City,
		Email:    req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAge), errors.Is(err, domain.ErrMissingField):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  err.Error(),
				"fields": req.fields(),
			})
		case errors.Is(err, domain.ErrTooManyRequests):
			writeError(w, http.StatusTooManyRequests, "Too many codes requested for this email. Wait a bit and try again.")
		case errors.Is(err, domain.ErrDeliveryFailed):
			slog.Error("send OTP email", "error", err)
			writeError(w, http.StatusBadGateway, "Failed to send OTP. Try again.")
		default:
			slog.Error("begin signup", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"email": req.Email})
}

// HandleVerify checks the submitted OTP and creates the account.
// POST /api/signup/verify
// Request:  {"email":"...","otp":"123456"}
// Response: 201 {"user": {...}}
func (h *SignupHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.signup.Complete(r.Context(), req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOtpNotFound):
			writeError(w, http.StatusNotFound, "No OTP found for this email. Start the signup again.")
		case errors.Is(err, domain.ErrOtpExpired):
			writeError(w, http.StatusGone, "OTP expired. Start the signup again.")
		case errors.Is(err, domain.ErrOtpMismatch):
			writeError(w, http.StatusUnprocessableEntity, "Invalid OTP.")
		case errors.Is(err, domain.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "Username already taken.")
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "Email already registered.")
		default:
			slog.Error("complete signup", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}
