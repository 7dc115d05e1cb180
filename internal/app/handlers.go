package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aph138/residence/internal/entity"
	"github.com/aph138/residence/internal/service"
	"github.com/aph138/residence/pkg/otp"
)

//	@Title			residence booking API
//	@Version		0.1
//	@Description	Rooms, booking requests and email verification codes
//
// @Host		localhost:3000
// @BasePath	/
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type RoomsResponse struct {
	Success bool          `json:"success"`
	Data    []entity.Room `json:"data"`
	Cached  bool          `json:"cached"`
}

type BookingResponse struct {
	Success bool                `json:"success"`
	Booking *entity.BookingView `json:"booking"`
	Message string              `json:"message"`
}

type BookingsResponse struct {
	Success  bool                  `json:"success"`
	Bookings []*entity.BookingView `json:"bookings"`
}

type AccessResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
}

type OTPRequest struct {
	Email string `json:"email,omitempty" example:"guest@example.com"`
	Phone string `json:"phone,omitempty" example:"0501234567"`
}

type VerifyOTPRequest struct {
	Email string `json:"email,omitempty" example:"guest@example.com"`
	Phone string `json:"phone,omitempty" example:"0501234567"`
	OTP   string `json:"otp" example:"123456"`
}

type AccessRequest struct {
	Email string `json:"email" example:"guest@example.com"`
}

type AccessTokenRequest struct {
	Email string `json:"email" example:"guest@example.com"`
	Token string `json:"token" example:"123456"`
}

func message(success bool, msg string) Response {
	return Response{Success: success, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decode reads a json body; strict rejects unknown fields.
func (a *Application) decode(w http.ResponseWriter, r *http.Request, v any, strict bool) bool {
	reqDecoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if strict {
		reqDecoder.DisallowUnknownFields()
	}
	if err := reqDecoder.Decode(v); err != nil {
		a.logger.Warn(fmt.Sprintf("err when decoding body at %s: %s", r.URL.Path, err.Error()))
		writeJSON(w, http.StatusBadRequest, message(false, "Invalid request body"))
		return false
	}
	return true
}

// @Summary		Send booking OTP
// @Description	Generates a 6 digits code valid for 5 minutes. The phone is used as key when both are given; the code is emailed when an email is given.
// @Tags			otp
// @Accept			json
// @Produce		json
// @Param			request	body		OTPRequest	true	"email and/or phone"
// @Success		200		{object}	Response
// @Failure		400		{object}	Response
// @Router			/api/send-otp [post]
func (a *Application) SendOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req OTPRequest
	if !a.decode(w, r, &req, true) {
		return
	}
	err := a.verification.SendOTP(r.Context(), req.Email, req.Phone)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, message(false, "Email or phone required"))
	case err != nil:
		a.logger.Error(fmt.Sprintf("err when sending otp: %s", err.Error()))
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to send OTP"))
	default:
		writeJSON(w, http.StatusOK, message(true, "OTP sent successfully"))
	}
}

// @Summary		Verify booking OTP
// @Tags			otp
// @Accept			json
// @Produce		json
// @Param			request	body		VerifyOTPRequest	true	"same email/phone as send-otp and the code"
// @Success		200		{object}	Response
// @Router			/api/verify-otp [post]
func (a *Application) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !a.decode(w, r, &req, true) {
		return
	}
	outcome, err := a.verification.VerifyOTP(r.Context(), req.Email, req.Phone, req.OTP)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, message(false, "Email or phone required"))
	case err != nil:
		a.logger.Error(fmt.Sprintf("err when verifying otp: %s", err.Error()))
		writeJSON(w, http.StatusInternalServerError, message(false, "OTP verification failed"))
	case outcome != otp.Verified:
		writeJSON(w, http.StatusOK, message(false, service.Reason(outcome)))
	default:
		writeJSON(w, http.StatusOK, message(true, "OTP verified successfully"))
	}
}

// @Summary		Request booking access code
// @Description	Emails a code that unlocks looking bookings up by email.
// @Tags			bookings
// @Accept			json
// @Produce		json
// @Param			request	body		AccessRequest	true	"guest email"
// @Success		200		{object}	Response
// @Failure		400		{object}	Response
// @Failure		500		{object}	Response
// @Router			/api/verify-booking-access [post]
func (a *Application) BookingAccessHandler(w http.ResponseWriter, r *http.Request) {
	var req AccessRequest
	if !a.decode(w, r, &req, true) {
		return
	}
	err := a.verification.RequestAccess(r.Context(), req.Email)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, message(false, "Email is required"))
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to send verification code"))
	default:
		writeJSON(w, http.StatusOK, message(true, "Verification email sent"))
	}
}

// @Summary		Confirm booking access code
// @Description	On success returns an access_token to use as Bearer token on GET /api/bookings.
// @Tags			bookings
// @Accept			json
// @Produce		json
// @Param			request	body		AccessTokenRequest	true	"guest email and emailed code"
// @Success		200		{object}	AccessResponse
// @Router			/api/verify-booking-token [post]
func (a *Application) BookingTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req AccessTokenRequest
	if !a.decode(w, r, &req, true) {
		return
	}
	outcome, err := a.verification.ConfirmAccess(r.Context(), req.Email, req.Token)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, message(false, "Email is required"))
		return
	case err != nil:
		a.logger.Error(fmt.Sprintf("err when verifying access token: %s", err.Error()))
		writeJSON(w, http.StatusInternalServerError, message(false, "Token verification failed"))
		return
	case outcome != otp.Verified:
		writeJSON(w, http.StatusOK, AccessResponse{Success: false, Message: service.Reason(outcome)})
		return
	}

	grant, err := a.jwt.NewToken(strings.ToLower(strings.TrimSpace(req.Email)), bookingsScope, a.accessTTL)
	if err != nil {
		a.logger.Error(fmt.Sprintf("err when generating access grant: %s", err.Error()))
		writeJSON(w, http.StatusInternalServerError, message(false, "Token verification failed"))
		return
	}
	writeJSON(w, http.StatusOK, AccessResponse{Success: true, Message: "Token verified", AccessToken: grant})
}

// @Summary		List available rooms
// @Description	Rooms marked available, cheapest first. cached tells whether the list came from the 5 minutes cache.
// @Tags			rooms
// @Produce		json
// @Success		200	{object}	RoomsResponse
// @Failure		500	{object}	Response
// @Router			/api/rooms [get]
func (a *Application) RoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, cached, err := a.bookings.Rooms(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to load rooms"))
		return
	}
	writeJSON(w, http.StatusOK, RoomsResponse{Success: true, Data: rooms, Cached: cached})
}

// @Summary		Submit a booking request
// @Tags			bookings
// @Accept			json
// @Produce		json
// @Param			request	body		service.BookingRequest	true	"booking request"
// @Success		200		{object}	BookingResponse
// @Failure		400		{object}	Response
// @Failure		500		{object}	Response
// @Router			/api/bookings [post]
func (a *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if !a.decode(w, r, &req, false) {
		return
	}
	booking, err := a.bookings.Submit(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrInvalidDateRange):
		writeJSON(w, http.StatusBadRequest, message(false, "Checkout date must be after checkin date"))
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, message(false, err.Error()))
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to create booking request"))
	default:
		writeJSON(w, http.StatusOK, BookingResponse{
			Success: true,
			Booking: booking,
			Message: "Booking request submitted successfully. Please check your email for confirmation.",
		})
	}
}

// @Summary		Find a booking by id
// @Description	The booking id works as the credential, no access code is needed.
// @Tags			bookings
// @Produce		json
// @Param			id	path		string	true	"booking id"
// @Success		200	{object}	BookingResponse
// @Failure		404	{object}	Response
// @Router			/api/bookings/{id} [get]
func (a *Application) BookingByIDHandler(w http.ResponseWriter, r *http.Request) {
	booking, err := a.bookings.ByID(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusNotFound, message(false, "No booking found"))
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to load booking"))
	default:
		writeJSON(w, http.StatusOK, BookingResponse{Success: true, Booking: booking, Message: "Booking found"})
	}
}

// @Summary		Find bookings by email
// @Description	Requires the access_token returned by /api/verify-booking-token for the same email.
// @Tags			bookings
// @Produce		json
// @Param			email			query		string	false	"guest email, defaults to the verified one"
// @Param			Authorization	header		string	true	"Bearer access token"
// @Success		200				{object}	BookingsResponse
// @Failure		401				{object}	Response
// @Failure		404				{object}	Response
// @Router			/api/bookings [get]
func (a *Application) BookingsByEmailHandler(w http.ResponseWriter, r *http.Request) {
	verified := accessEmail(r.Context())
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		email = verified
	}
	if email != verified {
		writeJSON(w, http.StatusUnauthorized, message(false, "Verification required"))
		return
	}
	bookings, err := a.bookings.ByEmail(r.Context(), email)
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, message(false, "No booking found"))
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to load bookings"))
	default:
		writeJSON(w, http.StatusOK, BookingsResponse{Success: true, Bookings: bookings})
	}
}

// @Summary		Send a contact message
// @Tags			contact
// @Accept			json
// @Produce		json
// @Param			request	body		service.ContactRequest	true	"contact form"
// @Success		200		{object}	Response
// @Failure		400		{object}	Response
// @Failure		500		{object}	Response
// @Router			/api/contact [post]
func (a *Application) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if !a.decode(w, r, &req, true) {
		return
	}
	err := a.contact.Submit(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, message(false, "All fields are required"))
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, message(false, "Failed to send message"))
	default:
		writeJSON(w, http.StatusOK, message(true, "Message sent successfully"))
	}
}

func (a *Application) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
}

func (a *Application) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, message(false, "Endpoint not found"))
}
