package user

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/modules/auth"
	"github.com/taskhub/taskhub/pkg/binder"
	"github.com/taskhub/taskhub/pkg/validator"
)

// Handler exposes the user HTTP surface.
type Handler struct {
	svc       *Service
	tokens    *auth.Service
	transport auth.Transport
	guard     func(http.Handler) http.Handler
	errs      *core.ErrorHandler
}

// NewHandler creates the user handler. guard is the authorization middleware
// protecting identity-requiring routes.
func NewHandler(svc *Service, tokens *auth.Service, transport auth.Transport, guard func(http.Handler) http.Handler, errs *core.ErrorHandler) *Handler {
	return &Handler{
		svc:       svc,
		tokens:    tokens,
		transport: transport,
		guard:     guard,
		errs:      errs,
	}
}

// Handle returns the router for mounting under /users.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.guard)
		r.Post("/logout", h.logout)
		r.Get("/me", h.profile)
		r.Put("/me", h.updateProfile)
		r.Put("/me/password", h.changePassword)
	})

	return r
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse is deliberately narrower than the stored record: ids and
// timestamps other than createdAt stay server-side.
type registerResponse struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := binder.JSON(r, &req); err != nil {
		h.errs.Handle(w, r, core.BadRequest("Invalid request body"))
		return
	}
	if err := validator.Apply(
		validator.Required("name", req.Name),
		validator.ValidEmail("email", req.Email),
		validator.MinLen("password", req.Password, 6),
	); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, registerResponse{
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := binder.JSON(r, &req); err != nil {
		h.errs.Handle(w, r, core.BadRequest("Invalid request body"))
		return
	}
	if err := validator.Apply(
		validator.ValidEmail("email", req.Email),
		validator.Required("password", req.Password),
	); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.transport.Set(w, token)
	core.JSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.transport.Clear(w)
	core.Message(w, http.StatusOK, "Logout successful")
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		h.errs.Handle(w, r, core.ErrNoTokenProvided)
		return
	}
	u, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, u)
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		h.errs.Handle(w, r, core.ErrNoTokenProvided)
		return
	}

	var req updateProfileRequest
	if err := binder.JSON(r, &req); err != nil {
		h.errs.Handle(w, r, core.BadRequest("Invalid request body"))
		return
	}
	var rules []validator.Rule
	if req.Name != nil {
		rules = append(rules, validator.Required("name", *req.Name))
	}
	if req.Email != nil {
		rules = append(rules, validator.ValidEmail("email", *req.Email))
	}
	if err := validator.Apply(rules...); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID, ProfileUpdate{Name: req.Name, Email: req.Email})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, u)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		h.errs.Handle(w, r, core.ErrNoTokenProvided)
		return
	}

	var req changePasswordRequest
	if err := binder.JSON(r, &req); err != nil {
		h.errs.Handle(w, r, core.BadRequest("Invalid request body"))
		return
	}
	if err := validator.Apply(
		validator.Required("currentPassword", req.CurrentPassword),
		validator.MinLen("newPassword", req.NewPassword, 6),
	); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.Message(w, http.StatusOK, "Password changed successfully")
}
