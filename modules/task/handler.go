package task

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/modules/auth"
	"github.com/taskhub/taskhub/pkg/binder"
	"github.com/taskhub/taskhub/pkg/validator"
)

// Handler exposes the task HTTP surface. Every route sits behind the
// authorization guard.
type Handler struct {
	svc   *Service
	guard func(http.Handler) http.Handler
	errs  *core.ErrorHandler
}

// NewHandler creates the task handler.
func NewHandler(svc *Service, guard func(http.Handler) http.Handler, errs *core.ErrorHandler) *Handler {
	return &Handler{svc: svc, guard: guard, errs: errs}
}

// Handle returns the router for mounting under /tasks.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(h.guard)

	r.Post("/", h.create)
	r.Get("/", h.list)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.requireUUIDParam)
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
	})

	return r
}

// requireUUIDParam rejects malformed path ids before any handler logic or
// store access runs.
func (h *Handler) requireUUIDParam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rule := validator.ValidUUID("id", chi.URLParam(r, "id")); !rule.Check() {
			h.errs.Handle(w, r, core.BadRequest("Invalid UUID format for 'id'"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		h.errs.Handle(w, r, core.ErrNoTokenProvided)
	}
	return userID, ok
}

type createRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := binder.JSON(r, &req); err != nil {
		h.errs.Handle(w, r, core.BadRequest("Invalid request body"))
		return
	}
	rules := []validator.Rule{
		validator.MinLen("title", req.Title, 3),
		validator.MaxLen("title", req.Title, 100),
	}
	if req.Description != nil {
		rules = append(rules, validator.MaxLen("description", *req.Description, 500))
	}
	if err := validator.Apply(rules...); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	t, err := h.svc.Create(r.Context(), callerID, req.Title, description)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, t)
}

// list parses the listing query with the lenient semantics the API
// documents: unknown orderBy falls back to createdAt, completed accepts only
// the literals true/false, anything else means unfiltered, and a bad limit
// falls back to the default.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	q := ListQuery{
		Search:  params.Get("search"),
		OrderBy: SortField(params.Get("orderBy")),
		Order:   Order(params.Get("order")),
		Cursor:  params.Get("cursor"),
	}
	switch params.Get("completed") {
	case "true":
		v := true
		q.Completed = &v
	case "false":
		v := false
		q.Completed = &v
	}
	if raw := params.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit = n
		}
	}

	page, err := h.svc.List(r.Context(), callerID, q)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	taskID := uuid.MustParse(chi.URLParam(r, "id"))
	t, err := h.svc.Get(r.Context(), taskID, callerID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, t)
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := binder.JSON(r, &req); err != nil {
		h.errs.Handle(w, r, core.BadRequest("Invalid request body"))
		return
	}
	var rules []validator.Rule
	if req.Title != nil {
		rules = append(rules,
			validator.MinLen("title", *req.Title, 3),
			validator.MaxLen("title", *req.Title, 100),
		)
	}
	if req.Description != nil {
		rules = append(rules, validator.MaxLen("description", *req.Description, 500))
	}
	if err := validator.Apply(rules...); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	taskID := uuid.MustParse(chi.URLParam(r, "id"))
	t, err := h.svc.Update(r.Context(), taskID, callerID, TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	taskID := uuid.MustParse(chi.URLParam(r, "id"))
	if err := h.svc.Delete(r.Context(), taskID, callerID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	core.NoContent(w)
}
