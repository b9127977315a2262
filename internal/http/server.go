package httpapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/thoughtwall/thoughtwall/internal/auth"
	"github.com/thoughtwall/thoughtwall/internal/config"
	"github.com/thoughtwall/thoughtwall/internal/model"
	"github.com/thoughtwall/thoughtwall/internal/rate"
	"github.com/thoughtwall/thoughtwall/internal/store"

	_ "github.com/thoughtwall/thoughtwall/docs" // swagger docs

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

const (
	messageMin  = 5
	messageMax  = 140
	categoryMax = 30

	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Error codes used in the response envelope. Every handler failure maps
// to exactly one of these before it reaches the wire.
const (
	codeUnauthenticated    = "unauthenticated"
	codeInvalidToken       = "invalid_token"
	codeInvalidCredentials = "invalid_credentials"
	codeForbidden          = "forbidden"
	codeNotFound           = "not_found"
	codeMalformedID        = "malformed_id"
	codeValidation         = "validation_error"
	codeConflict           = "conflict"
	codeRateLimited        = "rate_limited"
	codeInternal           = "internal_error"
)

type Server struct {
	store   store.Store
	auth    *auth.Service
	limiter rate.Limiter
	cfg     config.Config
}

func NewServer(store store.Store, authSvc *auth.Service, limiter rate.Limiter, cfg config.Config) *Server {
	return &Server{store: store, auth: authSvc, limiter: limiter, cfg: cfg}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Secret")
		w.Header().Set("Access-Control-Max-Age", "86400")
	}
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.route(w, r)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/swagger/") {
		httpSwagger.WrapHandler.ServeHTTP(w, r)
		return
	}

	segments := splitPath(r.URL.Path)

	switch {
	case len(segments) == 0:
		if r.Method == http.MethodGet {
			s.handleIndex(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "thoughts":
		if r.Method == http.MethodGet {
			s.handleListThoughts(w, r)
			return
		}
		if r.Method == http.MethodPost {
			s.handleCreateThought(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "thoughts":
		if r.Method == http.MethodGet {
			s.handleGetThought(w, r, segments[1])
			return
		}
		if r.Method == http.MethodPatch {
			s.handleUpdateThought(w, r, segments[1])
			return
		}
		if r.Method == http.MethodDelete {
			s.handleDeleteThought(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "thoughts" && segments[2] == "like":
		if r.Method == http.MethodPost {
			s.handleLikeThought(w, r, segments[1])
			return
		}
	case len(segments) == 1 && segments[0] == "categories":
		if r.Method == http.MethodGet {
			s.handleCategories(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "users":
		if r.Method == http.MethodPost {
			s.handleRegister(w, r)
			return
		}
		if r.Method == http.MethodGet {
			s.handleListUsers(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "users" && segments[1] == "me":
		if r.Method == http.MethodDelete {
			s.handleDeleteMe(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "users":
		if r.Method == http.MethodDelete {
			s.handleDeleteUser(w, r, segments[1])
			return
		}
	case len(segments) == 1 && segments[0] == "sessions":
		if r.Method == http.MethodPost {
			s.handleLogin(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "stats":
		if r.Method == http.MethodGet {
			s.handleStats(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "version":
		if r.Method == http.MethodGet {
			s.handleVersion(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "openapi.json":
		if r.Method == http.MethodGet {
			s.serveOpenAPIJSON(w, r)
			return
		}
	}

	notFound(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Thoughtwall API",
		"version": s.cfg.Version,
		"docs":    "/swagger/index.html",
		"endpoints": []map[string]string{
			{"method": "GET", "path": "/thoughts", "description": "List thoughts (category, sort, page, limit)"},
			{"method": "GET", "path": "/thoughts/{id}", "description": "Get a single thought"},
			{"method": "POST", "path": "/thoughts", "description": "Post a thought (auth)"},
			{"method": "PATCH", "path": "/thoughts/{id}", "description": "Edit your thought (auth, owner)"},
			{"method": "DELETE", "path": "/thoughts/{id}", "description": "Delete your thought (auth, owner)"},
			{"method": "POST", "path": "/thoughts/{id}/like", "description": "Like a thought"},
			{"method": "GET", "path": "/categories", "description": "Distinct categories"},
			{"method": "POST", "path": "/users", "description": "Register"},
			{"method": "POST", "path": "/sessions", "description": "Log in"},
			{"method": "DELETE", "path": "/users/me", "description": "Delete your account (auth)"},
			{"method": "GET", "path": "/stats", "description": "Site statistics"},
		},
	})
}

// handleListThoughts godoc
//
//	@Summary		List thoughts
//	@Description	Get a page of thoughts, optionally filtered by category and sorted by hearts or date
//	@Tags			Thoughts
//	@Produce		json
//	@Param			category	query		string	false	"Category filter (case-insensitive exact match)"
//	@Param			sort		query		string	false	"Sort order"	Enums(hearts, date)	default(date)
//	@Param			page		query		int		false	"1-based page"	default(1)
//	@Param			limit		query		int		false	"Results per page"	default(20)	maximum(100)
//	@Success		200			{object}	map[string]interface{}	"Page of thoughts with total/totalPages"
//	@Router			/thoughts [get]
func (s *Server) handleListThoughts(w http.ResponseWriter, r *http.Request) {
	opts := store.ThoughtListOpts{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Sort:     sortOrDefault(r.URL.Query().Get("sort")),
		Page:     parseIntDefault(r.URL.Query().Get("page"), defaultPage),
		Limit:    parseIntDefault(r.URL.Query().Get("limit"), defaultLimit),
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultLimit
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}

	thoughts, total, err := s.store.ListThoughts(r.Context(), opts)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if thoughts == nil {
		thoughts = []model.Thought{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(opts.Limit)))
	writeJSON(w, http.StatusOK, map[string]any{
		"total":      total,
		"page":       opts.Page,
		"limit":      opts.Limit,
		"totalPages": totalPages,
		"results":    thoughts,
	})
}

// handleGetThought godoc
//
//	@Summary		Get a thought
//	@Tags			Thoughts
//	@Produce		json
//	@Param			id	path		string	true	"Thought ID"
//	@Success		200	{object}	model.Thought
//	@Failure		400	{object}	map[string]interface{}	"Malformed id"
//	@Failure		404	{object}	map[string]interface{}	"Thought not found"
//	@Router			/thoughts/{id} [get]
func (s *Server) handleGetThought(w http.ResponseWriter, r *http.Request, id string) {
	if !validID(id) {
		writeError(w, http.StatusBadRequest, codeMalformedID, "thought id is not a valid identifier")
		return
	}
	thought, err := s.store.GetThought(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "thought not found")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thought)
}

// handleCreateThought godoc
//
//	@Summary		Post a thought
//	@Description	Create a new thought owned by the authenticated user
//	@Tags			Thoughts
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			thought	body		object{message=string,category=string}	true	"Thought data"
//	@Success		201		{object}	model.Thought
//	@Failure		400		{object}	map[string]interface{}	"Validation error"
//	@Failure		401		{object}	map[string]interface{}	"Authentication required"
//	@Failure		429		{object}	map[string]interface{}	"Rate limited"
//	@Router			/thoughts [post]
func (s *Server) handleCreateThought(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "thought", s.cfg.RateLimits.ThoughtPerMinute) {
		return
	}
	user, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	var req struct {
		Message  string `json:"message"`
		Category string `json:"category"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	message, err := validateMessage(req.Message)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	category, err := normalizeCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	thought := model.Thought{
		Message:   message,
		Category:  category,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateThought(r.Context(), &thought); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, thought)
}

// handleLikeThought godoc
//
//	@Summary		Like a thought
//	@Description	Increment the heart counter. No authentication, no limit: anyone may like anything any number of times.
//	@Tags			Thoughts
//	@Produce		json
//	@Param			id	path		string	true	"Thought ID"
//	@Success		200	{object}	model.Thought
//	@Failure		400	{object}	map[string]interface{}	"Malformed id"
//	@Failure		404	{object}	map[string]interface{}	"Thought not found"
//	@Router			/thoughts/{id}/like [post]
func (s *Server) handleLikeThought(w http.ResponseWriter, r *http.Request, id string) {
	if !validID(id) {
		writeError(w, http.StatusBadRequest, codeMalformedID, "thought id is not a valid identifier")
		return
	}
	thought, err := s.store.IncrementHearts(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "thought not found")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thought)
}

// handleUpdateThought godoc
//
//	@Summary		Edit a thought
//	@Description	Update message and/or category of your own thought
//	@Tags			Thoughts
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			id		path		string									true	"Thought ID"
//	@Param			thought	body		object{message=string,category=string}	true	"Fields to update"
//	@Success		200		{object}	model.Thought
//	@Failure		400		{object}	map[string]interface{}	"Validation error"
//	@Failure		401		{object}	map[string]interface{}	"Authentication required"
//	@Failure		403		{object}	map[string]interface{}	"Not the owner"
//	@Failure		404		{object}	map[string]interface{}	"Thought not found"
//	@Router			/thoughts/{id} [patch]
func (s *Server) handleUpdateThought(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	thought, ok := s.fetchOwnedThought(w, r, id, user)
	if !ok {
		return
	}

	var req struct {
		Message  *string `json:"message"`
		Category *string `json:"category"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	message := thought.Message
	if req.Message != nil {
		m, err := validateMessage(*req.Message)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, err.Error())
			return
		}
		message = m
	}
	category := thought.Category
	if req.Category != nil {
		c, err := normalizeCategory(*req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, err.Error())
			return
		}
		category = c
	}

	updated, err := s.store.UpdateThought(r.Context(), id, message, category)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "thought not found")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteThought godoc
//
//	@Summary		Delete a thought
//	@Description	Delete your own thought and return the deleted record
//	@Tags			Thoughts
//	@Produce		json
//	@Security		TokenAuth
//	@Param			id	path		string	true	"Thought ID"
//	@Success		200	{object}	map[string]interface{}	"Deleted record"
//	@Failure		401	{object}	map[string]interface{}	"Authentication required"
//	@Failure		403	{object}	map[string]interface{}	"Not the owner"
//	@Failure		404	{object}	map[string]interface{}	"Thought not found"
//	@Router			/thoughts/{id} [delete]
func (s *Server) handleDeleteThought(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	if _, ok := s.fetchOwnedThought(w, r, id, user); !ok {
		return
	}

	deleted, err := s.store.DeleteThought(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "thought not found")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "thought deleted",
		"deleted": deleted,
	})
}

// fetchOwnedThought loads a thought and enforces the ownership policy:
// only the owner may mutate it, and unowned legacy records (no user
// reference) may not be mutated by anyone.
func (s *Server) fetchOwnedThought(w http.ResponseWriter, r *http.Request, id string, user model.User) (model.Thought, bool) {
	if !validID(id) {
		writeError(w, http.StatusBadRequest, codeMalformedID, "thought id is not a valid identifier")
		return model.Thought{}, false
	}
	thought, err := s.store.GetThought(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "thought not found")
			return model.Thought{}, false
		}
		writeInternalError(w, err)
		return model.Thought{}, false
	}
	if thought.UserID == "" {
		writeError(w, http.StatusForbidden, codeForbidden, "this thought has no owner and cannot be changed")
		return model.Thought{}, false
	}
	if thought.UserID != user.ID {
		writeError(w, http.StatusForbidden, codeForbidden, "you can only change your own thoughts")
		return model.Thought{}, false
	}
	return thought, true
}

// handleCategories godoc
//
//	@Summary		List categories
//	@Description	Distinct non-empty categories across all thoughts, alphabetically sorted
//	@Tags			Thoughts
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/categories [get]
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleRegister godoc
//
//	@Summary		Register an account
//	@Description	Create a user with a unique username and email. Returns a fresh access token.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		object{username=string,email=string,password=string}	true	"Account data"
//	@Success		201		{object}	map[string]interface{}	"userId, username, accessToken"
//	@Failure		400		{object}	map[string]interface{}	"Validation error"
//	@Failure		409		{object}	map[string]interface{}	"Username or email taken"
//	@Failure		429		{object}	map[string]interface{}	"Rate limited"
//	@Router			/users [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "signup", s.cfg.RateLimits.SignupPerMinute) {
		return
	}
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		case errors.Is(err, store.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, codeConflict, "email already registered")
		case errors.Is(err, store.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, codeConflict, "username already taken")
		default:
			writeInternalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse(user))
}

// handleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchange email and password for a new access token. The previously issued token stops working.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		object{email=string,password=string}	true	"Credentials"
//	@Success		200			{object}	map[string]interface{}	"userId, username, accessToken"
//	@Failure		401			{object}	map[string]interface{}	"Invalid credentials"
//	@Failure		429			{object}	map[string]interface{}	"Rate limited"
//	@Router			/sessions [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "login", s.cfg.RateLimits.LoginPerMinute) {
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "invalid email or password")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(user))
}

// handleDeleteMe godoc
//
//	@Summary		Delete your account
//	@Description	Delete the authenticated user's thoughts, then the account itself
//	@Tags			Users
//	@Produce		json
//	@Security		TokenAuth
//	@Success		200	{object}	map[string]interface{}	"Success message"
//	@Failure		401	{object}	map[string]interface{}	"Authentication required"
//	@Router			/users/me [delete]
func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	s.deleteUserCascade(w, r, user.ID)
}

// handleDeleteUser godoc
//
//	@Summary		Delete a user by id
//	@Description	Delete a user and all of their thoughts. Callers may delete themselves; deleting anyone else requires the admin secret.
//	@Tags			Admin
//	@Produce		json
//	@Security		TokenAuth
//	@Param			X-Admin-Secret	header		string	false	"Admin secret (required unless deleting yourself)"
//	@Param			id				path		string	true	"User ID"
//	@Success		200				{object}	map[string]interface{}	"Success message"
//	@Failure		401				{object}	map[string]interface{}	"Authentication required"
//	@Failure		403				{object}	map[string]interface{}	"Not yourself and not admin"
//	@Failure		404				{object}	map[string]interface{}	"User not found"
//	@Router			/users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	if !validID(id) {
		writeError(w, http.StatusBadRequest, codeMalformedID, "user id is not a valid identifier")
		return
	}
	if user.ID != id && !s.isAdmin(r) {
		writeError(w, http.StatusForbidden, codeForbidden, "you can only delete your own account")
		return
	}
	if _, err := s.store.GetUser(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		writeInternalError(w, err)
		return
	}
	s.deleteUserCascade(w, r, id)
}

// deleteUserCascade removes the user's thoughts first, then the user.
// The two deletes are independent store calls; a crash in between
// leaves no dangling user, only already-removed thoughts.
func (s *Server) deleteUserCascade(w http.ResponseWriter, r *http.Request, userID string) {
	removed, err := s.store.DeleteThoughtsByUser(r.Context(), userID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if err := s.store.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"message":         "account deleted",
		"thoughtsDeleted": removed,
	})
}

// handleListUsers godoc
//
//	@Summary		List users (admin)
//	@Description	All users with password and token fields excluded. Requires X-Admin-Secret header.
//	@Tags			Admin
//	@Produce		json
//	@Param			X-Admin-Secret	header		string	true	"Admin secret"
//	@Success		200				{array}		model.PublicUser
//	@Failure		401				{object}	map[string]interface{}	"Invalid admin secret"
//	@Router			/users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if !s.isAdmin(r) {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "admin secret required")
		return
	}
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	writeJSON(w, http.StatusOK, public)
}

// handleStats godoc
//
//	@Summary		Site statistics
//	@Description	Counts of users, thoughts, and total hearts
//	@Tags			Thoughts
//	@Produce		json
//	@Success		200	{object}	model.SiteStats
//	@Router			/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetSiteStats(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":    s.cfg.Version,
		"commit":     s.cfg.Commit,
		"build_time": s.cfg.BuildTime,
	})
}

func (s *Server) serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(doc))
}

func (s *Server) isAdmin(r *http.Request) bool {
	return s.cfg.AdminSecret != "" && r.Header.Get("X-Admin-Secret") == s.cfg.AdminSecret
}

func (s *Server) allowRateLimit(w http.ResponseWriter, r *http.Request, action string, limit int) bool {
	if limit <= 0 {
		return true
	}
	key := fmt.Sprintf("%s:ip:%s", action, s.clientIP(r))
	if ok, retry := s.limiter.Allow(key, limit, time.Minute); !ok {
		writeRateLimit(w, retry)
		return false
	}
	return true
}

// requireAuth resolves the Authorization header to a user. The header
// carries the raw opaque token; an optional "Bearer " prefix is accepted
// for clients that send one.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing access token")
		return model.User{}, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	user, err := s.auth.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "access token is not valid")
			return model.User{}, false
		}
		writeInternalError(w, err)
		return model.User{}, false
	}
	return user, true
}

func (s *Server) clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func sessionResponse(user model.User) map[string]any {
	return map[string]any{
		"success":     true,
		"userId":      user.ID,
		"username":    user.Username,
		"accessToken": user.AccessToken,
	}
}

func validateMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if n := utf8.RuneCountInString(message); n < messageMin || n > messageMax {
		return "", fmt.Errorf("message must be %d-%d characters", messageMin, messageMax)
	}
	return message, nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if utf8.RuneCountInString(category) > categoryMax {
		return "", fmt.Errorf("category must be at most %d characters", categoryMax)
	}
	return category, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   code,
		"message": message,
	})
}

// writeInternalError hides driver details from the response; the
// underlying error stays server-side.
func writeInternalError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "something went wrong")
}

func writeRateLimit(w http.ResponseWriter, retry time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"success":     false,
		"error":       codeRateLimited,
		"message":     "rate limit exceeded",
		"retry_after": int(retry.Seconds()),
	})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, codeNotFound, "not found")
}

func parseIntDefault(value string, def int) int {
	if value == "" {
		return def
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return def
}

func sortOrDefault(sort string) string {
	if sort == "" {
		return "date"
	}
	return sort
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
