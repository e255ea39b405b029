package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/domain"
)

// MsgCredentialsRequired is returned when the login body lacks a username or password.
const MsgCredentialsRequired = "El usuario y la clave son requeridos"

// LoginRequest is the request body for POST /api/user/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	if strings.TrimSpace(l.Username) == "" || l.Password == "" {
		return []string{MsgCredentialsRequired}
	}
	return nil
}

// LoginResponse is the response body for POST /api/user/login
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterSuccessResponse is the success envelope for POST /api/user/register (201).
type RegisterSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *domain.User `json:"data"`
}

// UserController handles sign up and login.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Sign up
// @Description Creates a user. username must be an email address; the password is stored hashed.
// @Tags users
// @Accept json
// @Produce json
// @Param body body domain.RegisterInput true "Sign-up data"
// @Success 201 {object} controllers.RegisterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/user/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	user, err := c.Service.Register(r.Context(), &in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, domain.MsgUserRegistered, user)
}

// Login godoc
// @Summary Log in
// @Description Exchanges username and password for a bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/user/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, _, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, LoginResponse{Success: true, Message: "", Token: token})
}
