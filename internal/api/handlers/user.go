package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/marketbase/catalog-api/internal/utils"
	"github.com/marketbase/catalog-api/internal/utils/response"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Register godoc
//	@Summary		Register a new account
//	@Description	Creates a customer account. The customer role is fixed; admin accounts are provisioned out-of-band.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.User				"Created account"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid request payload or email already registered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration payload")
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("User registration failed",
				slog.String("email", req.Email),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// Login godoc
//	@Summary		Authenticate
//	@Description	Verifies credentials and returns a signed JWT. Unknown accounts and wrong passwords share one rejection message, and repeated failures per email are rate limited.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Login credentials"
//	@Success		200			{object}	models.LoginResponse	"Token and expiry"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid request payload"
//	@Failure		401			{object}	models.LoginResponse	"Invalid credentials"
//	@Failure		429			{object}	models.LoginResponse	"Too many attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login payload")
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected",
				slog.String("email", req.Email),
				slog.Int("status", status))
			response.WriteJson(w, status, response.APIResponse{Success: false, Data: resp})
			return
		}

		logger.Info("User logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

// Profile godoc
//	@Summary		Current account profile
//	@Description	Returns the account behind the presented token.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.User				"Account profile"
//	@Failure		401	{object}	response.ErrorResponse	"Unauthorized"
//	@Failure		404	{object}	response.ErrorResponse	"Account no longer exists"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Profile requested without authenticated claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Failed to load profile",
				slog.String("userId", claims.UserID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User profile accessed", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusOK, user)
	}
}
