package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketbase/catalog-api/internal/api/handlers"
	"github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	"github.com/marketbase/catalog-api/internal/services/mocks"
	"github.com/marketbase/catalog-api/internal/testutils"
	"github.com/marketbase/catalog-api/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserHandler_Register(t *testing.T) {
	mockUserService := mocks.NewUserService(t)
	userHandler := handlers.NewUserHandler(mockUserService)

	t.Run("Success - User Registration", func(t *testing.T) {
		// Arrange
		registerReq := &models.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		reqBody, err := json.Marshal(registerReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/register", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		createdUser := &models.User{
			ID:    uuid.New(),
			Email: registerReq.Email,
			Name:  registerReq.Name,
			Role:  models.RoleCustomer,
		}

		// did the handler pass the right data to the service?
		mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(r *models.RegisterRequest) bool {
			return r.Email == registerReq.Email && r.Name == registerReq.Name
		})).Return(createdUser, nil).Once()

		// Act
		handler := userHandler.Register()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)

		var extractedUser models.User
		decodeData(t, w.Body.Bytes(), &extractedUser)
		assert.Equal(t, createdUser.ID, extractedUser.ID)
		assert.Equal(t, createdUser.Name, extractedUser.Name)
		assert.Equal(t, createdUser.Email, extractedUser.Email)
		assert.Equal(t, models.RoleCustomer, extractedUser.Role)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Input", func(t *testing.T) {
		// Arrange
		invalidReq := struct {
			Email string `json:"email"`
		}{
			Email: "test@example.com",
		}

		reqBody, err := json.Marshal(invalidReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/register", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		// Act
		handler := userHandler.Register()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var respBody response.APIResponse
		err = json.Unmarshal(w.Body.Bytes(), &respBody)
		assert.NoError(t, err)
		assert.False(t, respBody.Success)
		assert.NotNil(t, respBody.Error)
		assert.Equal(t, errors.ErrCodeValidation, respBody.Error.Code)

		mockUserService.AssertNotCalled(t, "Register")
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		registerReq := &models.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		reqBody, err := json.Marshal(registerReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/register", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(r *models.RegisterRequest) bool {
			return r.Email == registerReq.Email && r.Name == registerReq.Name
		})).Return(nil, errors.DuplicateEntryError("Email already registered")).Once()

		// Act
		handler := userHandler.Register()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var respBody response.APIResponse
		err = json.Unmarshal(w.Body.Bytes(), &respBody)
		assert.NoError(t, err)
		assert.False(t, respBody.Success)
		assert.NotNil(t, respBody.Error)
		assert.Equal(t, errors.ErrCodeDuplicateEntry, respBody.Error.Code)

		mockUserService.AssertExpectations(t)
	})
}

func TestUserHandler_Login(t *testing.T) {
	mockUserService := mocks.NewUserService(t)
	userHandler := handlers.NewUserHandler(mockUserService)

	t.Run("Success - Valid Login", func(t *testing.T) {
		// Arrange
		loginReq := &models.LoginRequest{
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		reqBody, err := json.Marshal(loginReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/login", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		loginResp := &models.LoginResponse{
			Success:   true,
			Token:     "jwt-token",
			ExpiresIn: 3600,
		}

		// did the handler pass the right data to the service?
		mockUserService.On("Login", mock.Anything, mock.MatchedBy(func(r *models.LoginRequest) bool {
			return r.Email == loginReq.Email && r.Password == loginReq.Password
		})).Return(loginResp, nil).Once()

		// Act
		handler := userHandler.Login()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var returnedResp models.LoginResponse
		decodeData(t, w.Body.Bytes(), &returnedResp)
		assert.True(t, returnedResp.Success)
		assert.Equal(t, loginResp.Token, returnedResp.Token)
		assert.Equal(t, loginResp.ExpiresIn, returnedResp.ExpiresIn)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		// Arrange
		loginReq := &models.LoginRequest{
			Email:    "test@example.com",
			Password: "WrongP@ssword123!",
		}

		reqBody, err := json.Marshal(loginReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/login", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		loginResp := &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: 4,
		}

		mockUserService.On("Login", mock.Anything, mock.MatchedBy(func(r *models.LoginRequest) bool {
			return r.Email == loginReq.Email && r.Password == loginReq.Password
		})).Return(loginResp, nil).Once()

		// Act
		handler := userHandler.Login()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// rejections keep the structured login payload under data
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)

		var returnedResp models.LoginResponse
		assert.NoError(t, json.Unmarshal(env.Data, &returnedResp))
		assert.Equal(t, "Invalid email or password", returnedResp.Message)
		assert.Equal(t, 4, returnedResp.RemainingTries)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		loginReq := &models.LoginRequest{
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		reqBody, err := json.Marshal(loginReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/login", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		loginResp := &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: 30,
		}

		mockUserService.On("Login", mock.Anything, mock.MatchedBy(func(r *models.LoginRequest) bool {
			return r.Email == loginReq.Email && r.Password == loginReq.Password
		})).Return(loginResp, nil).Once()

		// Act
		handler := userHandler.Login()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)

		var returnedResp models.LoginResponse
		assert.NoError(t, json.Unmarshal(env.Data, &returnedResp))
		assert.Equal(t, 30, returnedResp.RetryAfter)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Backend Error", func(t *testing.T) {
		// Arrange
		loginReq := &models.LoginRequest{
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		reqBody, err := json.Marshal(loginReq)
		assert.NoError(t, err)
		req := newTestRequest(http.MethodPost, "/api/v1/users/login", reqBody)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.Anything).Return(nil, errors.ThirdPartyError("Rate limit check failed")).Once()

		// Act
		handler := userHandler.Login()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var respBody response.APIResponse
		err = json.Unmarshal(w.Body.Bytes(), &respBody)
		assert.NoError(t, err)
		assert.False(t, respBody.Success)
		assert.NotNil(t, respBody.Error)
		assert.Equal(t, errors.ErrCodeThirdPartyError, respBody.Error.Code)

		mockUserService.AssertExpectations(t)
	})
}

func TestUserHandler_Profile(t *testing.T) {
	mockUserService := mocks.NewUserService(t)
	userHandler := handlers.NewUserHandler(mockUserService)

	t.Run("Success - Get Profile", func(t *testing.T) {
		// Arrange
		user := &models.User{
			ID:    uuid.New(),
			Email: "test@example.com",
			Name:  "Test User",
			Role:  models.RoleCustomer,
		}

		mockUserService.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, user.ID, nil)
		w := httptest.NewRecorder()

		// Act
		handler := userHandler.Profile()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var extractedUser models.User
		decodeData(t, w.Body.Bytes(), &extractedUser)
		assert.Equal(t, user.ID, extractedUser.ID)
		assert.Equal(t, user.Email, extractedUser.Email)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - No Auth Context", func(t *testing.T) {
		// Arrange - request without auth context
		req := newTestRequest(http.MethodGet, "/api/v1/users/profile", nil)
		w := httptest.NewRecorder()

		// Act
		handler := userHandler.Profile()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var respBody response.APIResponse
		err := json.Unmarshal(w.Body.Bytes(), &respBody)
		assert.NoError(t, err)
		assert.False(t, respBody.Success)
		assert.NotNil(t, respBody.Error)
		assert.Equal(t, errors.ErrCodeUnauthorized, respBody.Error.Code)

		mockUserService.AssertNotCalled(t, "GetUserByID")
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		// Arrange
		userID := uuid.New()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, userID, nil)
		w := httptest.NewRecorder()

		mockUserService.On("GetUserByID", mock.Anything, userID).Return(nil, errors.NotFoundError("User not found")).Once()

		// Act
		handler := userHandler.Profile()
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)

		var respBody response.APIResponse
		err := json.Unmarshal(w.Body.Bytes(), &respBody)
		assert.NoError(t, err)
		assert.False(t, respBody.Success)
		assert.NotNil(t, respBody.Error)
		assert.Equal(t, errors.ErrCodeNotFound, respBody.Error.Code)

		mockUserService.AssertExpectations(t)
	})
}
