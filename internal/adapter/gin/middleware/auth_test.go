package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/palhamel/mongo-auth-code/internal/domain/user"
	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
	pkgerrors "github.com/palhamel/mongo-auth-code/pkg/errors"
)

type MockUsecase struct {
	mock.Mock
}

func (m *MockUsecase) Register(ctx context.Context, in auth.RegisterRequest) (*auth.RegisterResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RegisterResponse), args.Error(1)
}

func (m *MockUsecase) Login(ctx context.Context, in auth.LoginRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func (m *MockUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupGuardedRoute(t *testing.T, uc auth.Usecase) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlerRan := false
	r.GET("/secrets", AuthenticateUser(uc, zaptest.NewLogger(t)), func(c *gin.Context) {
		handlerRan = true
		u := UserFromContext(c)
		require.NotNil(t, u)
		c.JSON(http.StatusOK, gin.H{"user": u.Name})
	})

	return r, &handlerRan
}

func TestAuthenticateUser_ValidToken(t *testing.T) {
	mockUC := new(MockUsecase)
	mockUC.On("Authenticate", mock.Anything, "valid-token").
		Return(&domain.User{ID: 1, Name: "ann"}, nil)

	r, handlerRan := setupGuardedRoute(t, mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secrets", nil)
	req.Header.Set("Authorization", "valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *handlerRan)
}

func TestAuthenticateUser_UnknownToken(t *testing.T) {
	mockUC := new(MockUsecase)
	mockUC.On("Authenticate", mock.Anything, "bogus").
		Return(nil, pkgerrors.NewUnauthenticatedError())

	r, handlerRan := setupGuardedRoute(t, mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secrets", nil)
	req.Header.Set("Authorization", "bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *handlerRan, "protected handler must not run")

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]bool{"loggedOut": true}, body)
}

func TestAuthenticateUser_MissingHeader(t *testing.T) {
	mockUC := new(MockUsecase)
	mockUC.On("Authenticate", mock.Anything, "").
		Return(nil, pkgerrors.NewUnauthenticatedError())

	r, handlerRan := setupGuardedRoute(t, mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secrets", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *handlerRan)
}

func TestAuthenticateUser_StoreFailure(t *testing.T) {
	mockUC := new(MockUsecase)
	mockUC.On("Authenticate", mock.Anything, "some-token").
		Return(nil, pkgerrors.NewInternalError("store unreachable", errors.New("dial tcp: connection refused")))

	r, handlerRan := setupGuardedRoute(t, mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secrets", nil)
	req.Header.Set("Authorization", "some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, *handlerRan)
	assert.NotContains(t, w.Body.String(), "loggedOut")
}

func TestCORS_PreflightAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
