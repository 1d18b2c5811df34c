package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
	pkgerrors "github.com/palhamel/mongo-auth-code/pkg/errors"
)

// SecretMessage is the fixed payload of the protected endpoint.
const SecretMessage = "All ok! - This is a super secret message"

// AuthHandler handles HTTP requests for registration, login and the
// protected resource.
type AuthHandler struct {
	uc  auth.Usecase
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Usecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// RegisterRequest represents the HTTP request body for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the HTTP request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Root handles GET /
func (h *AuthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello world")
}

// Register handles POST /users
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  gin.H{"body": err.Error()},
		})
		return
	}

	resp, err := h.uc.Register(c.Request.Context(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.registerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          resp.ID,
		"accessToken": resp.AccessToken,
	})
}

// registerError maps registration failures onto the wire contract: any
// validation or uniqueness problem is a 400 carrying the detail, anything
// else is a 500.
func (h *AuthHandler) registerError(c *gin.Context, err error) {
	var exists *pkgerrors.AlreadyExistsError
	if errors.As(err, &exists) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  gin.H{exists.Resource: exists.Message},
		})
		return
	}

	var invalid *pkgerrors.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  gin.H{"validation": invalid.Message},
		})
		return
	}

	h.log.Error("register failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// Login handles POST /sessions.
//
// A failed credential check answers 200 with {"notFound": true} rather
// than a 4xx. Existing clients depend on this, so it stays.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unparseable body is a malformed request, not a failed
		// credential check, so it does not get the notFound shape.
		h.log.Warn("invalid login request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var cred *pkgerrors.CredentialError
		var invalid *pkgerrors.ValidationError
		if errors.As(err, &cred) || errors.As(err, &invalid) {
			c.JSON(http.StatusOK, gin.H{"notFound": true})
			return
		}

		h.log.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":      resp.UserID,
		"accessToken": resp.AccessToken,
	})
}

// Secrets handles GET /secrets. The route is guarded by the
// authentication middleware; by the time this runs the bearer token has
// already been resolved to a user.
func (h *AuthHandler) Secrets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"secret": SecretMessage})
}
