package services

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/security"
)

const (
	roleAdmin      = "admin"
	adminTokenType = "admin_auth"
)

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token,omitempty"`
	Role    string `json:"role,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthService checks the admin password and issues admin tokens
type AuthService struct {
	adminPassword string
	jwtSecret     string
	tokenTTL      time.Duration
	logger        *logging.ChanneledLogger
}

// NewAuthService creates the admin auth service. adminPassword may be a
// bcrypt hash or plain text; an empty password disables admin access.
func NewAuthService(adminPassword, jwtSecret string, tokenTTL time.Duration, logger *logging.ChanneledLogger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		logger:        logger,
	}
}

// Enabled reports whether an admin password is configured
func (a *AuthService) Enabled() bool {
	return a.adminPassword != "" && a.jwtSecret != ""
}

// AuthenticateAdmin validates the admin password and generates a JWT
func (a *AuthService) AuthenticateAdmin(password string) *AuthResult {
	if !a.Enabled() || !a.CheckPassword(password) {
		a.logger.System().Warn("Admin authentication failed")
		return &AuthResult{Success: false, Error: "Invalid credentials"}
	}

	claims := jwt.MapClaims{
		"role": roleAdmin,
		"type": adminTokenType,
	}
	token, err := security.GenerateJWT(claims, a.jwtSecret, a.tokenTTL)
	if err != nil {
		a.logger.System().Error("Failed to generate admin token", "error", err)
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}
	return &AuthResult{Token: token, Role: roleAdmin, Success: true}
}

// CheckPassword compares password with the configured admin password
func (a *AuthService) CheckPassword(password string) bool {
	if a.adminPassword == "" || password == "" {
		return false
	}
	if isBcryptHash(a.adminPassword) {
		return bcrypt.CompareHashAndPassword([]byte(a.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.adminPassword), []byte(password)) == 1
}

// ValidateAdminToken checks that a token was issued by AuthenticateAdmin
func (a *AuthService) ValidateAdminToken(tokenString string) bool {
	if !a.Enabled() || tokenString == "" {
		return false
	}

	claims, err := security.ValidateJWT(tokenString, a.jwtSecret)
	if err != nil {
		return false
	}
	if tokenType, _ := claims["type"].(string); tokenType != adminTokenType {
		return false
	}
	role, _ := claims["role"].(string)
	return role == roleAdmin
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
