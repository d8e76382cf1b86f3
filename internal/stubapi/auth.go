package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/api"
	"storefront/internal/domain"
)

const tokenTTL = 24 * time.Hour

const profileKey = "stubapi.profile"

func (s *Server) issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *Server) parseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return parsed.Claims.GetSubject()
}

// requireUser resolves the bearer token to a profile and stashes it on the
// context for downstream handlers.
func (s *Server) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	userID, err := s.parseToken(token)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	s.mu.Lock()
	user, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	c.Set(profileKey, user.Profile)
	c.Next()
}

func (s *Server) requireAdmin(c *gin.Context) {
	if !currentProfile(c).IsAdmin() {
		fail(c, http.StatusForbidden, "Admin access required")
		return
	}
	c.Next()
}

func currentProfile(c *gin.Context) domain.Profile {
	return c.MustGet(profileKey).(domain.Profile)
}

func (s *Server) registerHandler(c *gin.Context) {
	var in api.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, in.Email) {
			s.mu.Unlock()
			fail(c, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		fail(c, http.StatusInternalServerError, "could not hash password")
		return
	}
	user := &userRecord{
		Profile: domain.Profile{
			ID:       uuid.NewString(),
			Email:    in.Email,
			Role:     "USER",
			FullName: in.FullName,
			Phone:    in.Phone,
		},
		PasswordHash: hash,
	}
	s.users[user.ID] = user
	s.mu.Unlock()

	s.respondWithToken(c, http.StatusCreated, user.Profile)
}

func (s *Server) loginHandler(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	var user *userRecord
	for _, candidate := range s.users {
		if strings.EqualFold(candidate.Email, in.Email) {
			user = candidate
			break
		}
	}
	s.mu.Unlock()

	if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(in.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.respondWithToken(c, http.StatusOK, user.Profile)
}

func (s *Server) meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentProfile(c))
}

func (s *Server) respondWithToken(c *gin.Context, status int, profile domain.Profile) {
	token, err := s.issueToken(profile.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	c.JSON(status, api.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        profile,
	})
}
