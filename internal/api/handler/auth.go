package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jwt "github.com/golang-jwt/jwt/v5"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

// IssueToken генерує JWT для користувача
func (h *Handler) IssueToken(user *models.User) (string, error) {
	// Встановлюємо claims, включаючи ID користувача та термін дії
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "samadhan-api", // Видавець
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// parseToken валідує JWT та повертає ID користувача з claims.
func (h *Handler) parseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid user_id claim")
	}
	return uint(rawID), nil
}

// AuthRequired — middleware, що резолвить Bearer-токен у користувача.
// Без валідного токена запит завершується 401.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		userID, err := h.parseToken(authHeader[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token or expired."})
			return
		}

		user, err := h.Storage.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token or expired."})
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// RequestID присвоює кожному запиту унікальний ідентифікатор для логів.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Register створює нового користувача. Єдиний публічний маршрут, окрім
// логіна та health. Пароль хешується тут і ніколи не повертається.
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}

	if errs := form.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user."})
		return
	}

	user := &models.User{
		Username:     strings.TrimSpace(form.Username),
		Email:        strings.TrimSpace(form.Email),
		PasswordHash: string(hash),
	}
	if err := h.Storage.CreateUser(user); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": "A user with that username already exists."}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user."})
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login перевіряє облікові дані та повертає JWT.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return
	}

	user, err := h.Storage.GetUserByUsername(form.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password."})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password."})
		return
	}

	token, err := h.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": newUserResponse(user)})
}

// Health — простий liveness-ендпоінт.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": "grievances",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
