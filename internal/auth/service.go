package auth

import (
	"fmt"
	"os"
	"time"

	"droneops/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// Service manages accounts and tokens.
type Service struct {
	db     *gorm.DB
	secret []byte
}

func NewService(db *gorm.DB) *Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "droneops-dev-secret-change-in-production"
	}
	return &Service{db: db, secret: []byte(secret)}
}

// Register creates an inactive viewer account. Someone with approval rights
// has to activate it before the first login succeeds.
func (s *Service) Register(username, password, fullName string) (*User, error) {
	if len(username) < 3 {
		return nil, common.NewValidationError("username must be at least 3 characters")
	}
	if len(password) < 8 {
		return nil, common.NewValidationError("password must be at least 8 characters")
	}

	var count int64
	if err := s.db.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("username %q is already taken", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         RoleViewer,
		IsActive:     false,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and returns a signed token. Inactive accounts are
// rejected with the same message as bad credentials to avoid enumeration.
func (s *Service) Login(username, password string) (string, *User, error) {
	var user User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return "", nil, common.NewValidationError("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.NewValidationError("invalid username or password")
	}
	if !user.IsActive {
		return "", nil, common.NewValidationError("account is awaiting approval")
	}

	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.db.Model(&user).Update("last_login", now)
	return token, &user, nil
}

// ValidateToken parses and verifies a token string.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithLeeway(5*time.Minute))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}

// Approve activates a pending account and optionally assigns a role.
func (s *Service) Approve(username, role string) (*User, error) {
	var user User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, common.WrapNotFound(err, "user")
	}
	updates := map[string]interface{}{"is_active": true}
	if role != "" {
		if !ValidRole(role) {
			return nil, common.NewValidationError("unknown role %q", role)
		}
		updates["role"] = role
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.IsActive = true
	if role != "" {
		user.Role = role
	}
	return &user, nil
}

// SetRole changes a user's role.
func (s *Service) SetRole(username, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, common.NewValidationError("unknown role %q", role)
	}
	var user User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, common.WrapNotFound(err, "user")
	}
	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}

// ListUsers returns all accounts, pending first.
func (s *Service) ListUsers() ([]User, error) {
	var users []User
	err := s.db.Order("is_active ASC, username ASC").Find(&users).Error
	return users, err
}

// GetUser loads one account by id.
func (s *Service) GetUser(id uuid.UUID) (*User, error) {
	var user User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "user")
	}
	return &user, nil
}
