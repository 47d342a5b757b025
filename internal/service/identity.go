package service

import (
	"errors"
	"strings"
	"time"

	"expense-tracker-backend/internal/models"
	"expense-tracker-backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity handles account registration, credential checks and token
// issuance. Passwords are stored as bcrypt hashes only.
type Identity struct {
	db         *gorm.DB
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewIdentity(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *Identity {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Identity{
		db:         db,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account. Email must be unique.
func (s *Identity) Register(in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, Validation("Email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ?", in.Email).
		Count(&count).Error; err != nil {
		return nil, Internal("query user", err)
	}
	if count > 0 {
		return nil, Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, Internal("hash password", err)
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		// the unique index can still fire when two registrations race
		// past the count check
		if isUniqueViolation(err) {
			return nil, Conflict("User with this email already exists")
		}
		return nil, Internal("create user", err)
	}
	return &user, nil
}

// isUniqueViolation reports whether err is the store's duplicate-key error.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

type LoginInput struct {
	Email    string
	Password string
}

// Login checks credentials and issues a signed bearer token embedding the
// user's id and email.
func (s *Identity) Login(in LoginInput) (*models.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, "", Validation("Email and password are required")
	}

	var user models.User
	if err := s.db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NotFound("User not found")
		}
		return nil, "", Internal("query user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", Auth("Invalid credentials")
	}

	token, err := util.GenerateToken(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, "", Internal("sign token", err)
	}
	return &user, token, nil
}

// VerifyToken validates a bearer token and returns the embedded claims.
func (s *Identity) VerifyToken(token string) (*util.Claims, error) {
	if token == "" {
		return nil, Auth("Missing or invalid token")
	}
	claims, err := util.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, Auth("Invalid/expired token")
	}
	return claims, nil
}

// GetUser returns one user without the credential field.
func (s *Identity) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, Internal("query user", err)
	}
	return &user, nil
}

// ListUsers returns all users without credential fields.
func (s *Identity) ListUsers() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, Internal("query users", err)
	}
	return users, nil
}
