package user

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin   = "super_admin"
	RoleCompanyAdmin = "company_admin"
	RoleEmployee     = "employee"
)

// MinPasswordLength is enforced on the plaintext before hashing.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `json:"company_id" gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty" gorm:"type:uuid;index"`
	Email        string     `json:"email" gorm:"uniqueIndex"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"-"`
	PasswordSalt string     `json:"-"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Active = true

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return u.Validate()
}

func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}

	if !ValidEmail(u.Email) {
		return fmt.Errorf("invalid email address")
	}

	if u.Name == "" {
		return fmt.Errorf("name is required")
	}

	if u.Role == "" {
		u.Role = RoleEmployee
	}

	if !ValidRole(u.Role) {
		return domain.ErrInvalidRole
	}

	return nil
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleEmployee:
		return true
	}
	return false
}

// SetPassword stores a salted sha256 digest of the password.
func (u *User) SetPassword(password string) error {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	u.PasswordSalt = hex.EncodeToString(salt)
	u.PasswordHash = hashPassword(password, u.PasswordSalt)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || u.PasswordSalt == "" {
		return false
	}
	candidate := hashPassword(password, u.PasswordSalt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(u.PasswordHash)) == 1
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

func (u *User) TableName() string {
	return "public.users"
}
