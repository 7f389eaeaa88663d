package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusPending     UserStatus = "pending"
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"
	UserStatusDeactivated UserStatus = "deactivated"
)

const bcryptCost = 12

// User represents a user account within a tenant
type User struct {
	shared.TenantAggregateRoot
	Username     string      `gorm:"type:varchar(100);not null;index"`
	Email        string      `gorm:"type:varchar(255);not null;index"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	DisplayName  string      `gorm:"type:varchar(200)"`
	Status       UserStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	RoleIDs      []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user in pending status with a hashed password
func NewUser(tenantID uuid.UUID, username, email, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateUserEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_SERVER_ERROR", "Failed to hash password")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            strings.ToLower(username),
		Email:               strings.ToLower(email),
		PasswordHash:        string(hash),
		Status:              UserStatusPending,
		RoleIDs:             []uuid.UUID{},
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword sets a new password after validation
func (u *User) ChangePassword(password string) error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_SERVER_ERROR", "Failed to hash password")
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()

	return nil
}

// Update changes the user's display name and email
func (u *User) Update(displayName, email string) error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}
	if err := validateUserEmail(email); err != nil {
		return err
	}
	if len(displayName) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Display name cannot exceed 200 characters")
	}

	u.DisplayName = displayName
	u.Email = strings.ToLower(email)
	u.UpdatedAt = time.Now()

	return nil
}

// AssignRoles replaces the user's role assignments
func (u *User) AssignRoles(roleIDs []uuid.UUID) error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(roleIDs))
	unique := make([]uuid.UUID, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Role ID cannot be empty")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	u.RoleIDs = unique
	u.UpdatedAt = time.Now()

	return nil
}

// HasRole reports whether the user is assigned the given role
func (u *User) HasRole(roleID uuid.UUID) bool {
	for _, id := range u.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Activate transitions a pending or deactivated user to active
func (u *User) Activate() error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}
	if u.Status == UserStatusActive {
		return shared.NewDomainError("INVALID_STATE", "User is already active")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()

	return nil
}

// Deactivate disables the user account
func (u *User) Deactivate() error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE", "User is already deactivated")
	}

	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()

	return nil
}

// Lock locks the account, typically after repeated failed logins
func (u *User) Lock() error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}
	if u.Status == UserStatusLocked {
		return shared.NewDomainError("INVALID_STATE", "User is already locked")
	}

	u.Status = UserStatusLocked
	u.UpdatedAt = time.Now()

	return nil
}

// Unlock unlocks a locked account back to active
func (u *User) Unlock() error {
	if err := u.EnsureMutable(); err != nil {
		return err
	}
	if u.Status != UserStatusLocked {
		return shared.NewDomainError("INVALID_STATE", "User is not locked")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()

	return nil
}

// RecordLogin stamps a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive && !u.IsDeleted()
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Username cannot be empty")
	}
	if len(username) < 3 || len(username) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Username must be between 3 and 100 characters")
	}
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("VALIDATION_ERROR", "Username can only contain letters, numbers, dots, hyphens, and underscores")
	}
	return nil
}

func validateUserEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Email cannot be empty")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("VALIDATION_ERROR", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("VALIDATION_ERROR", "Password cannot exceed 72 characters")
	}
	return nil
}
