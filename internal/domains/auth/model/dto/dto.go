package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"comanda/infras/jwt"
	staffModel "comanda/internal/domains/staff/model"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	gModel "comanda/shared/model"
	"comanda/shared/timezone"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin staff"`
}

// ToStaffModel builds an active account; an empty role means plain staff.
func (r *RegisterRequest) ToStaffModel(hashedPassword, actor string, now time.Time) staffModel.Staff {
	role := r.Role
	if role == "" {
		role = constant.RoleStaff
	}

	return staffModel.Staff{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    staffModel.NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		Metadata: gModel.NewMetadata(now, actor),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type StaffResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
	LastLogin *string `json:"last_login"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(staff staffModel.Staff) {
	r.ID = staff.ID
	r.Name = staff.Name
	r.Email = staff.Email
	r.Role = staff.Role
	r.Active = staff.Active
	r.Metadata.FromModel(staff.Metadata)

	if staff.LastLogin != nil {
		lastLogin := timezone.Format(*staff.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	Staff        StaffResponse `json:"staff"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}
