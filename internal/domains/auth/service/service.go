package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/jwt"
	"comanda/infras/otel"
	"comanda/internal/domains/auth/model/dto"
	staffModel "comanda/internal/domains/staff/model"
	staffRepository "comanda/internal/domains/staff/repository"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/password"
	gRepo "comanda/shared/repository"
	"comanda/shared/timezone"
)

const msgInvalidCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest, actorID string) (dto.StaffResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, staffID string) error
	Me(ctx context.Context, staffID string) (dto.StaffResponse, error)
	EnsureAdmin(ctx context.Context) error
}

type serviceImpl struct {
	staffRepo  staffRepository.Staff
	jwtService jwt.JWT
	clock      timezone.Clock
	cfg        *config.Config
	otel       otel.Otel
}

func New(staffRepo staffRepository.Staff, jwtService jwt.JWT, clock timezone.Clock, cfg *config.Config, otl otel.Otel) Auth {
	return &serviceImpl{
		staffRepo:  staffRepo,
		jwtService: jwtService,
		clock:      clock,
		cfg:        cfg,
		otel:       otl,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest, actorID string) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, err := s.register(ctx, req, actorID)
	if err != nil {
		return res, err
	}

	res.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) register(ctx context.Context, req dto.RegisterRequest, actorID string) (staffModel.Staff, error) {
	exists, err := s.staffRepo.Exist(ctx, staffRepository.ByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return staffModel.Staff{}, fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if exists {
		return staffModel.Staff{}, failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		return staffModel.Staff{}, failure.BadRequest(err)
	}

	staff := req.ToStaffModel(hashedPassword, actorID, s.clock.Now())

	if err = s.staffRepo.Insert(ctx, staff); err != nil {
		if gRepo.IsUniqueViolation(err, staffModel.EmailIndex) {
			return staffModel.Staff{}, failure.Conflict("email already registered")
		}

		log.Error().Err(err).Msg("failed to create staff")

		return staffModel.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}

	log.Info().Str("staff_id", staff.ID).Str("role", staff.Role).Msg("staff account created")

	return staff, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := staffRepository.ByEmail(req.Email)

	staff, err := s.staffRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if !staff.Exists() {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if err = password.Verify(req.Password, staff.Password); err != nil {
		log.Warn().Str("staff_id", staff.ID).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if !staff.Active {
		return res, failure.Forbidden("staff account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, staff.ID, staff.Email, staff.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := s.clock.Now()
	mod := map[string]any{
		staffModel.FieldLastLogin: now,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  staff.ID,
	}

	if err = s.staffRepo.Update(ctx, mod, staffRepository.ByID(staff.ID)); err != nil {
		log.Warn().Err(err).Str("staff_id", staff.ID).Msg("failed to update last login")
	} else {
		staff.LastLogin = &now
	}

	res.FromTokenPair(tokenPair)
	res.Staff.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	staff, err := s.staffRepo.Get(ctx, staffRepository.ByID(claims.StaffID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if !staff.Exists() || !staff.Active {
		return res, failure.Unauthorized("invalid refresh token")
	}

	// role changes since the last login are picked up here
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, staff.ID, staff.Email, staff.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, staffID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := staffRepository.ByID(staffID)

	staff, err := s.staffRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return fmt.Errorf("failed to get staff: %w", err)
	}

	if !staff.Exists() {
		return failure.NotFound("staff not found")
	}

	if err = password.Verify(req.CurrentPassword, staff.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		return failure.BadRequest(err)
	}

	mod := map[string]any{
		staffModel.FieldPassword: hashedPassword,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: staffID,
	}

	if err = s.staffRepo.Update(ctx, mod, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context, staffID string) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, err := s.staffRepo.Get(ctx, staffRepository.ByID(staffID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if !staff.Exists() {
		return res, failure.NotFound("staff not found")
	}

	res.FromModel(staff)

	return res, nil
}

// EnsureAdmin creates the configured bootstrap admin when the email is not registered yet.
func (s *serviceImpl) EnsureAdmin(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.EnsureAdmin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bootstrap := s.cfg.App.Bootstrap
	if bootstrap.AdminEmail == "" || bootstrap.AdminPassword == "" {
		log.Debug().Msg("bootstrap admin not configured")

		return nil
	}

	req := dto.RegisterRequest{
		Name:     bootstrap.AdminName,
		Email:    bootstrap.AdminEmail,
		Password: bootstrap.AdminPassword,
		Role:     constant.RoleAdmin,
	}

	_, err = s.register(ctx, req, constant.ContextSystem)
	if err != nil && failure.GetCode(err) == http.StatusConflict {
		log.Debug().Str("email", bootstrap.AdminEmail).Msg("bootstrap admin already registered")

		return nil
	}

	return err
}
