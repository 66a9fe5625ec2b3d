package usecase

import (
	"context"
	"errors"
	"strings"

	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/metrics"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error)
}

type authService struct {
	repo *repository.Repository // user & login attempt
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		log:  log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.ValidationFields("Datos de registro inválidos", errs)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperror.Validation("Nombre y contraseña son requeridos")
	}

	// 2. Normalisasi role
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return nil, apperror.Validation("Rol inválido. Valores permitidos: CUSTOMER, ESTABLISHMENT, COURIER")
	}

	// 3. Profile sesuai role
	profile, err := buildProfile(role, req.Profile)
	if err != nil {
		s.log.Warn("Invalid profile", zap.Error(err), zap.String("role", string(role)))
		return nil, apperror.Validation(err.Error())
	}

	// 4. Cek email sudah terdaftar
	email := normalizeEmail(req.Email)
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, apperror.Store("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("El email ya está registrado")
	}

	// 5. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Store("failed to process password", err)
	}

	// 6. Save user
	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        utils.NilIfBlank(req.Phone),
		PasswordHash: hashed,
		Role:         role,
		Profile:      profile,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.Conflict("El email ya está registrado")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, apperror.Store("failed to create account", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return response.UserToResponse(user), nil
}

// normalizeEmail lower-cases the address; uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// buildProfile decodes the optional profile for role. Establishments always get their
// defaults applied; the other variants are only checked when a profile was sent.
func buildProfile(role entity.UserRole, raw []byte) (entity.Profile, error) {
	profile, err := entity.DecodeProfile(role, raw)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	provided := trimmed != "" && trimmed != "null"
	if provided || role == entity.RoleEstablishment {
		if err := profile.Normalize(); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *authService) Authenticate(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.ValidationFields("Email y contraseña son requeridos", errs)
	}

	var expected entity.UserRole
	if strings.TrimSpace(req.Role) != "" {
		role, ok := entity.ParseRole(req.Role)
		if !ok {
			return nil, apperror.Validation("Rol inválido. Valores permitidos: CUSTOMER, ESTABLISHMENT, COURIER")
		}
		expected = role
	}

	// 2. Find active user
	email := normalizeEmail(req.Email)
	user, err := s.repo.User.FindActiveByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, apperror.Store("failed to find user", err)
	}

	// 3. Check password
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		var userID *int64
		if user != nil {
			userID = &user.ID
		}
		s.recordAttempt(ctx, userID, email, req.IP, false)
		s.log.Warn("Invalid credentials", zap.String("email", email))
		return nil, apperror.Authentication("Credenciales inválidas")
	}

	// 4. Role mismatch is reported apart from bad credentials
	if expected != "" && expected != user.Role {
		s.recordAttempt(ctx, &user.ID, email, req.IP, false)
		s.log.Warn("Role mismatch on login",
			zap.Int64("user_id", user.ID),
			zap.String("expected_role", string(expected)),
			zap.String("role", string(user.Role)),
		)
		return nil, apperror.Authorization("El usuario no tiene el rol " + string(expected))
	}

	s.recordAttempt(ctx, &user.ID, email, req.IP, true)

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return response.UserToResponse(user), nil
}

// recordAttempt is best-effort: a failed audit write never changes the login outcome.
func (s *authService) recordAttempt(ctx context.Context, userID *int64, email, ip string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	metrics.RecordLoginAttempt(outcome)

	attempt := &entity.LoginAttempt{
		UserID:  userID,
		Email:   email,
		IP:      ip,
		Success: success,
	}
	if err := s.repo.LoginAttempt.Create(ctx, attempt); err != nil {
		s.log.Warn("Failed to record login attempt", zap.Error(err), zap.String("email", email))
	}
}
