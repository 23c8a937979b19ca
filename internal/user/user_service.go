package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	autherrors "go-cpq/internal/auth/errors"
	"go-cpq/internal/domain"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"
	usererrors "go-cpq/internal/user/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	IDExists(ctx context.Context, id string) (bool, error)

	Register(ctx context.Context, userID, tokenEmail string, req RegisterRequest) (UserResponse, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)
	UpdateMe(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
	UpdateColumns(ctx context.Context, userID string, req UpdateColumnsRequest) (UserResponse, error)

	GetCompanyUsers(ctx context.Context, companyName string) ([]UserResponse, error)
	AssignRole(ctx context.Context, companyName, actorID, targetID string, req AssignRoleRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, companyName, actorID, targetID string, isActive bool) (UserResponse, error)

	LoadIdentity(ctx context.Context, userID string) (domain.Identity, error)
}

type service struct {
	tx     database.Transactor
	repo   Repository
	logger *zap.Logger
}

func NewService(tx database.Transactor, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{tx: tx, repo: repo, logger: l}
}

func (s *service) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return false, usererrors.ErrInvalidEmail
	}
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("email exists check failed", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (s *service) IDExists(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, apperror.ErrInvalidID
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("id exists check failed", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// Register creates the profile for the token subject. The first profile of a
// company becomes its active admin. Later ones start as inactive sales until
// an admin of that company activates them.
func (s *service) Register(ctx context.Context, userID, tokenEmail string, req RegisterRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	email := strings.TrimSpace(tokenEmail)
	if email == "" {
		email = strings.TrimSpace(req.Email)
	}
	if email == "" {
		return UserResponse{}, usererrors.ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return UserResponse{}, usererrors.ErrInvalidEmail
	}

	companyName := strings.TrimSpace(req.CompanyName)
	u := &User{
		ID:             userID,
		Email:          strings.ToLower(email),
		Name:           strings.TrimSpace(req.Name),
		CompanyName:    companyName,
		Designation:    strings.TrimSpace(req.Designation),
		Phone:          strings.TrimSpace(req.Phone),
		VisibleColumns: []string{},
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockCompany(ctx, companyName); err != nil {
			return err
		}
		count, err := s.repo.CountByCompany(ctx, companyName)
		if err != nil {
			return err
		}
		u.Role = domain.RoleSales
		u.IsActive = false
		if count == 0 {
			u.Role = domain.RoleAdmin
			u.IsActive = true
		}
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		l.Error("register user failed", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("company_name", u.CompanyName),
		zap.String("role", u.Role),
		zap.Bool("is_active", u.IsActive),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateMe(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Name = strings.TrimSpace(req.Name)
	u.Designation = strings.TrimSpace(req.Designation)
	u.Phone = strings.TrimSpace(req.Phone)

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update profile failed", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateColumns(ctx context.Context, userID string, req UpdateColumnsRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	cols := make([]string, 0, len(req.VisibleColumns))
	seen := make(map[string]struct{}, len(req.VisibleColumns))
	for _, c := range req.VisibleColumns {
		c = strings.TrimSpace(c)
		if _, dup := seen[c]; dup || c == "" {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	u.VisibleColumns = cols

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update visible columns failed", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetCompanyUsers(ctx context.Context, companyName string) ([]UserResponse, error) {
	users, err := s.repo.FindAllByCompany(ctx, companyName)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get company users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res, nil
}

func (s *service) AssignRole(ctx context.Context, companyName, actorID, targetID string, req AssignRoleRequest) (UserResponse, error) {
	if !domain.IsValidRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if actorID == targetID {
		return UserResponse{}, usererrors.ErrSelfRoleChange
	}

	u, err := s.findInCompany(ctx, companyName, targetID)
	if err != nil {
		return UserResponse{}, err
	}

	u.Role = req.Role
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("assign role failed", zap.String("user_id", targetID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("role assigned",
		zap.String("actor_id", actorID),
		zap.String("user_id", targetID),
		zap.String("role", req.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, companyName, actorID, targetID string, isActive bool) (UserResponse, error) {
	if actorID == targetID {
		return UserResponse{}, usererrors.ErrSelfRoleChange
	}

	u, err := s.findInCompany(ctx, companyName, targetID)
	if err != nil {
		return UserResponse{}, err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("toggle user status failed", zap.String("user_id", targetID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// LoadIdentity backs the CurrentUser middleware.
func (s *service) LoadIdentity(ctx context.Context, userID string) (domain.Identity, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, usererrors.ErrUserNotFound) {
			return domain.Identity{}, autherrors.ErrProfileNotFound
		}
		return domain.Identity{}, mapped
	}

	return domain.Identity{
		UserID:      u.ID,
		Email:       u.Email,
		CompanyName: u.CompanyName,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}, nil
}

func (s *service) findInCompany(ctx context.Context, companyName, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, u.CompanyName); err != nil {
		return nil, err
	}
	return u, nil
}

func mapToResponse(u User) UserResponse {
	cols := []string(u.VisibleColumns)
	if cols == nil {
		cols = []string{}
	}
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		CompanyName:    u.CompanyName,
		Role:           u.Role,
		Designation:    u.Designation,
		Phone:          u.Phone,
		VisibleColumns: cols,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
