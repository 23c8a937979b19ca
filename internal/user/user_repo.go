package user

import (
	"context"

	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAllByCompany(ctx context.Context, companyName string) ([]User, error)
	CountByCompany(ctx context.Context, companyName string) (int64, error)
	LockCompany(ctx context.Context, companyName string) error
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return database.Conn(ctx, r.db).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := database.Conn(ctx, r.db).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string) ([]User, error) {
	var users []User
	err := database.Conn(ctx, r.db).
		Scopes(tenant.Scope(companyName)).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) CountByCompany(ctx context.Context, companyName string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&User{}).
		Scopes(tenant.Scope(companyName)).
		Count(&count).Error
	return count, err
}

// LockCompany serialises registrations of one company until the transaction ends.
func (r *repository) LockCompany(ctx context.Context, companyName string) error {
	return database.Conn(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", companyName).Error
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return database.Conn(ctx, r.db).Save(u).Error
}
