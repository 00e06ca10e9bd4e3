package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	GetRole(ctx context.Context, id string) (string, error)
	ManagementEmails(ctx context.Context) ([]string, error)
	AdjustAvailableLeaves(ctx context.Context, id string, delta int) error
	Update(ctx context.Context, empl *Employee) error
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "email = ?", email).Error
	return &empl, err
}

func (r *repository) GetRole(ctx context.Context, id string) (string, error) {
	var role string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("role").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Scan(&role).Error
	return role, err
}

// ManagementEmails lists the addresses of active employees in a management
// role, the recipient set for leave status-change mail.
func (r *repository) ManagementEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("role IN ?", ManagementRoles).
		Where("deleted_at IS NULL").
		Order("email ASC").
		Pluck("email", &emails).Error
	return emails, err
}

// AdjustAvailableLeaves applies a signed day delta with a single atomic
// UPDATE so concurrent transitions for the same employee never lose writes.
func (r *repository) AdjustAvailableLeaves(ctx context.Context, id string, delta int) error {
	query := `
        UPDATE employees
        SET available_leaves = available_leaves + $2, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, id, delta)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, id, delta).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
