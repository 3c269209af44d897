package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pillow12360/carfreind-back/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) FindAll(ctx context.Context) ([]domain.Customer, error) {
	var list []domain.Customer
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomerRepo) FindAllWithCars(ctx context.Context) ([]domain.Customer, error) {
	var list []domain.Customer
	if err := r.db.WithContext(ctx).Preload("Cars").Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) FindByIDWithCars(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).Preload("Cars").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		// customers.email carries a unique index; a concurrent create that
		// slipped past the service-level check lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflictf("email %s is already in use", c.Email)
		}
		return err
	}
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.Customer, error) {
	var c domain.Customer
	tx := r.db.WithContext(ctx).Model(&c).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflictf("email is already in use")
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	tx := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&c)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}
