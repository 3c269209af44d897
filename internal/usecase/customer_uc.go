package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pillow12360/carfreind-back/internal/domain"
)

type CustomerUC struct {
	Customers domain.CustomerRepo
}

// CustomerInput carries the fields a caller may set on create.
type CustomerInput struct {
	Name        string
	Email       string
	PhoneNumber string
}

// CustomerPatch carries the fields a caller may change on update; nil means
// "leave as is".
type CustomerPatch struct {
	Name        *string
	Email       *string
	PhoneNumber *string
}

func (uc *CustomerUC) List(ctx context.Context) ([]domain.Customer, error) {
	return uc.Customers.FindAll(ctx)
}

func (uc *CustomerUC) ListWithCars(ctx context.Context) ([]domain.Customer, error) {
	return uc.Customers.FindAllWithCars(ctx)
}

func (uc *CustomerUC) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, err := uc.Customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("customer with id %s not found", id)
		}
		return nil, err
	}
	return c, nil
}

func (uc *CustomerUC) GetWithCarsByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, err := uc.Customers.FindByIDWithCars(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("customer with id %s not found", id)
		}
		return nil, err
	}
	return c, nil
}

func (uc *CustomerUC) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	existing, err := uc.Customers.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflictf("email %s is already in use", in.Email)
	}

	c := &domain.Customer{
		ID:          uuid.New(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: FormatPhoneNumber(in.PhoneNumber),
	}
	if err := uc.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CustomerUC) Update(ctx context.Context, id uuid.UUID, patch CustomerPatch) (*domain.Customer, error) {
	current, err := uc.Customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("customer with id %s not found", id)
		}
		return nil, err
	}

	if patch.Email != nil && *patch.Email != current.Email {
		existing, err := uc.Customers.FindByEmail(ctx, *patch.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.Conflictf("email %s is already in use", *patch.Email)
		}
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.PhoneNumber != nil {
		fields["phone_number"] = FormatPhoneNumber(*patch.PhoneNumber)
	}
	if len(fields) == 0 {
		return current, nil
	}
	return uc.Customers.Update(ctx, id, fields)
}

func (uc *CustomerUC) Delete(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if _, err := uc.Customers.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("customer with id %s not found", id)
		}
		return nil, err
	}
	return uc.Customers.Delete(ctx, id)
}

// FormatPhoneNumber normalizes Korean mobile numbers to the 010-XXXX-XXXX
// shape. Only 11-digit numbers starting with 010 are rewritten; anything else
// passes through verbatim, so numbers with other carrier prefixes accepted by
// request validation keep whatever shape the caller sent.
func FormatPhoneNumber(phone string) string {
	digits := strings.ReplaceAll(phone, "-", "")
	if len(digits) == 11 && strings.HasPrefix(digits, "010") {
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
	return phone
}
