package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:140" json:"name"`
	Email       string    `gorm:"size:140;uniqueIndex" json:"email"`
	PhoneNumber string    `gorm:"size:60" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	Cars        []Car     `gorm:"foreignKey:CustomerID" json:"-"`
}

// Car belongs to the vehicle subsystem; this service only reads it as a
// nested collection of a customer and migrates the table.
type Car struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Brand       string    `gorm:"size:100" json:"brand"`
	Model       string    `gorm:"size:140" json:"model"`
	PlateNumber string    `gorm:"size:20" json:"plate_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerRepo is the persistence boundary for customers. Update and Delete
// report ErrNotFound when id does not resolve; callers still check existence
// first to produce their own messages.
type CustomerRepo interface {
	FindAll(ctx context.Context) ([]Customer, error)
	FindAllWithCars(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDWithCars(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*Customer, error)
	Delete(ctx context.Context, id uuid.UUID) (*Customer, error)
}

// Listing options. Declared for parity with the HTTP surface; listings
// currently always sort by created_at descending and nothing consumes these.
type CustomerFilter struct {
	Name        string
	Email       string
	PhoneNumber string
}

type CustomerSort struct {
	Field     string // name, email, phone_number, created_at
	Direction string // asc, desc
}

type CustomerPage struct {
	Page  int
	Limit int
}
