package app

import (
	"net/http"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/pillow12360/carfreind-back/internal/adapters/httpserver"
	"github.com/pillow12360/carfreind-back/internal/adapters/repo/postgres"
	"github.com/pillow12360/carfreind-back/internal/domain"
	"github.com/pillow12360/carfreind-back/internal/usecase"
)

type App struct {
	DB             *gorm.DB
	Customers      domain.CustomerRepo
	CustomerUC     *usecase.CustomerUC
	AllowedOrigins []string
}

func NewApp(db *gorm.DB) (*App, error) {
	custRepo := postgres.NewCustomerRepo(db)

	var origins []string
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &App{
		DB:             db,
		Customers:      custRepo,
		CustomerUC:     &usecase.CustomerUC{Customers: custRepo},
		AllowedOrigins: origins,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CustomerUC, a.AllowedOrigins)
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(&domain.Customer{}, &domain.Car{}); err != nil {
		return err
	}

	// uniqueIndex tag covers fresh databases; existing ones predate it
	_ = a.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(email)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_cars_customer_id ON cars(customer_id)").Error

	return nil
}
