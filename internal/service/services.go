package service

import (
	"github.com/MKhiriev/invest-keeper/internal/config"
	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/store"
)

type Services struct {
	AuthService      AuthService
	TwoFactorService TwoFactorService
	AccountService   AccountService
	CategoryService  CategoryService
}

func NewServices(storages *store.Storages, mailer Mailer, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	twoFactor := NewTwoFactorService(storages.UserRepository, mailer, logger)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, twoFactor, cfg.App, logger),
		TwoFactorService: twoFactor,
		AccountService:   NewAccountService(storages.UserRepository, mailer, logger),
		CategoryService:  NewCategoryService(storages.CategoryRepository, logger),
	}
}
