package database

import (
	"context"
	"errors"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.MenuItem{},
		&models.StaffUser{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.DeliveryConfirmation{},
		&models.DeliveryNotification{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Info("Database migration completed")
	return nil
}

// Setup migrates and, when asked, seeds the menu.
func Setup(ctx context.Context, db *gorm.DB, seedMenu bool) error {
	if err := Migrate(db); err != nil {
		return err
	}
	if seedMenu {
		return SeedMenu(ctx, db)
	}
	return nil
}

// translate maps gorm errors onto the service's error kinds.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound("%s", notFound)
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.Internal(err)
}
