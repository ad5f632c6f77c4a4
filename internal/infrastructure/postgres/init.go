package postgres

import (
	"log"

	"github.com/Tengoku18/thirft-verse-sub001/internal/config"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.TransactionModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.NotificationModel{},
		&models.SellerProfileModel{},
		&models.UnmaterializedPaymentModel{},
	)

	return db
}
