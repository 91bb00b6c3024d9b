package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
)

// Repository 저장소 집합
type Repository struct {
	Booking BookingRepository
	Admin   AdminUserRepository
}

// NewRepository PostgreSQL(GORM) 기반 저장소
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Booking: NewBookingRepo(db),
		Admin:   NewAdminUserRepo(db),
	}
}

// NewMongoRepository MongoDB 기반 저장소
func NewMongoRepository(client *mongo.Client, cfg *config.MongoConfig) *Repository {
	db := client.Database(cfg.Database)
	return &Repository{
		Booking: NewMongoBookingRepo(client, db.Collection(cfg.Collection)),
		Admin:   NewMongoAdminUserRepo(db.Collection("admin_users")),
	}
}
