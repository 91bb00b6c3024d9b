package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
)

// AdminUserRepository 관리자 계정 저장소
type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByID(ctx context.Context, id string) (*model.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

// adminUserRepo GORM 구현
type adminUserRepo struct {
	db *gorm.DB
}

// NewAdminUserRepo AdminUserRepository 생성
func NewAdminUserRepo(db *gorm.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	user.UserID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateRecord
		}
		return err
	}
	return nil
}

func (r *adminUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *adminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *adminUserRepo) first(ctx context.Context, query string, arg string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ── MongoDB ──

type mongoAdminUser struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"passwordHash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d *mongoAdminUser) toModel() *model.AdminUser {
	u := &model.AdminUser{
		UserID:       d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
	}
	u.CreatedAt = d.CreatedAt
	return u
}

type mongoAdminUserRepo struct {
	collection *mongo.Collection
}

// NewMongoAdminUserRepo admin_users 컬렉션 저장소
func NewMongoAdminUserRepo(collection *mongo.Collection) AdminUserRepository {
	return &mongoAdminUserRepo{collection: collection}
}

func (r *mongoAdminUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	user.UserID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	if n, err := r.collection.CountDocuments(ctx, bson.M{"email": user.Email}); err != nil {
		return err
	} else if n > 0 {
		return apperrors.ErrDuplicateRecord
	}

	_, err := r.collection.InsertOne(ctx, mongoAdminUser{
		ID:           user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	})
	return err
}

func (r *mongoAdminUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoAdminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoAdminUserRepo) findOne(ctx context.Context, filter bson.M) (*model.AdminUser, error) {
	var doc mongoAdminUser
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}
