package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
)

// mongoBookingRepo BookingRepository 의 MongoDB 구현
type mongoBookingRepo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoBookingRepo schedules 컬렉션에 묶인 저장소
func NewMongoBookingRepo(client *mongo.Client, collection *mongo.Collection) BookingRepository {
	return &mongoBookingRepo{client: client, collection: collection}
}

var bookingSort = bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}}

func coreFields(b *model.Booking) bson.M {
	return bson.M{
		"date":      b.Date,
		"studio":    b.Studio,
		"company":   b.Company,
		"product":   b.Product,
		"purpose":   b.Purpose,
		"start":     b.Start,
		"end":       b.End,
		"updatedAt": time.Now().UTC(),
	}
}

func (r *mongoBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, b)
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) Update(ctx context.Context, b *model.Booking) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": b.ID}, bson.M{"$set": coreFields(b)})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func surveyUpdate(s *model.Survey) bson.M {
	if s == nil {
		return bson.M{
			"$unset": bson.M{"survey": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	}
	return bson.M{"$set": bson.M{"survey": s, "updatedAt": time.Now().UTC()}}
}

func (r *mongoBookingRepo) SetSurvey(ctx context.Context, id string, s *model.Survey) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, surveyUpdate(s))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (r *mongoBookingRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]model.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bookingSort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := make([]model.Booking, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *mongoBookingRepo) ListByDateRange(ctx context.Context, from, to string) ([]model.Booking, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}})
}

func (r *mongoBookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepo) CommitImport(ctx context.Context, adds, replacements []model.Booking) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("세션 시작 실패: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	for i := range adds {
		adds[i].ID = uuid.NewString()
		adds[i].CreatedAt = now
		adds[i].UpdatedAt = now
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if len(adds) > 0 {
			docs := make([]interface{}, len(adds))
			for i := range adds {
				docs[i] = adds[i]
			}
			if _, err := r.collection.InsertMany(sc, docs); err != nil {
				return nil, fmt.Errorf("예약 추가 실패: %w", err)
			}
		}

		for i := range replacements {
			rep := &replacements[i]
			update := surveyUpdate(rep.Survey)
			set := update["$set"].(bson.M)
			for k, v := range coreFields(rep) {
				set[k] = v
			}
			result, err := r.collection.UpdateOne(sc, bson.M{"_id": rep.ID}, update)
			if err != nil {
				return nil, fmt.Errorf("예약 갱신 실패 (id=%s): %w", rep.ID, err)
			}
			if result.MatchedCount == 0 {
				return nil, fmt.Errorf("예약 갱신 실패 (id=%s): %w", rep.ID, apperrors.ErrRecordNotFound)
			}
		}
		return nil, nil
	})
	return err
}
