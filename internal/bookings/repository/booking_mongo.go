package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	bookingserrors "tabletime/internal/bookings/errors"
	"tabletime/pkg/model"
)

const (
	CollectionName = "bookings"

	SlotIndexName = "restaurant_date_time_unique"
	CodeIndexName = "code_unique"
)

// Indexes back the no-double-booking rule at the storage level.
var Indexes = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "restaurant", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().SetName(SlotIndexName).SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName(CodeIndexName).SetUnique(true),
	},
	{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: 1}},
	},
}

type mongoBookingRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoBookingRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) BookingRepository {
	return &mongoBookingRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout caps ctx at timeout without extending an earlier deadline.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	booking.CreatedAt = booking.CreatedAt.UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		if dupErr := translateDuplicateKey(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *mongoBookingRepository) FindBySlot(ctx context.Context, restaurant string, date model.Date, t model.TimeOfDay) (*model.Booking, error) {
	return r.findOne(ctx, bson.M{
		"restaurant": restaurant,
		"date":       date.String(),
		"time":       t.String(),
	})
}

func (r *mongoBookingRepository) findOne(ctx context.Context, filter bson.M) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

// Search returns matches in insertion order, which is _id order for
// driver-generated ObjectIDs.
func (r *mongoBookingRepository) Search(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Date != nil {
		query["date"] = filter.Date.String()
	}
	if filter.Email != nil {
		query["email"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(*filter.Email) + "$",
			"$options": "i",
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) BookedTimes(ctx context.Context, restaurant string, date model.Date) ([]model.TimeOfDay, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	filter := bson.M{"restaurant": restaurant, "date": date.String()}
	opts := options.Find().SetProjection(bson.M{"time": 1, "_id": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked times: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Time model.TimeOfDay `bson:"time"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booked times: %w", err)
	}

	times := make([]model.TimeOfDay, 0, len(rows))
	for _, row := range rows {
		times = append(times, row.Time)
	}
	return times, nil
}

func (r *mongoBookingRepository) UpdateSlot(ctx context.Context, code string, date model.Date, t model.TimeOfDay) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"date": date.String(),
			"time": t.String(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		if dupErr := translateDuplicateKey(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, code string) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}

// translateDuplicateKey maps a unique index violation to the matching
// sentinel, or returns nil when err is not a duplicate key error.
func translateDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if strings.Contains(err.Error(), CodeIndexName) {
		return bookingserrors.ErrDuplicateCode
	}
	return bookingserrors.ErrSlotTaken
}
