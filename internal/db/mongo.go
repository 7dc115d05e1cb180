package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aph138/residence/internal/entity"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	RoomCollection    = "rooms"
	BookingCollection = "bookings"
)

// MyMongo defines a helper struct for connecting to mongodb database
type MyMongo struct {
	db      *mongo.Database
	timeout time.Duration
}

// Timeout is used as a global timeout for every operation whose context has no deadline.
func NewMongo(address, name string, timeout time.Duration, opt *options.ClientOptions) (*MyMongo, error) {
	if opt == nil {
		opt = options.Client().ApplyURI(address)
	} else {
		opt.ApplyURI(address)
	}
	client, err := mongo.Connect(opt)
	if err != nil {
		return nil, fmt.Errorf("err when connecting to db at %s: %w", address, err)
	}

	// check for connection
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("err when pinging db: %w", err)
	}
	db := client.Database(name)
	if err := createIndices(db); err != nil {
		return nil, fmt.Errorf("err when creating indices: %w", err)
	}
	return &MyMongo{
		db:      db,
		timeout: timeout,
	}, nil
}

// rooms are listed by price and bookings are looked up by email
func createIndices(db *mongo.Database) error {
	roomPriceIndexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "available", Value: 1}, {Key: "price", Value: 1}},
	}
	_, err := db.Collection(RoomCollection).Indexes().CreateOne(context.Background(), roomPriceIndexModel)
	if err != nil {
		return fmt.Errorf("err when creating room price index: %w", err)
	}
	bookingEmailIndexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
	}
	_, err = db.Collection(BookingCollection).Indexes().CreateOne(context.Background(), bookingEmailIndexModel)
	if err != nil {
		return fmt.Errorf("err when creating booking email index: %w", err)
	}
	return nil
}

func (d *MyMongo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

func (d *MyMongo) InsertOne(ctx context.Context, col string, doc any, opts ...options.Lister[options.InsertOneOptions]) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()
	if _, err := d.db.Collection(col).InsertOne(ctx, doc, opts...); err != nil {
		return fmt.Errorf("err when inserting one to %s: %w", col, err)
	}
	return nil
}

func (d *MyMongo) FindOne(ctx context.Context, col string, filter, output any, opts ...options.Lister[options.FindOneOptions]) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()
	if err := d.db.Collection(col).FindOne(ctx, filter, opts...).Decode(output); err != nil {
		return fmt.Errorf("err when finding one from %s: %w", col, err)
	}
	return nil
}

func (d *MyMongo) FetchAvailableRooms(ctx context.Context) ([]entity.Room, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	findOption := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := d.db.Collection(RoomCollection).Find(ctx, bson.M{"available": true}, findOption)
	if err != nil {
		return nil, fmt.Errorf("err when finding rooms %w", err)
	}
	result := []entity.Room{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("err when decoding rooms %w", err)
	}
	return result, nil
}

func (d *MyMongo) InsertBooking(ctx context.Context, b *entity.Booking) (*entity.Booking, error) {
	var room entity.Room
	err := d.FindOne(ctx, RoomCollection, bson.M{"_id": b.RoomID}, &room, options.FindOne().SetProjection(bson.M{"name": 1}))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRoomNotFound
	} else if err != nil {
		return nil, err
	}

	stored := *b
	stored.ID = uuid.NewString()
	stored.RoomName = ""
	if err := d.InsertOne(ctx, BookingCollection, stored); err != nil {
		return nil, fmt.Errorf("err when inserting booking with mongodb: %w", err)
	}
	stored.RoomName = room.Name
	return &stored, nil
}

func (d *MyMongo) FindBookings(ctx context.Context, filters ...BookingFilter) ([]entity.Booking, error) {
	f := applyFilters(filters)
	match := bson.M{}
	if f.id != "" {
		match["_id"] = f.id
	}
	if f.email != "" {
		match["email"] = f.email
	}

	// join the room name the same way the relational store does with LEFT JOIN
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: RoomCollection},
			{Key: "localField", Value: "room_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "room"},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "room_name", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$room.name", 0}}}, "",
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "room", Value: 0}}}},
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()
	cursor, err := d.db.Collection(BookingCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("err when aggregating bookings %w", err)
	}
	var result []entity.Booking
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("err when decoding bookings %w", err)
	}
	return result, nil
}

func (d *MyMongo) Close(ctx context.Context) error {
	return d.db.Client().Disconnect(ctx)
}
