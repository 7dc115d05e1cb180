package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/aph138/residence/internal/entity"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MyPostgres stores rooms and bookings in PostgreSQL through gorm
type MyPostgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*MyPostgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("err when connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&entity.Room{}, &entity.Booking{}); err != nil {
		return nil, fmt.Errorf("err when migrating postgres: %w", err)
	}
	return &MyPostgres{db: db}, nil
}

func (p *MyPostgres) FetchAvailableRooms(ctx context.Context) ([]entity.Room, error) {
	result := []entity.Room{}
	err := p.db.WithContext(ctx).
		Where("available = ?", true).
		Order("price ASC").
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("err when finding rooms %w", err)
	}
	return result, nil
}

func (p *MyPostgres) InsertBooking(ctx context.Context, b *entity.Booking) (*entity.Booking, error) {
	stored := *b
	stored.ID = uuid.NewString()
	stored.RoomName = ""

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room entity.Room
		if err := tx.Select("id", "name").First(&room, "id = ?", stored.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if err := tx.Create(&stored).Error; err != nil {
			return err
		}
		stored.RoomName = room.Name
		return nil
	})
	if errors.Is(err, ErrRoomNotFound) {
		return nil, err
	} else if err != nil {
		return nil, fmt.Errorf("err when inserting booking with postgres: %w", err)
	}
	return &stored, nil
}

func (p *MyPostgres) FindBookings(ctx context.Context, filters ...BookingFilter) ([]entity.Booking, error) {
	f := applyFilters(filters)
	query := p.db.WithContext(ctx).
		Model(&entity.Booking{}).
		Select("bookings.*, COALESCE(rooms.name, '') AS room_name").
		Joins("LEFT JOIN rooms ON rooms.id = bookings.room_id")
	if f.id != "" {
		query = query.Where("bookings.id = ?", f.id)
	}
	if f.email != "" {
		query = query.Where("bookings.email = ?", f.email)
	}

	var result []entity.Booking
	if err := query.Order("bookings.created_at DESC").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("err when finding bookings %w", err)
	}
	return result, nil
}

func (p *MyPostgres) Close(context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
