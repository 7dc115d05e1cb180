package entity

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
)

// Booking defines a booking request as it is persisted.
// RoomName is filled from the rooms collection when reading, it is never stored.
type Booking struct {
	ID              string    `json:"id" bson:"_id" gorm:"primaryKey"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email" gorm:"index"`
	Phone           string    `json:"phone" bson:"phone"`
	IqamaNumber     string    `json:"iqama_number,omitempty" bson:"iqama_number,omitempty"`
	RoomID          string    `json:"room_id" bson:"room_id" gorm:"index"`
	Checkin         string    `json:"checkin" bson:"checkin"`
	Checkout        string    `json:"checkout" bson:"checkout"`
	SpecialRequests string    `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	Status          string    `json:"status" bson:"status" gorm:"default:pending"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	RoomName        string    `json:"room,omitempty" bson:"room_name,omitempty" gorm:"->;-:migration"`
}

// BookingView is what guests get back about a booking
type BookingView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IqamaNumber string `json:"iqama_number,omitempty"`
	Status      string `json:"status"`
	Room        string `json:"room"`
	Checkin     string `json:"checkin"`
	Checkout    string `json:"checkout"`
}

// View returns the guest facing projection of b.
func (b *Booking) View() *BookingView {
	room := b.RoomName
	if room == "" {
		room = "Room " + b.RoomID
	}
	return &BookingView{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		IqamaNumber: b.IqamaNumber,
		Status:      b.Status,
		Room:        room,
		Checkin:     b.Checkin,
		Checkout:    b.Checkout,
	}
}
