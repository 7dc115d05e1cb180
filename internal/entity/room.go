package entity

// Room defines a bookable room
type Room struct {
	ID          string  `json:"id" bson:"_id" gorm:"primaryKey"`
	Name        string  `json:"name" bson:"name" gorm:"not null"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price" gorm:"index"`
	Capacity    int     `json:"capacity" bson:"capacity"`
	ImageURL    string  `json:"image_url" bson:"image_url"`
	Available   bool    `json:"available" bson:"available" gorm:"default:true"`
}
