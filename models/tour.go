package models

import "time"

// Rating summary defaults for a tour with no reviews. The 4.5 default is a
// business rule, not missing data.
const (
	DefaultRatingsAverage  = 4.5
	DefaultRatingsQuantity = 0
)

// Tour represents a tour package offered on the site.
type Tour struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"` // URL or filename
	Date        string    `bson:"date,omitempty" json:"date,omitempty"`   // "YYYY-MM-DD"
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`

	// Derived fields, written only by the rating engine.
	RatingsAverage  float64 `bson:"ratings_average" json:"ratingsAverage"`
	RatingsQuantity int64   `bson:"ratings_quantity" json:"ratingsQuantity"`
}

// TourInput is the client-writable subset of a tour. It deliberately has no
// rating fields so clients can never set the derived summary.
type TourInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Date        string  `json:"date"`
}

// TourSummary is the minimal projection joined into booking listings.
type TourSummary struct {
	ID    string  `bson:"id" json:"id"`
	Title string  `bson:"title" json:"title"`
	Price float64 `bson:"price" json:"price"`
}
