package model

// Screening is one scheduled showing of a movie. Date is an opaque string
// compared only for equality, never parsed.
type Screening struct {
	MovieID string `json:"movieid" bson:"movieid" validate:"required"`
	Date    string `json:"date" bson:"date" validate:"required"`
	Time    string `json:"time,omitempty" bson:"time,omitempty" validate:"omitempty"`
}
