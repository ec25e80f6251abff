package model

type Movie struct {
	ID       string  `json:"id" bson:"_id" validate:"required"`
	Title    string  `json:"title" bson:"title" validate:"required,min=1,max=200"`
	Director string  `json:"director" bson:"director" validate:"required,min=1,max=100"`
	Rating   float64 `json:"rating" bson:"rating" validate:"gte=0,lte=10"`
}
