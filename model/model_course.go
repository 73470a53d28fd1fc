package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Course struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Instructor  string        `bson:"instructor" json:"instructor"`
	Credits     int           `bson:"credits" json:"credits"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
