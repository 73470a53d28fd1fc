package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Caption   string        `bson:"caption" json:"caption"`
	Author    string        `bson:"author" json:"author"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	Likes     []string      `bson:"likes" json:"likes"`
	Comments  []Comment     `bson:"comments" json:"comments"`
	FileURL   *string       `bson:"fileUrl" json:"fileUrl"`
	FileType  *string       `bson:"fileType" json:"fileType"`
}

// Comment lives embedded in its post; it has no identity of its own.
type Comment struct {
	User string    `bson:"user" json:"user"`
	Text string    `bson:"text" json:"text"`
	Time time.Time `bson:"time" json:"time"`
}
