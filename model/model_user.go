package model

import "time"

// User is keyed by the identity provider's uid, stored as _id. The uid never
// changes once the document exists.
type User struct {
	UID        string    `bson:"_id" json:"_id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Role       string    `bson:"role" json:"role"`
	Image      *string   `bson:"image" json:"image"`
	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`

	// VerificationToken is transient: set at creation, removed once consumed.
	// It is never serialized into API responses.
	VerificationToken string `bson:"verificationToken,omitempty" json:"-"`
}

const DefaultRole = "student"
