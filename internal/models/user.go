package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. The recovery fields are pointers so
// that "no reset outstanding" is an absent field in the document rather than
// a zero value a lookup could accidentally match.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	ResetToken   *string            `bson:"reset_token,omitempty"`
	ResetOTP     *string            `bson:"reset_otp,omitempty"`
	OTPCreated   *time.Time         `bson:"otp_created,omitempty"`
}
