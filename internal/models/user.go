package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single persisted identity record. Email and phone are both
// optional but at least one is set by whichever registration path created
// the document; each carries a sparse unique index.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash    string             `bson:"password_hash,omitempty" json:"-"`
	Name            string             `bson:"name" json:"name"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	ProfilePicture  string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Role            string             `bson:"role,omitempty" json:"role,omitempty"`
	IsEmailVerified bool               `bson:"is_email_verified" json:"isEmailVerified"`
	IsPhoneVerified bool               `bson:"is_phone_verified" json:"isPhoneVerified"`

	// OTP and OTPExpiresAt are set and cleared together; never serialized.
	OTP          string     `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt *time.Time `bson:"otp_expires_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Summary is the per-channel user payload returned by auth endpoints.
// Email flows carry email fields, phone flows carry phone fields.
type Summary struct {
	ID              string `json:"id"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Name            string `json:"name"`
	IsEmailVerified *bool  `json:"isEmailVerified,omitempty"`
	IsPhoneVerified *bool  `json:"isPhoneVerified,omitempty"`
}

// EmailSummary shapes the email-channel response for a user.
func EmailSummary(u *User) *Summary {
	v := u.IsEmailVerified
	return &Summary{
		ID:              u.ID.Hex(),
		Email:           u.Email,
		Name:            u.Name,
		IsEmailVerified: &v,
	}
}

// PhoneSummary shapes the phone-channel response for a user.
func PhoneSummary(u *User) *Summary {
	v := u.IsPhoneVerified
	return &Summary{
		ID:              u.ID.Hex(),
		Phone:           u.Phone,
		Name:            u.Name,
		IsPhoneVerified: &v,
	}
}
