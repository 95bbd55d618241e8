package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a user account with its denormalized relationship
// lists. Followers/Following mirror each other across documents;
// LikedPosts mirrors Post.Likes. SavedPosts is one-directional.
type User struct {
	ID            bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Fullname      string          `bson:"fullname" json:"fullname"`
	Username      string          `bson:"username" json:"username"`
	Email         string          `bson:"email" json:"email"`
	Password      string          `bson:"password" json:"-"` // bcrypt hash
	Role          string          `bson:"role" json:"role"`
	Link          string          `bson:"link" json:"link"`
	ProfileImg    string          `bson:"profileImg" json:"profile_img"`
	CoverImg      string          `bson:"coverImg" json:"cover_img"`
	ProfileImgKey string          `bson:"profileImgKey,omitempty" json:"-"`
	CoverImgKey   string          `bson:"coverImgKey,omitempty" json:"-"`
	Followers     []bson.ObjectID `bson:"followers" json:"followers"`
	Following     []bson.ObjectID `bson:"following" json:"following"`
	Posts         []bson.ObjectID `bson:"posts" json:"posts"`
	LikedPosts    []bson.ObjectID `bson:"likedPosts" json:"liked_posts"`
	SavedPosts    []bson.ObjectID `bson:"savedPosts" json:"saved_posts"`
	CreatedAt     time.Time       `bson:"createdAt" json:"created_at"`
}

// UserSummary is the lightweight projection returned when resolving
// follower/following/liker id lists.
type UserSummary struct {
	ID       bson.ObjectID `bson:"_id" json:"id"`
	Fullname string        `bson:"fullname" json:"fullname"`
	Username string        `bson:"username" json:"username"`
}

// SignupRequest carries the fields needed to create an account.
type SignupRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates by email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login: the account plus a
// signed session token.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateUserRequest patches profile fields. Empty fields leave the
// existing value untouched. Password changes require both fields.
type UpdateUserRequest struct {
	Fullname        string `json:"fullname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ProfileImg      string `json:"profile_img"` // base64 image data, uploaded on change
	CoverImg        string `json:"cover_img"`
	Link            string `json:"link"`
}

// MinPasswordLength applies at signup and on password change.
const MinPasswordLength = 6

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned at signup when the email is taken
	ErrEmailExists = errors.New("email is already taken")

	// ErrUsernameExists is returned at signup when the username is taken
	ErrUsernameExists = errors.New("username is already taken")

	// ErrInvalidEmail is returned when the email fails format validation
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrPasswordTooShort is returned for passwords under MinPasswordLength
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordPairRequired is returned when only one of current/new
	// password was supplied on update
	ErrPasswordPairRequired = errors.New("please provide both current password and new password")

	// ErrWrongPassword is returned when the current password does not match
	ErrWrongPassword = errors.New("current password is incorrect")
)
