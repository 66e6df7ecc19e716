package entity

import (
	"time"
)

// DefaultDisplayName is shown on rankings for users that never set a name.
const DefaultDisplayName = "Anonymous Player"

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email,omitempty" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	AvatarURL   string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) Name() string {
	if u == nil || u.DisplayName == "" {
		return DefaultDisplayName
	}
	return u.DisplayName
}
