package models

import "time"

type User struct {
	ID         int64     `json:"user_id"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	AvatarURL  string    `json:"avatar_url"`
	CreateTime time.Time `json:"create_time"`
}

// UserProfile is the projection returned to the user about themselves.
type UserProfile struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	AvatarURL string `json:"avatar_url"`
}
