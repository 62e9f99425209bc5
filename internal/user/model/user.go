// Package model defines the user entity and its transport types.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold.
const (
	RolePlayer    = "player"
	RoleOrganizer = "organizer"
	RoleViewer    = "viewer"
)

// User is a registered account. Accounts are created by the external
// identity service; this service reads them and lets users edit their profile.
type User struct {
	ID            string    `gorm:"primaryKey;column:id;type:varchar(64)"                                json:"id"`
	Name          string    `gorm:"column:name;type:varchar(255);not null"                               json:"name"`
	Email         string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Role          string    `gorm:"column:role;type:varchar(32)"                                         json:"role,omitempty"`
	Age           *int      `gorm:"column:age"                                                           json:"age,omitempty"`
	City          string    `gorm:"column:city;type:varchar(255)"                                        json:"city,omitempty"`
	FavoriteSport string    `gorm:"column:favorite_sport;type:varchar(64)"                               json:"favoriteSport,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"                                           json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"                                           json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Profile returns the fields other users may see.
func (u User) Profile() Profile {
	return Profile{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		City:          u.City,
		FavoriteSport: u.FavoriteSport,
	}
}

// Profile is the public view of a user.
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	City          string `json:"city,omitempty"`
	FavoriteSport string `json:"favoriteSport,omitempty"`
}

// Profiles maps users to their public profiles.
func Profiles(users []User) []Profile {
	out := make([]Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}

// ProfilesInOrder returns the profiles of users arranged as ids. Ids with no
// matching user are skipped.
func ProfilesInOrder(ids []string, users []User) []Profile {
	byID := make(map[string]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]Profile, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Profile())
		}
	}
	return out
}
