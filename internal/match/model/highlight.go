package model

import (
	"time"

	userModel "github.com/festy23/street_sports/internal/user/model"
)

// MediaType is the kind of media a highlight carries.
type MediaType string

// Highlight media kinds.
const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// Highlight is a photo or video published for a match. The media itself
// lives on the media host; only its reference is kept.
type Highlight struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"                                json:"id"`
	MatchID     string    `gorm:"column:match_id;type:varchar(64);not null;index:idx_highlights_match" json:"matchId"`
	Title       string    `gorm:"column:title;type:varchar(200);not null"                              json:"title"`
	Description string    `gorm:"column:description;type:text"                                        json:"description,omitempty"`
	MediaType   MediaType `gorm:"column:media_type;type:varchar(16);not null"                          json:"mediaType"`
	PublicID    string    `gorm:"column:public_id;type:varchar(255);not null"                          json:"publicId"`
	URL         string    `gorm:"column:url;type:text;not null"                                        json:"url"`
	AuthorID    string    `gorm:"column:created_by;type:varchar(64);not null"                          json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"                                           json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Highlight) TableName() string {
	return "highlights"
}

// CreateHighlightRequest is the body of POST /events/:eventId/matches/:matchId/highlights.
type CreateHighlightRequest struct {
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	MediaType   MediaType `json:"mediaType"   binding:"required,oneof=photo video"`
	PublicID    string    `json:"publicId"    binding:"required,max=255"`
	URL         string    `json:"url"         binding:"required,url"`
}

// HighlightView is a highlight with its author resolved.
type HighlightView struct {
	Highlight
	CreatedBy userModel.Profile `json:"createdBy"`
}
