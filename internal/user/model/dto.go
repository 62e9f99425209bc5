package model

// UpdateProfileRequest is the body of PUT /users/me. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Age           *int    `json:"age"`
	City          *string `json:"city"          binding:"omitempty,max=255"`
	FavoriteSport *string `json:"favoriteSport" binding:"omitempty,max=64"`
	Role          *string `json:"role"`
}

// ProfileResponse wraps a full user record for its owner.
type ProfileResponse struct {
	User User `json:"user"`
}
