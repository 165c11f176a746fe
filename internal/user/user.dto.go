package user

import "lingoTrackAPI/internal/gamification"

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
}

// ProfileResponse is the body of GET /user: the combined score record
// and gamification profile plus per-activity star ratings.
type ProfileResponse struct {
	User         *User                `json:"user"`
	Gamification gamification.Profile `json:"gamification"`
	Stars        map[string]int       `json:"stars"`
}

// ProgressResponse is the body of GET /progress: the per-language
// progress map.
type ProgressResponse struct {
	Progress map[string]LanguageProgress `json:"progress"`
}
