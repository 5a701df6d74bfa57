package proto

import (
	"time"

	"github.com/dmitrijs2005/blogsync/internal/models"
)

type Empty struct{}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type PostQueryRequest struct {
	Query models.PostQuery `json:"query"`
}

type ListPostsResponse struct {
	Posts []*models.PostRecord `json:"posts"`
}

type CountPostsResponse struct {
	Count int `json:"count"`
}

type InsertPostRequest struct {
	Post *models.PostRecord `json:"post"`
}

type PostResponse struct {
	Post *models.PostRecord `json:"post"`
}

type UpdatePostRequest struct {
	ID       string           `json:"id"`
	AuthorID string           `json:"author_id"`
	Patch    models.PostPatch `json:"patch"`
}

type DeletePostRequest struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
}

type ListCategoriesResponse struct {
	Categories []*models.CategoryRecord `json:"categories"`
}

type GetProfileRequest struct {
	ID string `json:"id"`
}

type UpsertProfileRequest struct {
	ID     string               `json:"id"`
	Update models.ProfileUpdate `json:"update"`
}

type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

type CreateImageUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type ImageUploadResponse struct {
	Upload *models.ImageUpload `json:"upload"`
}
