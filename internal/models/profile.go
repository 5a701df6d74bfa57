package models

import "time"

// Profile is the public record attached to an identity. Its ID equals the
// identity's user id; at most one exists per identity.
type Profile struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	Website       string    `json:"website"`
	Location      string    `json:"location"`
	TwitterHandle string    `json:"twitter_handle"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial profile. Nil fields keep their stored value.
type ProfileUpdate struct {
	DisplayName   *string   `json:"display_name,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Website       *string   `json:"website,omitempty"`
	Location      *string   `json:"location,omitempty"`
	TwitterHandle *string   `json:"twitter_handle,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Apply writes the non-nil fields of u onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.DisplayName, u.DisplayName)
	set(&p.Bio, u.Bio)
	set(&p.AvatarURL, u.AvatarURL)
	set(&p.Website, u.Website)
	set(&p.Location, u.Location)
	set(&p.TwitterHandle, u.TwitterHandle)
	if !u.UpdatedAt.IsZero() {
		p.UpdatedAt = u.UpdatedAt
	}
}
