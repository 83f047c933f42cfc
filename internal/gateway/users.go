package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// UsersService covers the signed-in user's profile, documents and saved list.
type UsersService struct {
	client *Client
}

// ProfileUpdate holds the editable profile fields. Nil fields are left alone.
type ProfileUpdate struct {
	Name               *string  `json:"name,omitempty"`
	Bio                *string  `json:"bio,omitempty"`
	Location           *string  `json:"location,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	University         *string  `json:"university,omitempty"`
	Major              *string  `json:"major,omitempty"`
	GPA                *float64 `json:"gpa,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Interests          *string  `json:"interests,omitempty"`
	CompanyName        *string  `json:"company_name,omitempty"`
	CompanyDescription *string  `json:"company_description,omitempty"`
	CompanyWebsite     *string  `json:"company_website,omitempty"`
	CompanyLocation    *string  `json:"company_location,omitempty"`
	Industry           *string  `json:"industry,omitempty"`
}

type profileEnvelope struct {
	Profile *User `json:"profile"`
	User    *User `json:"user"`
}

func (e profileEnvelope) pick() (*User, error) {
	if e.Profile != nil {
		return e.Profile, nil
	}
	if e.User != nil {
		return e.User, nil
	}
	return nil, fmt.Errorf("profile missing from response")
}

// Profile returns the signed-in user's profile.
func (s *UsersService) Profile(ctx context.Context) (*User, error) {
	var env profileEnvelope
	if err := s.client.get(ctx, "/users/profile", nil, &env); err != nil {
		return nil, err
	}
	return env.pick()
}

// UpdateProfile applies a partial update and returns the new profile.
func (s *UsersService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var env profileEnvelope
	if err := s.client.put(ctx, "/users/profile", update, &env); err != nil {
		return nil, err
	}
	return env.pick()
}

// Get returns another user's public profile.
func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	var env profileEnvelope
	if err := s.client.get(ctx, fmt.Sprintf("/users/%d", id), nil, &env); err != nil {
		return nil, err
	}
	return env.pick()
}

// UploadCV sends a CV as multipart field "cv".
func (s *UsersService) UploadCV(ctx context.Context, file Upload) (*User, error) {
	var env profileEnvelope
	if err := s.client.upload(ctx, "/users/upload-cv", "cv", file, &env); err != nil {
		return nil, err
	}
	user, _ := env.pick()
	return user, nil
}

// DeleteCV removes the stored CV.
func (s *UsersService) DeleteCV(ctx context.Context) error {
	return s.client.delete(ctx, "/users/delete-cv")
}

// UploadLogo sends a company logo as multipart field "logo".
func (s *UsersService) UploadLogo(ctx context.Context, file Upload) (*User, error) {
	var env profileEnvelope
	if err := s.client.upload(ctx, "/users/upload-logo", "logo", file, &env); err != nil {
		return nil, err
	}
	user, _ := env.pick()
	return user, nil
}

// DeleteLogo removes the company logo.
func (s *UsersService) DeleteLogo(ctx context.Context) error {
	return s.client.delete(ctx, "/users/delete-logo")
}

// SavedInternships lists bookmarked internships.
func (s *UsersService) SavedInternships(ctx context.Context) ([]Internship, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/users/saved-internships"})
	if err != nil {
		return nil, err
	}
	var out []Internship
	if err := decodeList(resp.Data, "internships", &out); err != nil {
		return nil, fmt.Errorf("failed to parse saved internships: %w", err)
	}
	return out, nil
}

// SaveInternship bookmarks an internship.
func (s *UsersService) SaveInternship(ctx context.Context, internshipID int64) error {
	return s.client.post(ctx, fmt.Sprintf("/users/saved-internships/%d", internshipID), nil, nil)
}

// UnsaveInternship removes a bookmark.
func (s *UsersService) UnsaveInternship(ctx context.Context, internshipID int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/users/saved-internships/%d", internshipID))
}

// IsSaved reports whether an internship is bookmarked.
func (s *UsersService) IsSaved(ctx context.Context, internshipID int64) (bool, error) {
	var resp struct {
		IsSaved bool `json:"is_saved"`
	}
	if err := s.client.get(ctx, fmt.Sprintf("/users/saved-internships/%d/check", internshipID), nil, &resp); err != nil {
		return false, err
	}
	return resp.IsSaved, nil
}
