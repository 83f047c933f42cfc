package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AdminService exposes the admin panel endpoints.
type AdminService struct {
	client *Client
}

// NewUser is the body for admin-created accounts.
type NewUser struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
}

// Users lists accounts, optionally filtered by role.
func (s *AdminService) Users(ctx context.Context, role Role) ([]User, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", string(role))
	}
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/users", Query: q})
	if err != nil {
		return nil, err
	}
	var out []User
	if err := decodeList(resp.Data, "users", &out); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}
	return out, nil
}

// CreateUser creates an account of any role.
func (s *AdminService) CreateUser(ctx context.Context, u NewUser) (*User, error) {
	var env profileEnvelope
	if err := s.client.post(ctx, "/admin/users", u, &env); err != nil {
		return nil, err
	}
	return env.pick()
}

// DeleteUser removes an account and everything it owns.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// Internships lists every internship, active or not.
func (s *AdminService) Internships(ctx context.Context) ([]Internship, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/internships"})
	if err != nil {
		return nil, err
	}
	var out []Internship
	if err := decodeList(resp.Data, "internships", &out); err != nil {
		return nil, fmt.Errorf("failed to parse internships: %w", err)
	}
	return out, nil
}

// DeleteInternship removes any internship.
func (s *AdminService) DeleteInternship(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/internships/%d", id))
}

// Applications lists every application.
func (s *AdminService) Applications(ctx context.Context) ([]Application, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/applications"})
	if err != nil {
		return nil, err
	}
	var out []Application
	if err := decodeList(resp.Data, "applications", &out); err != nil {
		return nil, fmt.Errorf("failed to parse applications: %w", err)
	}
	return out, nil
}

// UpdateApplicationStatus sets the status of any application.
func (s *AdminService) UpdateApplicationStatus(ctx context.Context, id int64, status ApplicationStatus) (*Application, error) {
	var env applicationEnvelope
	body := map[string]ApplicationStatus{"status": status}
	if err := s.client.put(ctx, fmt.Sprintf("/admin/applications/%d/status", id), body, &env); err != nil {
		return nil, err
	}
	return requireApplication(env)
}

// Stats returns the dashboard aggregates.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.client.get(ctx, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PendingCompanies lists company accounts awaiting verification.
func (s *AdminService) PendingCompanies(ctx context.Context) ([]User, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/companies/pending"})
	if err != nil {
		return nil, err
	}
	var out []User
	if err := decodeList(resp.Data, "companies", &out); err != nil {
		return nil, fmt.Errorf("failed to parse companies: %w", err)
	}
	return out, nil
}

// ApproveCompany marks a company as verified.
func (s *AdminService) ApproveCompany(ctx context.Context, id int64) (*User, error) {
	var env profileEnvelope
	if err := s.client.put(ctx, fmt.Sprintf("/admin/companies/%d/approve", id), nil, &env); err != nil {
		return nil, err
	}
	return env.pick()
}

// ImportInternships uploads an .xlsx workbook of internships.
func (s *AdminService) ImportInternships(ctx context.Context, file Upload) (*ImportResult, error) {
	var result ImportResult
	if err := s.client.upload(ctx, "/admin/internships/import", "file", file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
