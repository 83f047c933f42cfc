package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ApplicationsService handles applying and application review.
type ApplicationsService struct {
	client *Client
}

// ApplyRequest is the body for a new application.
type ApplyRequest struct {
	InternshipID int64  `json:"internship_id"`
	CoverLetter  string `json:"cover_letter,omitempty"`
}

type applicationEnvelope struct {
	Application *Application `json:"application"`
}

// Mine lists the student's applications, trying /applications/my and then
// /applications.
func (s *ApplicationsService) Mine(ctx context.Context) ([]Application, error) {
	apps, err := s.list(ctx, "/applications/my")
	if err == nil {
		return apps, nil
	}
	s.client.log.Debug().Err(err).Msg("/applications/my failed, trying /applications")
	return s.list(ctx, "/applications")
}

// ForInternship lists applicants for an internship owned by the caller.
func (s *ApplicationsService) ForInternship(ctx context.Context, internshipID int64) ([]Application, error) {
	return s.list(ctx, fmt.Sprintf("/applications/internship/%d", internshipID))
}

func (s *ApplicationsService) list(ctx context.Context, path string) ([]Application, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	var out []Application
	if err := decodeList(resp.Data, "applications", &out); err != nil {
		return nil, fmt.Errorf("failed to parse applications: %w", err)
	}
	return out, nil
}

// Get returns one application.
func (s *ApplicationsService) Get(ctx context.Context, id int64) (*Application, error) {
	var env applicationEnvelope
	if err := s.client.get(ctx, fmt.Sprintf("/applications/%d", id), nil, &env); err != nil {
		return nil, err
	}
	return requireApplication(env)
}

// Apply submits an application.
func (s *ApplicationsService) Apply(ctx context.Context, req ApplyRequest) (*Application, error) {
	var env applicationEnvelope
	if err := s.client.post(ctx, "/applications/apply", req, &env); err != nil {
		return nil, err
	}
	return requireApplication(env)
}

// UpdateStatus moves an application to a new status (company or admin).
func (s *ApplicationsService) UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) (*Application, error) {
	var env applicationEnvelope
	body := map[string]ApplicationStatus{"status": status}
	if err := s.client.put(ctx, fmt.Sprintf("/applications/%d/status", id), body, &env); err != nil {
		return nil, err
	}
	return requireApplication(env)
}

// Withdraw lets a student pull back a pending application.
func (s *ApplicationsService) Withdraw(ctx context.Context, id int64) (*Application, error) {
	var env applicationEnvelope
	if err := s.client.put(ctx, fmt.Sprintf("/applications/%d/withdraw", id), nil, &env); err != nil {
		return nil, err
	}
	return requireApplication(env)
}

// Delete removes an application.
func (s *ApplicationsService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/applications/%d", id))
}

func requireApplication(env applicationEnvelope) (*Application, error) {
	if env.Application == nil {
		return nil, fmt.Errorf("application missing from response")
	}
	return env.Application, nil
}
