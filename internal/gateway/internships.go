package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// InternshipsService handles the internship catalogue.
type InternshipsService struct {
	client *Client
}

// ListParams filters the public listing. Zero values are omitted.
type ListParams struct {
	Page      int
	PerPage   int
	Search    string
	Location  string
	Type      string
	CompanyID int64
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Location != "" {
		q.Set("location", p.Location)
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.CompanyID > 0 {
		q.Set("company_id", strconv.FormatInt(p.CompanyID, 10))
	}
	return q
}

type internshipEnvelope struct {
	Internship *Internship `json:"internship"`
}

// List returns one page of active internships.
func (s *InternshipsService) List(ctx context.Context, params ListParams) (*InternshipPage, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/internships", Query: params.values()})
	if err != nil {
		return nil, err
	}

	page := &InternshipPage{}
	if len(resp.Data) > 0 && resp.Data[0] == '[' {
		if err := resp.Decode(&page.Internships); err != nil {
			return nil, err
		}
		page.Total = int64(len(page.Internships))
		page.Page, page.Pages, page.PerPage = 1, 1, len(page.Internships)
		return page, nil
	}
	if err := resp.Decode(page); err != nil {
		return nil, err
	}
	return page, nil
}

// Get returns one internship.
func (s *InternshipsService) Get(ctx context.Context, id int64) (*Internship, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/internships/%d", id)})
	if err != nil {
		return nil, err
	}
	return decodeInternship(resp)
}

// Create posts a new internship (company accounts).
func (s *InternshipsService) Create(ctx context.Context, in InternshipInput) (*Internship, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodPost, Path: "/internships", Body: in})
	if err != nil {
		return nil, err
	}
	return decodeInternship(resp)
}

// Update edits an internship owned by the caller.
func (s *InternshipsService) Update(ctx context.Context, id int64, in InternshipInput) (*Internship, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodPut, Path: fmt.Sprintf("/internships/%d", id), Body: in})
	if err != nil {
		return nil, err
	}
	return decodeInternship(resp)
}

// Delete removes an internship.
func (s *InternshipsService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/internships/%d", id))
}

// Mine lists the calling company's internships, active or not.
func (s *InternshipsService) Mine(ctx context.Context) ([]Internship, error) {
	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/internships/my"})
	if err != nil {
		return nil, err
	}
	var out []Internship
	if err := decodeList(resp.Data, "internships", &out); err != nil {
		return nil, fmt.Errorf("failed to parse internships: %w", err)
	}
	return out, nil
}

// decodeInternship accepts {"internship": {...}} or the bare object.
func decodeInternship(resp *Response) (*Internship, error) {
	var env internshipEnvelope
	if err := resp.Decode(&env); err == nil && env.Internship != nil {
		return env.Internship, nil
	}
	var in Internship
	if err := resp.Decode(&in); err != nil {
		return nil, err
	}
	return &in, nil
}
