package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// RecommendationsService returns personalized internship suggestions.
type RecommendationsService struct {
	client *Client
}

// RecommendationParams tunes the result set. Zero values use server defaults.
type RecommendationParams struct {
	Limit    int
	MinScore float64
}

// List returns recommendations for the signed-in student, best first.
func (s *RecommendationsService) List(ctx context.Context, params RecommendationParams) ([]Recommendation, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.MinScore > 0 {
		q.Set("min_score", strconv.FormatFloat(params.MinScore, 'f', -1, 64))
	}

	resp, err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/recommendations", Query: q})
	if err != nil {
		return nil, err
	}

	var out []Recommendation
	if err := decodeList(resp.Data, "recommendations", &out); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return out, nil
}
