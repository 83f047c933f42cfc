package dto

import "github.com/futureintern/platform/internal/app/models"

// RecommendationQuery binds the recommendations query string
type RecommendationQuery struct {
	Limit    int     `form:"limit" binding:"omitempty,min=1,max=100"`
	MinScore float64 `form:"min_score" binding:"omitempty,min=0,max=1"`
}

// RecommendationResponse is one scored internship
type RecommendationResponse struct {
	Internship *InternshipResponse `json:"internship"`
	MatchScore float64             `json:"match_score"`
	Breakdown  map[string]float64  `json:"breakdown"`
}

// RecommendationListResponse wraps the recommendations
type RecommendationListResponse struct {
	Recommendations []*RecommendationResponse `json:"recommendations"`
	Total           int                       `json:"total"`
}

// UserStats counts accounts per role
type UserStats struct {
	Total     int64 `json:"total"`
	Students  int64 `json:"students"`
	Companies int64 `json:"companies"`
	Admins    int64 `json:"admins"`
}

// InternshipStats counts internships
type InternshipStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// ApplicationStats counts applications per status
type ApplicationStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// StatsResponse is the admin dashboard aggregate
type StatsResponse struct {
	Users        UserStats            `json:"users"`
	Internships  InternshipStats      `json:"internships"`
	Applications ApplicationStats     `json:"applications"`
	TopCompanies []models.RankedEntry `json:"top_companies"`
	TopStudents  []models.RankedEntry `json:"top_students"`
}

// ImportResult summarizes a bulk internship import
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
