// Package matching scores how well a student fits an internship.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/futureintern/platform/internal/app/models"
)

// Factor weights. They sum to 1.
const (
	SkillsWeight       = 0.4
	MajorWeight        = 0.3
	LocationWeight     = 0.15
	AvailabilityWeight = 0.15
)

// Breakdown keys
const (
	FactorSkills       = "skills"
	FactorMajor        = "major"
	FactorLocation     = "location"
	FactorAvailability = "availability"
)

// Result is one scored internship
type Result struct {
	Internship *models.Internship
	Score      float64
	Breakdown  map[string]float64
}

// Score computes the weighted match score and the per-factor breakdown
func Score(student *models.User, internship *models.Internship) (float64, map[string]float64) {
	breakdown := map[string]float64{
		FactorSkills:   skillScore(student.Skills, internship.RequiredSkills),
		FactorMajor:    majorScore(models.StringValue(student.Major), models.StringValue(internship.RequiredMajor)),
		FactorLocation: locationScore(models.StringValue(student.Location), models.StringValue(internship.Location)),
		// No availability data is collected yet
		FactorAvailability: 0,
	}

	score := breakdown[FactorSkills]*SkillsWeight +
		breakdown[FactorMajor]*MajorWeight +
		breakdown[FactorLocation]*LocationWeight +
		breakdown[FactorAvailability]*AvailabilityWeight

	return round(score), breakdown
}

// Rank scores every internship, drops those below minScore or in exclude,
// and returns at most limit results ordered best first.
func Rank(student *models.User, internships []*models.Internship, exclude map[int64]bool, minScore float64, limit int) []Result {
	results := make([]Result, 0, len(internships))
	for _, in := range internships {
		if exclude[in.ID] {
			continue
		}
		score, breakdown := Score(student, in)
		if score < minScore {
			continue
		}
		results = append(results, Result{Internship: in, Score: score, Breakdown: breakdown})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func skillScore(have, required []string) float64 {
	if len(required) == 0 {
		return 1
	}

	owned := make(map[string]bool, len(have))
	for _, s := range have {
		owned[normalize(s)] = true
	}

	matched := 0
	for _, s := range required {
		if owned[normalize(s)] {
			matched++
		}
	}
	return round(float64(matched) / float64(len(required)))
}

func majorScore(studentMajor, requiredMajor string) float64 {
	required := normalize(requiredMajor)
	if required == "" {
		return 1
	}
	major := normalize(studentMajor)
	if major == "" {
		return 0
	}
	if strings.Contains(major, required) || strings.Contains(required, major) {
		return 1
	}
	return 0
}

func locationScore(studentLocation, internshipLocation string) float64 {
	target := normalize(internshipLocation)
	if target == "" || strings.Contains(target, "remote") {
		return 1
	}
	loc := normalize(studentLocation)
	if loc == "" {
		return 1
	}
	if strings.Contains(loc, target) || strings.Contains(target, loc) {
		return 1
	}
	return 0
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}
