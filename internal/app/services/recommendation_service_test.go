package services

import (
	"context"
	"testing"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_ExcludesAppliedAndRanks(t *testing.T) {
	users := new(MockUserRepository)
	internships := new(MockInternshipRepository)
	apps := new(MockApplicationRepository)
	svc := NewRecommendationService(users, internships, apps, zerolog.Nop())
	ctx := context.Background()

	student := &models.User{ID: 3, Role: models.RoleStudent, Skills: []string{"Go", "SQL"}, Major: strPtr("Computer Science")}
	list := []*models.Internship{
		{ID: 1, RequiredSkills: []string{"Java"}, RequiredMajor: strPtr("Biology"), Location: strPtr("Cairo"), IsActive: true},
		{ID: 2, RequiredSkills: []string{"Go", "SQL"}, RequiredMajor: strPtr("Computer Science"), IsActive: true},
		{ID: 3, RequiredSkills: []string{"Go"}, IsActive: true},
	}

	users.On("GetByID", ctx, int64(3)).Return(student, nil)
	internships.On("List", ctx, models.InternshipFilter{ActiveOnly: true}, uint64(0), uint64(0)).Return(list, int64(3), nil)
	apps.On("AppliedInternshipIDs", ctx, int64(3)).Return(map[int64]bool{3: true}, nil)

	results, err := svc.Recommend(ctx, 3, 0, 0.5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].Internship.ID)
	assert.InDelta(t, 0.85, results[0].Score, 0.001)
}
