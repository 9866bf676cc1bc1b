package routing

import (
	"math/rand"
	"testing"

	"radiant/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffMember(id string) models.Staff {
	return models.Staff{ID: id, Name: "Staff " + id, Role: "injector", Bookable: true}
}

func TestResolveWeightsSpecificity(t *testing.T) {
	staff := []models.Staff{staffMember("s1")}

	tests := []struct {
		name  string
		rules []models.RoutingRule
		want  int
	}{
		{
			name: "no rules falls back to baseline",
			want: BaselineWeight,
		},
		{
			name: "global rule applies everywhere",
			rules: []models.RoutingRule{
				{ID: "r1", StaffID: "s1", Weight: 10, Active: true},
			},
			want: 10,
		},
		{
			name: "service+location beats service-only",
			rules: []models.RoutingRule{
				{ID: "r1", StaffID: "s1", ServiceSlug: "botox", Weight: 20, Active: true},
				{ID: "r2", StaffID: "s1", ServiceSlug: "botox", LocationKey: "westfield", Weight: 80, Active: true},
			},
			want: 80,
		},
		{
			name: "service-only beats location-only",
			rules: []models.RoutingRule{
				{ID: "r1", StaffID: "s1", LocationKey: "westfield", Weight: 30, Active: true},
				{ID: "r2", StaffID: "s1", ServiceSlug: "botox", Weight: 60, Active: true},
			},
			want: 60,
		},
		{
			name: "inactive rule is ignored",
			rules: []models.RoutingRule{
				{ID: "r1", StaffID: "s1", ServiceSlug: "botox", LocationKey: "westfield", Weight: 80, Active: false},
				{ID: "r2", StaffID: "s1", Weight: 15, Active: true},
			},
			want: 15,
		},
		{
			name: "rule for a different context does not apply",
			rules: []models.RoutingRule{
				{ID: "r1", StaffID: "s1", ServiceSlug: "filler", Weight: 99, Active: true},
				{ID: "r2", StaffID: "s1", LocationKey: "downtown", Weight: 99, Active: true},
			},
			want: BaselineWeight,
		},
		{
			name: "rule naming another staff member does not apply",
			rules: []models.RoutingRule{
				{ID: "r1", StaffID: "s2", ServiceSlug: "botox", LocationKey: "westfield", Weight: 99, Active: true},
			},
			want: BaselineWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := ResolveWeights(staff, tt.rules, "botox", "westfield")
			require.Len(t, candidates, 1)
			assert.Equal(t, tt.want, candidates[0].Weight)
		})
	}
}

func TestPickDegenerateCases(t *testing.T) {
	rng := func(n int) int { t.Fatal("rng must not be called"); return 0 }

	assert.Nil(t, Pick(nil, "", rng))

	single := []Candidate{{Staff: staffMember("s1"), Weight: 0}}
	pick := Pick(single, "", rng)
	require.NotNil(t, pick)
	assert.Equal(t, "s1", pick.ID)

	// Excluding the only candidate leaves nobody.
	assert.Nil(t, Pick(single, "s1", rng))

	// All-zero weights fall back to the first candidate.
	zeros := []Candidate{
		{Staff: staffMember("s1"), Weight: 0},
		{Staff: staffMember("s2"), Weight: 0},
	}
	pick = Pick(zeros, "", func(n int) int { return 0 })
	require.NotNil(t, pick)
	assert.Equal(t, "s1", pick.ID)
}

func TestPickExclusionRemovesFromPool(t *testing.T) {
	candidates := []Candidate{
		{Staff: staffMember("s1"), Weight: 90},
		{Staff: staffMember("s2"), Weight: 10},
	}
	// Any draw must land on s2 once s1 is excluded.
	for draw := 0; draw < 10; draw++ {
		d := draw
		pick := Pick(candidates, "s1", func(n int) int { return d % n })
		require.NotNil(t, pick)
		assert.Equal(t, "s2", pick.ID)
	}
}

func TestPickCursorWalk(t *testing.T) {
	candidates := []Candidate{
		{Staff: staffMember("s1"), Weight: 30},
		{Staff: staffMember("s2"), Weight: 70},
	}

	tests := []struct {
		cursor int
		want   string
	}{
		{0, "s1"},
		{29, "s1"},
		{30, "s2"},
		{99, "s2"},
	}
	for _, tt := range tests {
		pick := Pick(candidates, "", func(n int) int {
			require.Equal(t, 100, n)
			return tt.cursor
		})
		require.NotNil(t, pick)
		assert.Equal(t, tt.want, pick.ID, "cursor %d", tt.cursor)
	}
}

func TestPickDistributionFollowsWeights(t *testing.T) {
	candidates := []Candidate{
		{Staff: staffMember("heavy"), Weight: 90},
		{Staff: staffMember("light"), Weight: 10},
	}
	rng := rand.New(rand.NewSource(42))

	counts := map[string]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		pick := Pick(candidates, "", rng.Intn)
		require.NotNil(t, pick)
		counts[pick.ID]++
	}

	// Expect roughly a 9:1 split; allow generous slack for the fixed seed.
	assert.Greater(t, counts["heavy"], 8500)
	assert.Less(t, counts["light"], 1500)
	assert.Equal(t, draws, counts["heavy"]+counts["light"])
}
