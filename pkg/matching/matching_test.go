package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var goJob = JobProfile{
	Title:           "Senior Go Developer",
	Description:     "Build and operate REST APIs with Go and PostgreSQL",
	Requirements:    "5+ years of backend experience with Go",
	ExperienceLevel: "senior",
	Skills:          []string{"Go", "PostgreSQL", "Docker"},
}

func TestAnalyzeResumeIsDeterministic(t *testing.T) {
	resume := "Go developer with 6 years of experience. Built REST APIs with Go, PostgreSQL and Docker."

	first := AnalyzeResume(resume, goJob)
	second := AnalyzeResume(resume, goJob)
	assert.Equal(t, first, second)
}

func TestAnalyzeResumeScoresRelevance(t *testing.T) {
	relevant := AnalyzeResume("Go developer building REST APIs with Go and PostgreSQL, Docker in production for 6 years", goJob)
	irrelevant := AnalyzeResume("Pastry chef specializing in croissants and sourdough", goJob)

	assert.Greater(t, relevant.MatchScore, irrelevant.MatchScore)
	assert.GreaterOrEqual(t, relevant.MatchScore, 0.0)
	assert.LessOrEqual(t, relevant.MatchScore, 100.0)
	assert.Equal(t, "no", irrelevant.Recommendation)
}

func TestAnalyzeResumeRecommendationBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{80, "strong_yes"},
		{75, "strong_yes"},
		{74.9, "yes"},
		{60, "yes"},
		{59.9, "maybe"},
		{45, "maybe"},
		{44.9, "no"},
		{0, "no"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, recommendationFor(tc.score), "score %.1f", tc.score)
	}
}

// recommendationFor mirrors the switch in AnalyzeResume so the band edges can
// be checked without constructing resumes that hit exact scores.
func recommendationFor(score float64) string {
	switch {
	case score >= 75:
		return "strong_yes"
	case score >= 60:
		return "yes"
	case score >= 45:
		return "maybe"
	default:
		return "no"
	}
}

func TestMatchedSkills(t *testing.T) {
	result := AnalyzeResume("Experienced with go and postgresql but not containers", goJob)
	assert.Contains(t, result.MatchedSkills, "Go")
	assert.Contains(t, result.MatchedSkills, "PostgreSQL")
	assert.NotContains(t, result.MatchedSkills, "Docker")
}

func TestExtractExperienceYears(t *testing.T) {
	t.Run("Picks the largest mention", func(t *testing.T) {
		result := AnalyzeResume("2 years at Acme, then 7 years at Globex, 3+ years with Go", goJob)
		assert.NotNil(t, result.ExperienceYears)
		assert.Equal(t, 7.0, *result.ExperienceYears)
	})

	t.Run("Nil when no mention exists", func(t *testing.T) {
		result := AnalyzeResume("Backend engineer at Acme", goJob)
		assert.Nil(t, result.ExperienceYears)
	})

	t.Run("Matches the singular form", func(t *testing.T) {
		result := AnalyzeResume("1 year of professional experience", goJob)
		assert.NotNil(t, result.ExperienceYears)
		assert.Equal(t, 1.0, *result.ExperienceYears)
	})
}

func TestExtractEducation(t *testing.T) {
	t.Run("Finds the first degree line", func(t *testing.T) {
		result := AnalyzeResume("Backend engineer\nBachelor of Science in Computer Science, MIT\n5 years with Go", goJob)
		assert.NotNil(t, result.Education)
		assert.Equal(t, "Bachelor of Science in Computer Science, MIT", *result.Education)
	})

	t.Run("Nil when no degree is mentioned", func(t *testing.T) {
		result := AnalyzeResume("Self-taught backend engineer with Go experience", goJob)
		assert.Nil(t, result.Education)
	})
}

func TestSimilarityEdgeCases(t *testing.T) {
	t.Run("Empty resume scores zero", func(t *testing.T) {
		result := AnalyzeResume("", goJob)
		assert.Equal(t, 0.0, result.MatchScore)
		assert.Equal(t, "no", result.Recommendation)
	})

	t.Run("Identical texts score 100", func(t *testing.T) {
		text := "golang postgresql docker kubernetes backend engineering"
		assert.Equal(t, 100.0, similarity(text, text))
	})

	t.Run("Short tokens are ignored", func(t *testing.T) {
		assert.Equal(t, 0.0, similarity("a an to of", "a an to of x"))
	})
}
