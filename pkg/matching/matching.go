// Package matching scores a resume against a job posting.
//
// Scoring is lexical: both texts are tokenized and compared with cosine
// similarity over term-frequency vectors, computed for three dimensions
// (overall fit, skills alignment, experience alignment) and scaled to 0-100.
package matching

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// JobProfile is the job-side input to the scorer
type JobProfile struct {
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	ExperienceLevel  string
	Skills           []string
}

// Result carries the same fields the application record stores
type Result struct {
	MatchScore      float64
	SkillsMatch     float64
	ExperienceMatch float64
	MatchedSkills   []string
	ExperienceYears *float64
	Education       *string
	Summary         string
	Recommendation  string
}

var yearsRe = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\b`)
var tokenRe = regexp.MustCompile(`[a-z0-9+#.]+`)
var educationRe = regexp.MustCompile(`(?i)\b(ph\.?d|doctorate|master(?:'s)?|m\.?sc|mba|bachelor(?:'s)?|b\.?sc|b\.?eng|associate degree|diploma)\b`)

// AnalyzeResume computes match scores between a resume and a job
func AnalyzeResume(resumeText string, job JobProfile) Result {
	overviewText := joinNonEmpty(job.Title, job.Description, job.Requirements, job.Responsibilities)
	skillsText := joinNonEmpty(strings.Join(job.Skills, " "), job.Title)
	experienceText := joinNonEmpty(job.ExperienceLevel, job.Requirements, job.Title)

	matchScore := similarity(overviewText, resumeText)
	skillsMatch := similarity(skillsText, resumeText)
	experienceMatch := similarity(experienceText, resumeText)

	var recommendation string
	switch {
	case matchScore >= 75:
		recommendation = "strong_yes"
	case matchScore >= 60:
		recommendation = "yes"
	case matchScore >= 45:
		recommendation = "maybe"
	default:
		recommendation = "no"
	}

	summary := fmt.Sprintf(
		"Resume shows %.0f%% alignment with the role. Skills coverage: %.0f%%. Experience alignment: %.0f%%.",
		matchScore, skillsMatch, experienceMatch,
	)

	return Result{
		MatchScore:      matchScore,
		SkillsMatch:     skillsMatch,
		ExperienceMatch: experienceMatch,
		MatchedSkills:   matchedSkills(resumeText, job.Skills),
		ExperienceYears: extractExperienceYears(resumeText),
		Education:       extractEducation(resumeText),
		Summary:         summary,
		Recommendation:  recommendation,
	}
}

// similarity is the cosine of the term-frequency vectors of the two texts,
// scaled to 0-100 and rounded to one decimal.
func similarity(a, b string) float64 {
	va := termFrequencies(a)
	vb := termFrequencies(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, fa := range va {
		normA += fa * fa
		if fb, ok := vb[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range vb {
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	raw := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	raw = math.Max(0, math.Min(1, raw))
	return math.Round(raw*1000) / 10
}

func termFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) <= 2 {
			continue
		}
		freq[tok]++
	}
	return freq
}

// matchedSkills returns the required skills mentioned verbatim in the resume
func matchedSkills(resumeText string, skills []string) []string {
	lower := strings.ToLower(resumeText)
	var matched []string
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			matched = append(matched, s)
		}
	}
	return matched
}

// extractExperienceYears finds the largest "N years" mention, if any
func extractExperienceYears(text string) *float64 {
	var best float64
	found := false
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		var n float64
		fmt.Sscanf(m[1], "%f", &n)
		if !found || n > best {
			best = n
			found = true
		}
	}
	if !found {
		return nil
	}
	return &best
}

// extractEducation returns the first resume line mentioning a degree, if any
func extractEducation(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		if educationRe.MatchString(line) {
			trimmed := strings.TrimSpace(line)
			return &trimmed
		}
	}
	return nil
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
