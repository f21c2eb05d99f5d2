package landing

import (
	"strconv"

	"github.com/ericzhangohoh/caplet/internal/domain"
)

// featuredCount courses shown on the landing page
const featuredCount = 3

// Stat a hero badge
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Stats figures derived from the course list
type Stats struct {
	CourseCount int              `json:"course_count"`
	LessonCount int              `json:"lesson_count"`
	Featured    []*domain.Course `json:"-"`
}

// ComputeStats .
func ComputeStats(courses []*domain.Course) Stats {
	stats := Stats{CourseCount: len(courses)}
	for _, c := range courses {
		stats.LessonCount += c.LessonCount()
	}
	if len(courses) > featuredCount {
		courses = courses[:featuredCount]
	}
	stats.Featured = courses
	return stats
}

// Badges hero badges, zero counts read as "Growing" and "Updated weekly"
func (s Stats) Badges() []Stat {
	return []Stat{
		{Label: "Courses", Value: countOr(s.CourseCount, "Growing")},
		{Label: "Lesson library", Value: countOr(s.LessonCount, "Updated weekly")},
		{Label: "Access", Value: "Free for students"},
	}
}

func countOr(n int, fallback string) string {
	if n == 0 {
		return fallback
	}
	return strconv.Itoa(n)
}
