package landing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContent(t *testing.T) {
	content, err := LoadContent("")
	require.NoError(t, err)
	assert.Len(t, content.Features, 3)
	assert.Len(t, content.FAQ, 5)

	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
faq:
  - question: Who runs this?
    answer: A small team of teachers.
`), 0600))
	content, err = LoadContent(path)
	require.NoError(t, err)
	assert.Len(t, content.Features, 3, "features keep their defaults")
	require.Len(t, content.FAQ, 1)
	assert.Equal(t, "Who runs this?", content.FAQ[0].Question)

	require.NoError(t, os.WriteFile(path, []byte("faq: [unterminated"), 0600))
	_, err = LoadContent(path)
	assert.Error(t, err)

	_, err = LoadContent(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenSet(t *testing.T) {
	s := ParseOpenSet("3, 1,x,9,-1,1", 5)
	assert.Equal(t, []int{1, 3}, s.Indexes())
	assert.Equal(t, "1,3", s.Encode())

	opened := s.Toggle(0)
	assert.Equal(t, "0,1,3", opened.Encode())
	assert.Equal(t, "1,3", s.Encode(), "toggle leaves the receiver alone")

	closed := opened.Toggle(1)
	assert.Equal(t, "0,3", closed.Encode())
	assert.False(t, closed.Has(1))

	assert.Equal(t, "", ParseOpenSet("", 5).Encode())
	assert.Equal(t, "", OpenSet{}.Encode())
	assert.Equal(t, "2", OpenSet{}.Toggle(2).Encode())
}

func course(id domain.ID, lessons ...int) *domain.Course {
	c := &domain.Course{ID: id, Title: string(id)}
	for _, n := range lessons {
		c.Modules = append(c.Modules, domain.Module{Lessons: make([]domain.Lesson, n)})
	}
	return c
}

func TestStats(t *testing.T) {
	empty := ComputeStats(nil)
	assert.Equal(t, []Stat{
		{Label: "Courses", Value: "Growing"},
		{Label: "Lesson library", Value: "Updated weekly"},
		{Label: "Access", Value: "Free for students"},
	}, empty.Badges())

	stats := ComputeStats([]*domain.Course{course("a", 2, 3), course("b"), course("c", 1), course("d", 4)})
	assert.Equal(t, 4, stats.CourseCount)
	assert.Equal(t, 10, stats.LessonCount)
	require.Len(t, stats.Featured, 3)
	assert.Equal(t, domain.ID("c"), stats.Featured[2].ID)
	assert.Equal(t, "4", stats.Badges()[0].Value)
	assert.Equal(t, "10", stats.Badges()[1].Value)
}

func TestBuildPage(t *testing.T) {
	page := BuildPage(DefaultContent(), []*domain.Course{course("a", 1, 3)}, ParseOpenSet("2", 5))

	require.Len(t, page.FAQ, 5)
	assert.False(t, page.FAQ[0].Open)
	assert.Equal(t, "0,2", page.FAQ[0].ToggleQuery)
	assert.True(t, page.FAQ[2].Open)
	assert.Equal(t, "", page.FAQ[2].ToggleQuery)
	assert.Equal(t, []FeaturedCourse{
		{CourseSummary: domain.CourseSummary{ID: "a", Title: "a"}, LessonCount: 4},
	}, page.Featured)
}
