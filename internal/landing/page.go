package landing

import "github.com/ericzhangohoh/caplet/internal/domain"

// FAQItem an accordion row, ToggleQuery is the "open" value of its link
type FAQItem struct {
	FAQEntry
	Index       int    `json:"index"`
	Open        bool   `json:"open"`
	ToggleQuery string `json:"toggle_query"`
}

// FeaturedCourse a featured course card
type FeaturedCourse struct {
	domain.CourseSummary
	LessonCount int `json:"lesson_count"`
}

// Page everything the landing page renders
type Page struct {
	Features []Feature        `json:"features"`
	FAQ      []FAQItem        `json:"faq"`
	Badges   []Stat           `json:"badges"`
	Featured []FeaturedCourse `json:"featured"`
}

// BuildFAQ accordion rows for the given open set
func BuildFAQ(content *Content, open OpenSet) []FAQItem {
	items := make([]FAQItem, 0, len(content.FAQ))
	for i, entry := range content.FAQ {
		items = append(items, FAQItem{
			FAQEntry:    entry,
			Index:       i,
			Open:        open.Has(i),
			ToggleQuery: open.Toggle(i).Encode(),
		})
	}
	return items
}

// BuildPage .
func BuildPage(content *Content, courses []*domain.Course, open OpenSet) *Page {
	stats := ComputeStats(courses)
	featured := make([]FeaturedCourse, 0, len(stats.Featured))
	for _, c := range stats.Featured {
		featured = append(featured, FeaturedCourse{CourseSummary: c.Summary(), LessonCount: c.LessonCount()})
	}
	return &Page{
		Features: content.Features,
		FAQ:      BuildFAQ(content, open),
		Badges:   stats.Badges(),
		Featured: featured,
	}
}
