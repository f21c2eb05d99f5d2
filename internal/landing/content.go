package landing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Feature a "what you'll learn" card
type Feature struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// FAQEntry .
type FAQEntry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Content marketing copy of the landing page
type Content struct {
	Features []Feature  `yaml:"features" json:"features"`
	FAQ      []FAQEntry `yaml:"faq" json:"faq"`
}

// DefaultContent the copy shipped with the site
func DefaultContent() *Content {
	return &Content{
		Features: []Feature{
			{
				Title: "Budgeting without burnout",
				Text:  "Build a weekly money system that survives rent week, groceries, and surprise costs.",
			},
			{
				Title: "Tax and super basics",
				Text:  "Understand your payslip, tax withheld, and super contributions with plain-English examples.",
			},
			{
				Title: "Investing with context",
				Text:  "Learn risk and long-term strategy before choosing products or platforms.",
			},
		},
		FAQ: []FAQEntry{
			{
				Question: "What is financial literacy and why is it important?",
				Answer:   "Financial literacy means understanding how money decisions affect your daily life and long-term outcomes. It helps you budget with less stress, avoid expensive debt mistakes, and make clearer choices about tax, super, and investing. In practice, it gives you more control and fewer surprises.",
			},
			{
				Question: "Is CapletEdu free to use?",
				Answer:   "Yes. CapletEdu currently provides free educational services. Courses and tools are accessible at no cost. Future development may include SaaS offerings for schools and large institutions.",
			},
			{
				Question: "What topics are covered?",
				Answer:   "CapletEdu covers financial fundamentals tailored to Australian students: budgeting, tax, superannuation, investing basics, and business finance. All content is structured with Australian context and designed for integration into school curricula.",
			},
			{
				Question: "Do I need prior knowledge?",
				Answer:   "No prior finance background is required. Lessons are structured from beginner-friendly foundations to more applied topics, so you can start where you are and move at a steady pace.",
			},
			{
				Question: "How often is content updated?",
				Answer:   "Content is reviewed regularly and improved over time as regulations, examples, and learner needs change. Priority updates focus on practical relevance and clarity rather than theory-heavy rewrites.",
			},
		},
	}
}

// LoadContent reads copy overrides from a yaml file. Sections missing from
// the file keep the defaults, an empty path means defaults only.
func LoadContent(path string) (*Content, error) {
	content := DefaultContent()
	if path == "" {
		return content, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	override := new(Content)
	if err := yaml.Unmarshal(raw, override); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	if override.Features != nil {
		content.Features = override.Features
	}
	if override.FAQ != nil {
		content.FAQ = override.FAQ
	}
	return content, nil
}
