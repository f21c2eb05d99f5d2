// Package term is a terminal module browser. It runs the same loading
// pipeline as the web pages and renders one module at a time.
package term

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"go.uber.org/zap"
)

type browserState int

const (
	stateLoading browserState = iota
	stateFailed
	stateLoaded
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// moduleLoadedMsg result of one load, seq drops answers to superseded loads
type moduleLoadedMsg struct {
	seq    int
	course *domain.CourseView
	module *domain.ModuleView
	err    error
}

// Browser bubbletea model showing one module of a course
type Browser struct {
	useCase  domain.CourseUseCase
	logger   *zap.Logger
	viewer   domain.Viewer
	timeout  time.Duration
	courseID domain.ID
	moduleID domain.ID

	state   browserState
	seq     int
	course  *domain.CourseView
	module  *domain.ModuleView
	err     error
	spinner spinner.Model
	bar     progress.Model
	width   int
}

// NewBrowser an empty moduleID opens the first module of the course
func NewBrowser(useCase domain.CourseUseCase, courseID, moduleID domain.ID, viewer domain.Viewer, timeout time.Duration, logger *zap.Logger) *Browser {
	return &Browser{
		useCase:  useCase,
		logger:   logger,
		viewer:   viewer,
		timeout:  timeout,
		courseID: courseID,
		moduleID: moduleID,
		state:    stateLoading,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (b *Browser) Init() tea.Cmd {
	return tea.Batch(b.spinner.Tick, b.load())
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "r":
			return b, b.reload()
		case "n", "right", "tab":
			return b, b.step(1)
		case "p", "left", "shift+tab":
			return b, b.step(-1)
		}
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.bar.Width = clamp(msg.Width-12, 10, 60)
	case moduleLoadedMsg:
		if msg.seq != b.seq {
			return b, nil
		}
		if msg.err != nil {
			b.state, b.err = stateFailed, msg.err
			return b, nil
		}
		b.state, b.err = stateLoaded, nil
		b.course, b.module = msg.course, msg.module
		b.moduleID = msg.module.Module.ID
	case spinner.TickMsg:
		if b.state != stateLoading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *Browser) View() string {
	var sb strings.Builder
	switch b.state {
	case stateLoading:
		fmt.Fprintf(&sb, "%s Loading module...\n", b.spinner.View())
	case stateFailed:
		sb.WriteString(errorStyle.Render(failureMessage(b.err)) + "\n")
		sb.WriteString(subtleStyle.Render("r retry · q quit") + "\n")
	case stateLoaded:
		b.renderModule(&sb)
	}
	return sb.String()
}

func (b *Browser) renderModule(sb *strings.Builder) {
	view := b.module
	sb.WriteString(subtleStyle.Render(view.Course.Title) + "\n")
	sb.WriteString(titleStyle.Render(view.Module.Title) + "\n")
	if view.Module.Description != "" {
		sb.WriteString(view.Module.Description + "\n")
	}
	sb.WriteString("\n")

	if view.Progress.Total > 0 {
		fmt.Fprintf(sb, "%d / %d complete\n", view.Progress.Completed, view.Progress.Total)
		sb.WriteString(b.bar.ViewAs(view.Progress.Percent()/100) + "\n\n")
	}
	if len(view.Lessons) == 0 {
		sb.WriteString(subtleStyle.Render("No lessons in this module yet.") + "\n")
	}
	for i, row := range view.Lessons {
		title := strings.TrimSpace(row.Lesson.Title)
		if title == "" {
			title = fmt.Sprintf("Lesson %d", i+1)
		}
		line := fmt.Sprintf("%2d. %s", i+1, title)
		if row.Completed {
			line += "  " + doneStyle.Render("✓ Completed")
		} else if !row.HasContent {
			line += "  " + subtleStyle.Render("(no content yet)")
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + b.moduleTabs() + "\n")
	sb.WriteString(subtleStyle.Render("n/p switch module · r reload · q quit") + "\n")
}

// moduleTabs the course's modules with the current one highlighted
func (b *Browser) moduleTabs() string {
	if b.course == nil {
		return ""
	}
	tabs := make([]string, 0, len(b.course.Modules))
	for _, entry := range b.course.Modules {
		label := entry.Module.Title
		if entry.Module.ID == b.moduleID {
			tabs = append(tabs, selectedStyle.Render("["+label+"]"))
			continue
		}
		tabs = append(tabs, subtleStyle.Render(label))
	}
	return strings.Join(tabs, "  ")
}

func (b *Browser) reload() tea.Cmd {
	b.state = stateLoading
	return tea.Batch(b.spinner.Tick, b.load())
}

// step moves to the neighbouring module, wrapping around
func (b *Browser) step(delta int) tea.Cmd {
	if b.state != stateLoaded || b.course == nil || len(b.course.Modules) < 2 {
		return nil
	}
	modules := b.course.Modules
	current := 0
	for i, entry := range modules {
		if entry.Module.ID == b.moduleID {
			current = i
			break
		}
	}
	next := (current + delta + len(modules)) % len(modules)
	b.moduleID = modules[next].Module.ID
	return b.reload()
}

// load fetches the course outline and then the module. Every call supersedes
// the previous one.
func (b *Browser) load() tea.Cmd {
	b.seq++
	seq, courseID, moduleID := b.seq, b.courseID, b.moduleID
	return func() tea.Msg {
		ctx := logging.SetLoggerInContext(context.Background(), b.logger)
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}

		course, err := b.useCase.LoadCourse(ctx, courseID, b.viewer)
		if err != nil {
			return moduleLoadedMsg{seq: seq, err: err}
		}
		if moduleID == "" {
			if len(course.Modules) == 0 {
				return moduleLoadedMsg{seq: seq, err: fmt.Errorf("%w: course has no modules", domain.ErrModuleNotFound)}
			}
			moduleID = course.Modules[0].Module.ID
		}
		module, err := b.useCase.LoadModule(ctx, courseID, moduleID, b.viewer)
		if err != nil {
			b.logger.Warn("Failed to load module", zap.String("course.id", courseID.String()),
				zap.String("module.id", moduleID.String()), zap.Error(err))
		}
		return moduleLoadedMsg{seq: seq, course: course, module: module, err: err}
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrModuleNotFound):
		return domain.ErrModuleNotFound.Error()
	case errors.Is(err, domain.ErrCourseNotFound):
		return domain.ErrCourseNotFound.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "The course service took too long to answer"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return domain.ErrServiceUnavailable.Error()
	}
	return "Failed to load module: " + err.Error()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
