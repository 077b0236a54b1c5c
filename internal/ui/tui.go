// Package ui renders tasks for the terminal: tables and reports for plain
// output, and an interactive bubbletea screen.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/tasks-go/internal/task"
)

// Persister loads and saves the store behind the interactive screen.
type Persister interface {
	Load() (*task.Store, error)
	Save(s *task.Store) error
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
	modeConfirmClear
)

// TUIOption configures the model.
type TUIOption func(*Model)

// WithDefaultPriority sets the priority new tasks start with.
func WithDefaultPriority(p task.Priority) TUIOption {
	return func(m *Model) {
		if p.Valid() {
			m.defaultPriority = p
		}
	}
}

// WithTaskPath sets the file name shown in the footer.
func WithTaskPath(path string) TUIOption {
	return func(m *Model) {
		m.path = path
	}
}

// Model is the bubbletea model for the interactive task screen.
// Every mutation is saved immediately; a failed save reloads the store from
// disk so the screen never shows state that was not persisted.
type Model struct {
	store           *task.Store
	persist         Persister
	defaultPriority task.Priority
	path            string

	filter  task.Filter
	visible []task.Task
	cursor  int

	mode          mode
	input         []rune
	inputPriority task.Priority

	showStats bool
	showHelp  bool
	status    string
	statusErr bool
	quitting  bool
}

// NewModel returns a model showing s and saving through p.
func NewModel(s *task.Store, p Persister, opts ...TUIOption) *Model {
	m := &Model{
		store:           s,
		persist:         p,
		defaultPriority: task.DefaultPriority,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

// RunTUI starts the interactive screen on the terminal.
func RunTUI(ctx context.Context, m *Model) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Store returns the store currently shown.
func (m *Model) Store() *task.Store {
	return m.store
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(key)
	case modeConfirmDelete, modeConfirmClear:
		return m.updateConfirm(key)
	}
	return m.updateList(key)
}

func (m *Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "0":
		m.setFilter(task.FilterAll)
	case "1":
		m.setFilter(task.FilterPending)
	case "2":
		m.setFilter(task.FilterCompleted)
	case "a":
		m.mode = modeAdd
		m.input = m.input[:0]
		m.inputPriority = m.defaultPriority
		m.clearStatus()
	case "enter", "c":
		m.completeSelected()
	case "d":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.clearStatus()
		}
	case "x":
		if m.store.Statistics().Completed == 0 {
			m.setStatus("No completed tasks to clear.")
			break
		}
		m.mode = modeConfirmClear
		m.clearStatus()
	case "r":
		m.reload()
	case "s":
		m.showStats = !m.showStats
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.setStatus("Add cancelled.")
	case tea.KeyEnter:
		added, err := m.store.Add(string(m.input), m.inputPriority)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.mode = modeList
		m.commit(fmt.Sprintf("Added task %d.", added.ID))
	case tea.KeyTab:
		m.inputPriority = m.inputPriority.Next()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m *Model) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := key.String() == "y" || key.String() == "Y"
	current := m.mode
	m.mode = modeList
	if !confirmed {
		m.setStatus("Cancelled.")
		return m, nil
	}

	switch current {
	case modeConfirmDelete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.Remove(t.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.commit(fmt.Sprintf("Deleted task %d.", t.ID))
	case modeConfirmClear:
		n := m.store.ClearCompleted()
		m.commit(fmt.Sprintf("Cleared %d completed task(s).", n))
	}
	return m, nil
}

func (m *Model) completeSelected() {
	t, ok := m.selected()
	if !ok {
		return
	}
	if _, err := m.store.Complete(t.ID); err != nil {
		m.setError(err)
		return
	}
	m.commit(fmt.Sprintf("Completed task %d.", t.ID))
}

// commit saves the store after a mutation. On failure the store is reloaded
// so the screen matches the file again; if that fails too, both errors are
// shown.
func (m *Model) commit(ok string) {
	if err := m.persist.Save(m.store); err != nil {
		s, loadErr := m.persist.Load()
		if loadErr != nil {
			m.setError(fmt.Errorf("save failed: %w; reload failed, changes on screen are not saved: %v", err, loadErr))
			m.refresh()
			return
		}
		m.store = s
		m.setError(fmt.Errorf("save failed, reloaded from disk: %w", err))
		m.refresh()
		return
	}
	m.setStatus(ok)
	m.refresh()
}

func (m *Model) reload() {
	s, err := m.persist.Load()
	if err != nil {
		m.setError(err)
		return
	}
	m.store = s
	m.refresh()
	m.setStatus("Reloaded.")
}

func (m *Model) setFilter(f task.Filter) {
	m.filter = f
	m.cursor = 0
	m.refresh()
}

func (m *Model) refresh() {
	m.visible = m.visible[:0]
	for t := range m.store.List(m.filter) {
		m.visible = append(m.visible, t)
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	priorityStyle = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	writeTitle(&b, m.filter)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.path)
		return b.String()
	}

	m.writeList(&b)

	switch m.mode {
	case modeAdd:
		fmt.Fprintf(&b, "New task: %s█\n", string(m.input))
		fmt.Fprintf(&b, "Priority: %s (tab to change, enter to save, esc to cancel)\n\n",
			priorityStyle[m.inputPriority].Render(string(m.inputPriority)))
	case modeConfirmDelete:
		if t, ok := m.selected(); ok {
			fmt.Fprintf(&b, "Delete task %d %q? (y/n)\n\n", t.ID, ShortTitle(t.Title))
		}
	case modeConfirmClear:
		fmt.Fprintf(&b, "Remove %d completed task(s)? (y/n)\n\n", m.store.Statistics().Completed)
	}

	if m.showStats {
		b.WriteString(StatisticsText(lipgloss.DefaultRenderer(), m.store.Statistics()))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n\n")
	}

	writeFooter(&b, m.path)
	return b.String()
}

func (m *Model) writeList(b *strings.Builder) {
	if len(m.visible) == 0 {
		b.WriteString("  " + emptyMessage(m.filter) + "\n\n")
		return
	}
	for i, t := range m.visible {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		prio := priorityStyle[t.Priority].Render(fmt.Sprintf("%-6s", t.Priority))
		line := fmt.Sprintf("%s %3d  %s  %s", check, t.ID, prio, ShortTitle(t.Title))
		if t.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n")
}

func writeTitle(b *strings.Builder, f task.Filter) {
	title := "Tasks"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	fmt.Fprintf(b, "Filter: %s (0 all, 1 pending, 2 completed)\n\n", f)
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  ↑/k, ↓/j     Move selection\n")
	b.WriteString("  a            Add a task (tab cycles priority)\n")
	b.WriteString("  enter, c     Complete selected task\n")
	b.WriteString("  d            Delete selected task\n")
	b.WriteString("  x            Clear completed tasks\n")
	b.WriteString("  0 / 1 / 2    Show all / pending / completed\n")
	b.WriteString("  s            Toggle statistics\n")
	b.WriteString("  r            Reload from disk\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, path string) {
	line := "Press h for help | q to quit"
	if path != "" {
		line += " | " + path
	}
	b.WriteString(footerStyle.Render(line) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
