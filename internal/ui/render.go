package ui

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/tasks-go/internal/task"
	"github.com/nibzard/tasks-go/internal/utils"
)

// TitleLimit is the widest title shown in a table before truncation.
const TitleLimit = 33

// ShortTitle truncates titles longer than TitleLimit runes.
func ShortTitle(title string) string {
	return utils.Truncate(title, TitleLimit)
}

// StatusLabel is the human label for a task's completion state.
func StatusLabel(t task.Task) string {
	if t.Completed {
		return "✓ Done"
	}
	return "○ Pending"
}

// PriorityLabel is the upper-case label used in tables.
func PriorityLabel(p task.Priority) string {
	return strings.ToUpper(string(p))
}

// Printer renders tasks and statistics for non-interactive output.
// Colours are only emitted when the destination is a terminal.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	location *time.Location
}

// NewPrinter returns a Printer writing to w. Dates are shown in loc; nil means local time.
func NewPrinter(w io.Writer, loc *time.Location) *Printer {
	if loc == nil {
		loc = time.Local
	}
	return &Printer{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		location: loc,
	}
}

// Tasks prints every task yielded by seq as a table followed by a total.
// The filter only shapes the heading and the empty-list message.
func (p *Printer) Tasks(seq iter.Seq[task.Task], f task.Filter) error {
	rows := make([][]string, 0)
	var completed []bool
	for t := range seq {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			StatusLabel(t),
			PriorityLabel(t.Priority),
			ShortTitle(t.Title),
			t.CreatedAt.In(p.location).Format(time.DateOnly),
		})
		completed = append(completed, t.Completed)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.w, emptyMessage(f))
		return err
	}

	header := p.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := p.renderer.NewStyle().Padding(0, 1)
	done := cell.Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "241"})

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Status", "Priority", "Title", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row >= 0 && row < len(completed) && completed[row]:
				return done
			default:
				return cell
			}
		})

	heading := p.renderer.NewStyle().Bold(true).Render(fmt.Sprintf("%s tasks", strings.ToUpper(f.String())))
	if _, err := fmt.Fprintln(p.w, heading); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.w, tbl.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "Total: %d tasks\n", len(rows))
	return err
}

// Statistics prints totals, the completion rate and pending counts per priority.
func (p *Printer) Statistics(st task.Statistics) error {
	if st.Total == 0 {
		_, err := fmt.Fprintln(p.w, "No tasks to analyze.")
		return err
	}
	_, err := io.WriteString(p.w, StatisticsText(p.renderer, st))
	return err
}

// StatisticsText formats st as a small report.
func StatisticsText(r *lipgloss.Renderer, st task.Statistics) string {
	title := r.NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString(title.Render("Task statistics") + "\n")
	fmt.Fprintf(&b, "  Total tasks:      %d\n", st.Total)
	fmt.Fprintf(&b, "  ✓ Completed:      %d\n", st.Completed)
	fmt.Fprintf(&b, "  ○ Pending:        %d\n", st.Pending)
	fmt.Fprintf(&b, "  Completion rate:  %.1f%%\n", st.CompletionPercent())
	b.WriteString("  Pending by priority:\n")
	for _, prio := range []task.Priority{task.PriorityHigh, task.PriorityMedium, task.PriorityLow} {
		fmt.Fprintf(&b, "    %-8s %d\n", string(prio)+":", st.PendingByPriority[prio])
	}
	return b.String()
}

func emptyMessage(f task.Filter) string {
	if f == task.FilterAll {
		return "Your task list is empty."
	}
	return fmt.Sprintf("No %s tasks found.", f)
}
