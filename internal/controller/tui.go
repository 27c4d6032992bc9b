package controller

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// TUI behaves like SimpleUI but pages the hierarchy preview through a Bubble
// Tea viewer when it does not fit on screen.
type TUI struct {
	*SimpleUI
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), cmd: cmd}
}

// DisplayHierarchy renders the tree, paginating on a terminal when the tree
// has more lines than the window.
func (t *TUI) DisplayHierarchy(h *m.Hierarchy) error {
	lines := renderTree(h)

	model := newTreePagerModel(lines)

	if f, ok := t.cmd.OutOrStdout().(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		for _, line := range lines {
			t.cmd.Println(line)
		}

		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// treePagerModel is the Bubble Tea model scrolling through tree lines.
type treePagerModel struct {
	lines    []string
	height   int
	width    int
	offset   int
	quitting bool
}

func newTreePagerModel(lines []string) treePagerModel {
	return treePagerModel{lines: lines}
}

func (tp treePagerModel) Init() tea.Cmd {
	return nil
}

func (tp treePagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tp.height = msg.Height
		tp.width = msg.Width

		return tp, nil

	case tea.KeyMsg:
		return tp.handleKeyPress(msg)
	}

	return tp, nil
}

func (tp treePagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		tp.quitting = true
		return tp, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		tp.quitting = true
		return tp, tea.Quit

	case "down", "j":
		tp.offset = clamp(tp.offset+1, 0, tp.maxOffset())

	case "up", "k":
		tp.offset = clamp(tp.offset-1, 0, tp.maxOffset())

	case "g", "home":
		tp.offset = 0

	case "G", "end":
		tp.offset = tp.maxOffset()

	case "d", "pgdown":
		tp.offset = clamp(tp.offset+tp.linesPerPage(), 0, tp.maxOffset())

	case "u", "pgup":
		tp.offset = clamp(tp.offset-tp.linesPerPage(), 0, tp.maxOffset())
	}

	return tp, nil
}

func (tp treePagerModel) View() string {
	if tp.quitting {
		return ""
	}

	var b strings.Builder

	end := clamp(tp.offset+tp.linesPerPage(), 0, len(tp.lines))
	for _, line := range tp.lines[tp.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%d-%d of %d  (j/k scroll, d/u page, q quit)\n", tp.offset+1, end, len(tp.lines))

	return b.String()
}

// linesPerPage reserves two footer lines plus a margin.
func (tp treePagerModel) linesPerPage() int {
	if tp.height == 0 {
		return 20
	}

	available := tp.height - 4
	if available < 1 {
		return 1
	}

	return available
}

func (tp treePagerModel) maxOffset() int {
	maxOffset := len(tp.lines) - tp.linesPerPage()
	if maxOffset < 0 {
		return 0
	}

	return maxOffset
}

func (tp treePagerModel) needsPagination() bool {
	return tp.height > 0 && len(tp.lines) > tp.linesPerPage()
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
