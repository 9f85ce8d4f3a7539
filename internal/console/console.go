// Package console implements the interactive admin console: a live seat map
// and a menu to book single seats by hand.
package console

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iliyamo/cinematch/internal/model"
	"github.com/iliyamo/cinematch/internal/service"
)

// AdminLabel is the vibe recorded for seats booked from the console.
const AdminLabel = "AdminChoice"

// Booker is the part of service.BookingService the console uses.
type Booker interface {
	BookSeats(ctx context.Context, ids []string, label string) service.BookingResult
	ListSeats() []model.SeatView
}

type mode int

const (
	modeMenu mode = iota
	modePrompt
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	freeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	bookedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the console.
type Model struct {
	ctx    context.Context
	booker Booker

	mode   mode
	input  textinput.Model
	seats  []model.SeatView
	status string
	ok     bool
}

// New returns a console showing the current seat map.
func New(ctx context.Context, b Booker) Model {
	in := textinput.New()
	in.Placeholder = "A1"
	in.Prompt = "Enter Seat ID: "
	in.CharLimit = 8
	return Model{
		ctx:    ctx,
		booker: b,
		input:  in,
		seats:  b.ListSeats(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modePrompt {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.mode == modePrompt {
		return m.updatePrompt(key)
	}

	switch key.String() {
	case "1":
		m.mode = modePrompt
		m.input.SetValue("")
		return m, m.input.Focus()
	case "2":
		m.seats = m.booker.ListSeats()
		m.status = ""
	case "3", "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		id := strings.ToUpper(strings.TrimSpace(m.input.Value()))
		res := m.booker.BookSeats(m.ctx, []string{id}, AdminLabel)
		m.status = res.Message()
		m.ok = res.OK()
		m.seats = m.booker.ListSeats()
		m.mode = modeMenu
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("--- LIVE THEATER MAP ---"))
	b.WriteString("\n")
	b.WriteString(RenderSeatMap(m.seats))
	b.WriteString("\n")
	if m.status != "" {
		style := errStyle
		if m.ok {
			style = okStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n\n")
	}
	if m.mode == modePrompt {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter to book, esc to cancel"))
	} else {
		b.WriteString("Admin Console: 1. Quick Book | 2. Show Map | 3. Exit")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSeatMap draws one line per row: "[A1]" for free seats and "[ X ]"
// for booked ones.  seats must be in display order.
func RenderSeatMap(seats []model.SeatView) string {
	var b strings.Builder
	row := ""
	for i, s := range seats {
		r := rowOf(s.ID)
		if i > 0 {
			if r != row {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		row = r
		if s.IsBooked {
			b.WriteString(bookedStyle.Render("[ X ]"))
		} else {
			b.WriteString(freeStyle.Render("[" + s.ID + "]"))
		}
	}
	if len(seats) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func rowOf(id string) string {
	return strings.TrimRight(id, "0123456789")
}

// Run starts the console on the terminal and blocks until the user exits or
// ctx is cancelled.
func Run(ctx context.Context, b Booker) error {
	p := tea.NewProgram(New(ctx, b), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
