package console

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinematch/internal/model"
	"github.com/iliyamo/cinematch/internal/repository"
	"github.com/iliyamo/cinematch/internal/service"
)

func newTestConsole() (Model, *service.BookingService) {
	seats := repository.NewSeatRepo(3, 5, 1500)
	svc := service.NewBookingService(seats, service.Pricing{BaseCents: 1500, ElevatedCents: 1800}, zap.NewNop())
	return New(context.Background(), svc), svc
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestQuickBook_BooksLowercaseSeatAsAdmin(t *testing.T) {
	m, svc := newTestConsole()

	m, _ = press(t, m, runes("1"))
	require.Equal(t, modePrompt, m.mode)
	m, _ = press(t, m, runes("b"), runes("2"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeMenu, m.mode)
	assert.True(t, m.ok)
	assert.Contains(t, m.status, "Success! Booked [B2]")

	var b2 model.SeatView
	for _, s := range svc.ListSeats() {
		if s.ID == "B2" {
			b2 = s
		}
	}
	assert.True(t, b2.IsBooked)
	assert.Equal(t, AdminLabel, b2.Label)
	assert.Contains(t, m.View(), "[ X ]")
}

func TestQuickBook_ReportsFailures(t *testing.T) {
	m, _ := newTestConsole()

	m, _ = press(t, m, runes("1"), runes("Z9"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.ok)
	assert.Equal(t, "Error: Seat Z9 does not exist.", m.status)

	m, _ = press(t, m, runes("1"), runes("A1"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.ok)
	m, _ = press(t, m, runes("1"), runes("A1"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.ok)
	assert.Contains(t, m.status, "already taken")
}

func TestPrompt_EscCancels(t *testing.T) {
	m, svc := newTestConsole()

	m, _ = press(t, m, runes("1"), runes("A1"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeMenu, m.mode)
	assert.Equal(t, int64(0), svc.Stats().Booked)
}

func TestShowMapRefreshes(t *testing.T) {
	m, svc := newTestConsole()
	svc.BookSeats(context.Background(), []string{"C5"}, "api")
	assert.NotContains(t, RenderSeatMap(m.seats), "[ X ]", "map is a snapshot until refreshed")

	m, _ = press(t, m, runes("2"))
	assert.Contains(t, RenderSeatMap(m.seats), "[ X ]")
}

func TestExitQuits(t *testing.T) {
	m, _ := newTestConsole()
	_, cmd := press(t, m, runes("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderSeatMap(t *testing.T) {
	seats := []model.SeatView{
		{ID: "A1"}, {ID: "A2", IsBooked: true},
		{ID: "B1"}, {ID: "B2"},
	}
	lines := strings.Split(strings.TrimSuffix(RenderSeatMap(seats), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[A1] [ X ]", lines[0])
	assert.Equal(t, "[B1] [B2]", lines[1])
	assert.Equal(t, "", RenderSeatMap(nil))
}
