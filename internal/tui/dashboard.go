package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xeonx/timeago"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/tui/styles"
)

// dashboardModel holds the KPI counters and the recent-tickets list.
type dashboardModel struct {
	kpis   *api.KPIs
	recent []api.Ticket
	loaded bool
}

func (m *dashboardModel) setData(kpis *api.KPIs, tickets []api.Ticket, maxRecent int) {
	m.kpis = kpis
	if len(tickets) > maxRecent {
		tickets = tickets[:maxRecent]
	}
	m.recent = tickets
	m.loaded = true
}

func (a *App) updateDashboard(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "r" {
			return a.fetchDashboard()
		}
	}
	return nil
}

func (a *App) viewDashboard() string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("Painel") + "\n")

	if !a.dashboard.loaded {
		b.WriteString(styles.Muted.Render("Carregando...") + "\n")
		return b.String()
	}

	stats := a.dashboard.kpis.Stats
	b.WriteString(renderKPICards(stats) + "\n\n")

	b.WriteString(styles.Title.Render("Chamados recentes") + "\n")
	if len(a.dashboard.recent) == 0 {
		b.WriteString(styles.Muted.Render("Nenhum chamado.") + "\n")
	}
	for _, t := range a.dashboard.recent {
		b.WriteString(renderTicketRow(t, false) + "\n")
	}

	b.WriteString(a.footer(
		styles.HelpKey.Render("t") + " chamados  " +
			styles.HelpKey.Render("r") + " atualizar  " +
			styles.HelpKey.Render("q") + " sair"))
	return b.String()
}

func renderKPICards(stats api.KPIStats) string {
	card := func(label string, value int64) string {
		return styles.KPICard.Render(
			styles.KPIValue.Render(fmt.Sprintf("%d", value)) + "\n" +
				styles.KPILabel.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Abertos", stats.Open),
		card("Críticos", stats.Critical),
		card("Hoje", stats.Today),
		card("SLA violado", stats.SLABreach),
	)
}

// renderTicketRow is a single list line: id, badges, title, relative age.
func renderTicketRow(t api.Ticket, selected bool) string {
	line := fmt.Sprintf("#%-4d %s%s %s  %s",
		t.ID,
		styles.StatusBadgeFor(t.Status),
		styles.PriorityBadgeFor(t.Priority),
		t.Title,
		styles.Muted.Render(timeago.English.Format(t.CreatedAt)))
	if selected {
		return styles.RowSelected.Render(line)
	}
	return styles.Row.Render(line)
}
