package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/tui/styles"
)

// ticketsModel is the scrollable ticket list.
type ticketsModel struct {
	tickets []api.Ticket
	cursor  int
	loaded  bool
}

func (m *ticketsModel) setTickets(tickets []api.Ticket) {
	m.tickets = tickets
	m.loaded = true
	if m.cursor >= len(tickets) {
		m.cursor = 0
	}
}

func (a *App) updateTickets(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if a.tickets.cursor > 0 {
			a.tickets.cursor--
		}
	case "down", "j":
		if a.tickets.cursor < len(a.tickets.tickets)-1 {
			a.tickets.cursor++
		}
	case "r":
		return a.fetchTickets()
	case "enter":
		if len(a.tickets.tickets) == 0 {
			return nil
		}
		selected := a.tickets.tickets[a.tickets.cursor]
		a.view = ViewDetail
		a.detail = newDetailModel()
		return a.fetchTicket(selected.ID)
	}
	return nil
}

func (a *App) viewTickets() string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("Chamados") + "\n")

	if !a.tickets.loaded {
		b.WriteString(styles.Muted.Render("Carregando...") + "\n")
		return b.String()
	}
	if len(a.tickets.tickets) == 0 {
		b.WriteString(styles.Muted.Render("Nenhum chamado encontrado.") + "\n")
	}

	for i, t := range a.tickets.tickets {
		b.WriteString(renderTicketRow(t, i == a.tickets.cursor) + "\n")
	}

	b.WriteString(a.footer(
		styles.HelpKey.Render("↑/↓") + " navegar  " +
			styles.HelpKey.Render("enter") + " abrir  " +
			styles.HelpKey.Render("r") + " atualizar  " +
			styles.HelpKey.Render("d") + " painel  " +
			styles.HelpKey.Render("q") + " sair"))
	return b.String()
}
