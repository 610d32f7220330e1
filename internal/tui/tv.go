package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/tui/styles"
)

// tvModel is the wallboard: counters, the prioritized open queue, and the
// optional system notice. It takes no input besides quit.
type tvModel struct {
	kpis   *api.KPIs
	notice string
	loaded bool
}

func newTVModel() tvModel {
	return tvModel{}
}

func (m *tvModel) setData(kpis *api.KPIs, notice string) {
	m.kpis = kpis
	m.notice = notice
	m.loaded = true
}

func (a *App) updateTV(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
		return tea.Quit
	}
	return nil
}

func (a *App) viewTV() string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("CâmaraGestão · Suporte TI") + "\n")

	if a.tv.notice != "" {
		b.WriteString(styles.NoticeBanner.Render(a.tv.notice) + "\n\n")
	}

	if !a.tv.loaded {
		b.WriteString(styles.Muted.Render("Carregando...") + "\n")
		return b.String()
	}

	b.WriteString(renderKPICards(a.tv.kpis.Stats) + "\n\n")

	b.WriteString(styles.Title.Render("Fila de atendimento") + "\n")
	if len(a.tv.kpis.CriticalTickets) == 0 {
		b.WriteString(styles.SuccessMsg.Render("Fila vazia.") + "\n")
	}
	for _, t := range a.tv.kpis.CriticalTickets {
		b.WriteString(renderTicketRow(t, false) + "\n")
	}
	return b.String()
}
