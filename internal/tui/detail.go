package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xeonx/timeago"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/ticket"
	"github.com/camaragestao/gestao/internal/tui/styles"
)

// detailMode is the input mode of the detail view.
type detailMode int

const (
	modeView detailMode = iota
	modeComment
	modeConfirm
	modeTransfer
)

// detailModel is one ticket with its comments and the action panel.
type detailModel struct {
	ticket  *api.Ticket
	actions []ticket.Status
	mode    detailMode

	comment textinput.Model

	// pendingTo is the transition awaiting confirmation.
	pendingTo ticket.Status

	techs      []api.User
	techCursor int
}

func newDetailModel() detailModel {
	comment := textinput.New()
	comment.Placeholder = "novo comentário"
	comment.CharLimit = 500
	return detailModel{comment: comment}
}

func (m *detailModel) setTicket(t *api.Ticket, role ticket.Role) {
	m.ticket = t
	m.actions = nil
	if status, err := ticket.ParseStatus(t.Status); err == nil {
		m.actions = ticket.AvailableTransitions(role, status)
	}
	m.mode = modeView
}

func (m *detailModel) setTechs(techs []api.User) {
	m.techs = techs
	m.techCursor = 0
}

func (m *detailModel) capturing() bool {
	return m.mode != modeView
}

func (m *detailModel) status() ticket.Status {
	return ticket.Status(m.ticket.Status)
}

func (a *App) updateDetail(msg tea.Msg) tea.Cmd {
	if a.detail.ticket == nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			a.view = ViewTickets
		}
		return nil
	}

	switch a.detail.mode {
	case modeComment:
		return a.updateDetailComment(msg)
	case modeConfirm:
		return a.updateDetailConfirm(msg)
	case modeTransfer:
		return a.updateDetailTransfer(msg)
	}
	return a.updateDetailView(msg)
}

func (a *App) updateDetailView(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		a.view = ViewTickets
		return a.fetchTickets()
	case "r":
		return a.fetchTicket(a.detail.ticket.ID)
	case "c":
		a.detail.mode = modeComment
		return a.detail.comment.Focus()
	case "x":
		if !ticket.CanAssign(a.role(), a.detail.status()) {
			a.errMsg = "Transferência não permitida."
			return nil
		}
		a.detail.mode = modeTransfer
		if a.detail.techs == nil {
			return a.fetchTechs()
		}
		return nil
	}

	// Numbered lifecycle actions, in transition-table order.
	if n, err := strconv.Atoi(key.String()); err == nil {
		if n >= 1 && n <= len(a.detail.actions) {
			a.detail.pendingTo = a.detail.actions[n-1]
			a.detail.mode = modeConfirm
		}
	}
	return nil
}

func (a *App) updateDetailComment(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			a.detail.mode = modeView
			a.detail.comment.Blur()
			return nil
		case "enter":
			content := a.detail.comment.Value()
			if strings.TrimSpace(content) == "" {
				a.errMsg = "O comentário não pode ser vazio."
				return nil
			}
			// The draft stays in the input until actionDoneMsg confirms
			// the save.
			a.errMsg = ""
			return a.addComment(a.detail.ticket.ID, content)
		}
	}

	var cmd tea.Cmd
	a.detail.comment, cmd = a.detail.comment.Update(msg)
	return cmd
}

func (a *App) updateDetailConfirm(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "s", "y", "enter":
		to := a.detail.pendingTo
		a.detail.mode = modeView
		return a.changeStatus(a.detail.ticket.ID, a.detail.status(), to)
	case "n", "esc":
		// Declined: nothing is sent, nothing changes.
		a.detail.mode = modeView
	}
	return nil
}

func (a *App) updateDetailTransfer(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		a.detail.mode = modeView
	case "up", "k":
		if a.detail.techCursor > 0 {
			a.detail.techCursor--
		}
	case "down", "j":
		if a.detail.techCursor < len(a.detail.techs)-1 {
			a.detail.techCursor++
		}
	case "enter":
		if len(a.detail.techs) == 0 {
			a.errMsg = "Nenhum técnico disponível."
			return nil
		}
		tech := a.detail.techs[a.detail.techCursor]
		a.detail.mode = modeView
		return a.assignTicket(a.detail.ticket.ID, tech.ID, a.detail.status())
	}
	return nil
}

func (a *App) viewDetail() string {
	if a.detail.ticket == nil {
		return styles.Header.Render("Chamado") + "\n" +
			styles.Muted.Render("Carregando...")
	}
	t := a.detail.ticket

	var b strings.Builder
	b.WriteString(styles.Header.Render(fmt.Sprintf("Chamado #%d", t.ID)) + "\n")
	b.WriteString(styles.Title.Render(t.Title) + "\n")
	b.WriteString(styles.StatusBadgeFor(t.Status) + styles.PriorityBadgeFor(t.Priority) + "\n\n")

	if t.Description != "" {
		b.WriteString(t.Description + "\n\n")
	}

	meta := []string{"Aberto " + timeago.English.Format(t.CreatedAt)}
	if t.Creator != nil {
		meta = append(meta, "por "+displayName(t.Creator))
	}
	if t.AssignedTo != nil {
		meta = append(meta, "atribuído a "+displayName(t.AssignedTo))
	}
	if t.Sector != "" {
		meta = append(meta, "setor "+t.Sector)
	}
	if t.Patrimony != "" {
		meta = append(meta, "patrimônio "+t.Patrimony)
	}
	b.WriteString(styles.Muted.Render(strings.Join(meta, " · ")) + "\n\n")

	b.WriteString(styles.Title.Render("Comentários") + "\n")
	if len(t.Comments) == 0 {
		b.WriteString(styles.Muted.Render("Sem comentários.") + "\n")
	}
	for _, comment := range t.Comments {
		author := comment.Author
		if author == "" {
			author = "anônimo"
		}
		b.WriteString(styles.HelpKey.Render(author) + " " +
			styles.Muted.Render(timeago.English.Format(comment.CreatedAt)) + "\n")
		b.WriteString("  " + comment.Content + "\n")
	}
	b.WriteString("\n")

	switch a.detail.mode {
	case modeComment:
		b.WriteString(a.detail.comment.View() + "\n")
		b.WriteString(styles.HelpBar.Render(
			styles.HelpKey.Render("enter") + " enviar  " +
				styles.HelpKey.Render("esc") + " cancelar"))
		return b.String()

	case modeConfirm:
		b.WriteString(styles.NoticeBanner.Render(
			fmt.Sprintf("Mudar status para '%s'? (s/n)", a.detail.pendingTo)) + "\n")
		return b.String()

	case modeTransfer:
		b.WriteString(styles.Title.Render("Transferir para") + "\n")
		if len(a.detail.techs) == 0 {
			b.WriteString(styles.Muted.Render("Carregando técnicos...") + "\n")
		}
		for i, tech := range a.detail.techs {
			line := displayName(&tech)
			if i == a.detail.techCursor {
				b.WriteString(styles.RowSelected.Render(line) + "\n")
			} else {
				b.WriteString(styles.Row.Render(line) + "\n")
			}
		}
		b.WriteString(styles.HelpBar.Render(
			styles.HelpKey.Render("enter") + " transferir  " +
				styles.HelpKey.Render("esc") + " cancelar"))
		return b.String()
	}

	help := make([]string, 0, len(a.detail.actions)+3)
	for i, to := range a.detail.actions {
		help = append(help, styles.HelpKey.Render(strconv.Itoa(i+1))+" "+transitionLabel(to))
	}
	help = append(help, styles.HelpKey.Render("c")+" comentar")
	if ticket.CanAssign(a.role(), a.detail.status()) {
		help = append(help, styles.HelpKey.Render("x")+" transferir")
	}
	help = append(help, styles.HelpKey.Render("esc")+" voltar")
	b.WriteString(a.footer(strings.Join(help, "  ")))
	return b.String()
}

// transitionLabel names the action a target status represents.
func transitionLabel(to ticket.Status) string {
	switch to {
	case ticket.StatusInProgress:
		return "atender/reabrir"
	case ticket.StatusResolved:
		return "resolver"
	case ticket.StatusClosed:
		return "fechar"
	default:
		return string(to)
	}
}

func displayName(u *api.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
