// Package tui is the bubbletea terminal UI: login, dashboard, ticket list
// and detail, and the TV wallboard. The App model owns view routing and
// the poll timers; each view keeps its own sub-model.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/config"
	"github.com/camaragestao/gestao/internal/event"
	"github.com/camaragestao/gestao/internal/logging"
	"github.com/camaragestao/gestao/internal/session"
	"github.com/camaragestao/gestao/internal/ticket"
	"github.com/camaragestao/gestao/internal/tui/styles"
	"github.com/camaragestao/gestao/internal/watch"
)

// View identifies the active screen.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewTickets
	ViewDetail
	ViewTV
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewDashboard:
		return "dashboard"
	case ViewTickets:
		return "tickets"
	case ViewDetail:
		return "detail"
	case ViewTV:
		return "tv"
	default:
		return "unknown"
	}
}

// Deps are the collaborators the App needs; the cmd package wires them.
type Deps struct {
	Config  *config.Config
	Client  *api.Client
	Session *session.Store
	Watcher *watch.Watcher
	Bus     *event.Bus
	Logger  *logging.Logger
	// TVOnly starts straight on the wallboard and never leaves it.
	TVOnly bool
}

// App is the root bubbletea model.
type App struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	watcher *watch.Watcher
	bus     *event.Bus
	log     *logging.Logger
	tvOnly  bool

	// ctl owns the lifecycle gating; the views only decide when to call it.
	ctl *ticket.Controller

	view   View
	width  int
	height int
	errMsg string
	status string

	login     loginModel
	dashboard dashboardModel
	tickets   ticketsModel
	detail    detailModel
	tv        tvModel
}

// NewApp creates the root model. With a persisted session it skips login.
func NewApp(deps Deps) *App {
	styles.ApplyTheme(deps.Config.TUI.Theme)

	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	a := &App{
		cfg:     deps.Config,
		client:  deps.Client,
		session: deps.Session,
		watcher: deps.Watcher,
		bus:     deps.Bus,
		log:     deps.Logger,
		tvOnly:  deps.TVOnly,
		login:   newLoginModel(),
		tv:      newTVModel(),
	}
	// Confirmation already happened in the detail view's confirm mode, so
	// the controller runs unprompted.
	a.ctl = ticket.NewController(ticket.Options{
		API:    deps.Client,
		Author: a.commentAuthor,
		Logger: deps.Logger,
	})

	switch {
	case deps.TVOnly:
		a.view = ViewTV
	case deps.Session.IsAuthenticated():
		a.view = ViewDashboard
	default:
		a.view = ViewLogin
	}
	return a
}

// role returns the logged-in user's role, defaulting to the least
// privileged one if the profile is missing or carries an unknown value.
func (a *App) role() ticket.Role {
	profile, err := a.session.Profile()
	if err != nil {
		return ticket.RoleUser
	}
	role, err := ticket.ParseRole(profile.Role)
	if err != nil {
		return ticket.RoleUser
	}
	return role
}

func (a *App) Init() tea.Cmd {
	switch a.view {
	case ViewTV:
		return tea.Batch(a.fetchTV(), a.tvTick())
	case ViewDashboard:
		return tea.Batch(a.fetchDashboard(), a.dashboardTick())
	default:
		return a.login.init()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case errMsg:
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return a.expireSession()
		}
		a.errMsg = msg.err.Error()
		a.login.busy = false
		a.log.Warn("view action failed", "view", a.view.String(), "error", msg.err)
		return a, nil

	case sessionExpiredMsg:
		return a.expireSession()

	case loggedInMsg:
		return a.handleLogin(msg)

	case dashboardTickMsg:
		// A tick from a view we already left is dropped without
		// rescheduling, which is what tears the poll loop down.
		if a.view != ViewDashboard {
			return a, nil
		}
		return a, tea.Batch(a.fetchDashboard(), a.dashboardTick())

	case dashboardDataMsg:
		a.dashboard.setData(msg.kpis, msg.tickets, a.cfg.TUI.MaxRecentTickets)
		a.watcher.Observe(ticketIDs(msg.tickets))
		return a, nil

	case tvTickMsg:
		if a.view != ViewTV {
			return a, nil
		}
		return a, tea.Batch(a.fetchTV(), a.tvTick())

	case tvDataMsg:
		a.tv.setData(msg.kpis, msg.notice)
		a.watcher.Observe(ticketIDs(msg.kpis.CriticalTickets))
		return a, nil

	case ticketsLoadedMsg:
		a.tickets.setTickets(msg.tickets)
		return a, nil

	case ticketLoadedMsg:
		a.detail.setTicket(msg.ticket, a.role())
		return a, nil

	case techsLoadedMsg:
		a.detail.setTechs(msg.techs)
		return a, nil

	case actionDoneMsg:
		a.status = msg.info
		a.errMsg = ""
		a.bus.Publish(event.NewDataRefreshedEvent(msg.source))
		// No optimistic update: every successful mutation refetches.
		if a.view == ViewDetail && a.detail.ticket != nil {
			// The comment draft is cleared only now, after the save stuck.
			a.detail.comment.SetValue("")
			a.detail.comment.Blur()
			a.detail.mode = modeView
			return a, a.fetchTicket(a.detail.ticket.ID)
		}
		return a, a.fetchTickets()
	}

	return a.updateActiveView(msg)
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.view != ViewLogin && !a.tvOnly {
		switch msg.String() {
		case "q":
			if !a.capturingInput() {
				return a, tea.Quit
			}
		case "d":
			if !a.capturingInput() && a.view != ViewDashboard {
				a.view = ViewDashboard
				return a, tea.Batch(a.fetchDashboard(), a.dashboardTick())
			}
		case "t":
			if !a.capturingInput() && a.view != ViewTickets && a.view != ViewDetail {
				a.view = ViewTickets
				return a, a.fetchTickets()
			}
		}
	}
	return a.updateActiveView(msg)
}

// capturingInput reports whether the active view owns the keyboard.
func (a *App) capturingInput() bool {
	switch a.view {
	case ViewDetail:
		return a.detail.capturing()
	default:
		return false
	}
}

func (a *App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case ViewLogin:
		cmd = a.updateLogin(msg)
	case ViewDashboard:
		cmd = a.updateDashboard(msg)
	case ViewTickets:
		cmd = a.updateTickets(msg)
	case ViewDetail:
		cmd = a.updateDetail(msg)
	case ViewTV:
		cmd = a.updateTV(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	switch a.view {
	case ViewLogin:
		return a.viewLogin()
	case ViewDashboard:
		return a.viewDashboard()
	case ViewTickets:
		return a.viewTickets()
	case ViewDetail:
		return a.viewDetail()
	case ViewTV:
		return a.viewTV()
	default:
		return ""
	}
}

func (a *App) handleLogin(msg loggedInMsg) (tea.Model, tea.Cmd) {
	profile := session.Profile{
		ID:       msg.resp.User.ID,
		Username: msg.resp.User.Username,
		FullName: msg.resp.User.FullName,
		Role:     msg.resp.User.Role,
		Avatar:   msg.resp.User.Avatar,
	}
	if err := a.session.Login(msg.resp.Token, profile); err != nil {
		a.errMsg = err.Error()
		return a, nil
	}

	a.bus.Publish(event.NewSessionOpenedEvent(profile.Username, profile.Role))
	a.log.WithUser(profile.Username).Info("logged in", "role", profile.Role)

	a.errMsg = ""
	a.login = newLoginModel()
	a.view = ViewDashboard
	return a, tea.Batch(a.fetchDashboard(), a.dashboardTick())
}

// expireSession drops the session and lands on login with an explanation.
func (a *App) expireSession() (tea.Model, tea.Cmd) {
	a.log.Info("session expired, forcing logout")
	if err := a.session.Logout(); err != nil {
		a.log.Warn("logout after expiry failed", "error", err)
	}
	a.bus.Publish(event.NewSessionExpiredEvent(a.view.String()))

	a.view = ViewLogin
	a.login = newLoginModel()
	a.errMsg = "Sessão expirada. Entre novamente."
	return a, a.login.init()
}

// --- timers ---

func (a *App) dashboardTick() tea.Cmd {
	return tea.Tick(a.cfg.Poll.DashboardInterval(), func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

func (a *App) tvTick() tea.Cmd {
	return tea.Tick(a.cfg.Poll.TVInterval(), func(t time.Time) tea.Msg {
		return tvTickMsg(t)
	})
}

// --- commands ---

func (a *App) doLogin(username, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Login(context.Background(), username, password)
		if err != nil {
			return errMsg{err}
		}
		return loggedInMsg{resp}
	}
}

func (a *App) fetchDashboard() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		kpis, err := a.client.DashboardKPIs(ctx)
		if err != nil {
			return errMsg{err}
		}
		tickets, err := a.client.ListTickets(ctx)
		if err != nil {
			return errMsg{err}
		}
		return dashboardDataMsg{kpis: kpis, tickets: tickets}
	}
}

func (a *App) fetchTickets() tea.Cmd {
	return func() tea.Msg {
		tickets, err := a.client.ListTickets(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return ticketsLoadedMsg{tickets}
	}
}

func (a *App) fetchTicket(id int) tea.Cmd {
	return func() tea.Msg {
		t, err := a.client.GetTicket(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return ticketLoadedMsg{t}
	}
}

func (a *App) fetchTechs() tea.Cmd {
	role := a.role()
	return func() tea.Msg {
		techs, err := a.ctl.Technicians(context.Background(), role)
		if err != nil {
			return errMsg{err}
		}
		return techsLoadedMsg{techs}
	}
}

func (a *App) fetchTV() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		kpis, err := a.client.DashboardKPIs(ctx)
		if err != nil {
			return errMsg{err}
		}
		notice := ""
		if settings, err := a.client.ListSettings(ctx); err == nil {
			for _, s := range settings {
				if s.Key == "system_notice" {
					notice = s.Value
				}
			}
		}
		return tvDataMsg{kpis: kpis, notice: notice}
	}
}

func (a *App) changeStatus(id int, from, to ticket.Status) tea.Cmd {
	role := a.role()
	return func() tea.Msg {
		if err := a.ctl.ChangeStatus(context.Background(), id, role, from, to); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{info: fmt.Sprintf("Chamado #%d: %s", id, to), source: "status"}
	}
}

func (a *App) addComment(id int, content string) tea.Cmd {
	return func() tea.Msg {
		if err := a.ctl.AddComment(context.Background(), id, content); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{info: fmt.Sprintf("Comentário adicionado ao chamado #%d", id), source: "comment"}
	}
}

func (a *App) assignTicket(id, techID int, status ticket.Status) tea.Cmd {
	role := a.role()
	return func() tea.Msg {
		if err := a.ctl.Assign(context.Background(), id, role, status, techID); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{info: fmt.Sprintf("Chamado #%d transferido", id), source: "assign"}
	}
}

// commentAuthor is the display name stamped on comments.
func (a *App) commentAuthor() string {
	profile, err := a.session.Profile()
	if err != nil {
		return ""
	}
	if profile.FullName != "" {
		return profile.FullName
	}
	return profile.Username
}

// ticketIDs projects tickets to their ids for the watcher.
func ticketIDs(tickets []api.Ticket) []int {
	ids := make([]int, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}
	return ids
}

// footer renders the status line and help bar shared by the logged-in views.
func (a *App) footer(help string) string {
	out := ""
	if a.errMsg != "" {
		out += styles.ErrorMsg.Render(a.errMsg) + "\n"
	} else if a.status != "" {
		out += styles.SuccessMsg.Render(a.status) + "\n"
	}
	return out + styles.HelpBar.Render(help)
}
