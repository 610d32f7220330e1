package tui

import (
	"time"

	"github.com/camaragestao/gestao/internal/api"
)

// errMsg carries a failed command's error into the update loop.
type errMsg struct{ err error }

// sessionExpiredMsg forces the app back to the login view after a 401.
type sessionExpiredMsg struct{}

// loggedInMsg is a successful login.
type loggedInMsg struct{ resp *api.LoginResponse }

// dashboardDataMsg is one dashboard refresh cycle's worth of data.
type dashboardDataMsg struct {
	kpis    *api.KPIs
	tickets []api.Ticket
}

// dashboardTickMsg fires on the dashboard poll interval.
type dashboardTickMsg time.Time

// ticketsLoadedMsg is the ticket list for the tickets view.
type ticketsLoadedMsg struct{ tickets []api.Ticket }

// ticketLoadedMsg is one ticket with its comments for the detail view.
type ticketLoadedMsg struct{ ticket *api.Ticket }

// techsLoadedMsg is the transfer candidate list.
type techsLoadedMsg struct{ techs []api.User }

// actionDoneMsg reports a successful mutation; the view refetches. source
// names the operation for the data.refreshed event.
type actionDoneMsg struct {
	info   string
	source string
}

// tvDataMsg is one TV dashboard refresh cycle's worth of data.
type tvDataMsg struct {
	kpis   *api.KPIs
	notice string
}

// tvTickMsg fires on the TV poll interval.
type tvTickMsg time.Time
