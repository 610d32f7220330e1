package ticket

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/logging"
)

var (
	// ErrTransitionNotAllowed is returned when the requested status change
	// is not an edge of the lifecycle for the caller's role. It is a
	// client-side rejection; no request is made.
	ErrTransitionNotAllowed = errors.New("status change not allowed")
	// ErrAssignNotAllowed is returned when the caller's role may not
	// transfer the ticket, or the ticket is closed.
	ErrAssignNotAllowed = errors.New("transfer not allowed")
	// ErrEmptyComment is returned for whitespace-only comment content.
	ErrEmptyComment = errors.New("comment cannot be empty")
	// ErrNoTechnician is returned by Assign when no technician was chosen.
	ErrNoTechnician = errors.New("no technician selected")
	// ErrNotStaff is returned when a plain user asks for staff-only data.
	ErrNotStaff = errors.New("requires a staff role")
)

// Service is the slice of the API client the controller needs.
type Service interface {
	UpdateTicketStatus(ctx context.Context, id int, status string) (*api.Ticket, error)
	AddComment(ctx context.Context, ticketID int, content, author string) (*api.Comment, error)
	AssignTicket(ctx context.Context, ticketID, assigneeID int) (*api.Ticket, error)
	ListTechs(ctx context.Context) ([]api.User, error)
}

// Confirmer asks the user to confirm a destructive action. Returning false
// aborts the operation before any request is made.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// autoConfirm is used when no Confirmer is configured.
type autoConfirm struct{}

func (autoConfirm) Confirm(string) bool { return true }

// Options configures a Controller.
type Options struct {
	API     Service
	Confirm Confirmer
	// OnReload runs after every successful mutation. The views use it to
	// refetch; the controller never mutates local state itself.
	OnReload func()
	// Author supplies the display name attached to comments.
	Author func() string
	Logger *logging.Logger
}

// Controller applies ticket mutations. There is no optimistic update
// anywhere: a change either round-trips through the backend and triggers a
// reload, or nothing happens at all.
type Controller struct {
	api      Service
	confirm  Confirmer
	onReload func()
	author   func() string
	log      *logging.Logger

	techMu sync.Mutex
	techs  []api.User
}

// NewController creates a Controller.
func NewController(opts Options) *Controller {
	confirm := opts.Confirm
	if confirm == nil {
		confirm = autoConfirm{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		api:      opts.API,
		confirm:  confirm,
		onReload: opts.OnReload,
		author:   opts.Author,
		log:      log,
	}
}

func (c *Controller) reload() {
	if c.onReload != nil {
		c.onReload()
	}
}

// ChangeStatus moves a ticket along the lifecycle. The transition table is
// checked before anything else, so a view that offers a stale action still
// cannot produce an invalid request. The confirmation prompt runs next;
// declining aborts silently.
func (c *Controller) ChangeStatus(ctx context.Context, id int, role Role, from, to Status) error {
	if !CanTransition(role, from, to) {
		c.log.Warn("rejected status change", "ticket", id, "role", string(role),
			"from", string(from), "to", string(to))
		return ErrTransitionNotAllowed
	}

	if !c.confirm.Confirm("Mudar status para '" + string(to) + "'?") {
		c.log.Debug("status change declined", "ticket", id, "to", string(to))
		return nil
	}

	if _, err := c.api.UpdateTicketStatus(ctx, id, string(to)); err != nil {
		return err
	}

	c.log.Info("ticket status changed", "ticket", id, "from", string(from), "to", string(to))
	c.reload()
	return nil
}

// AddComment posts a comment. Whitespace-only content is rejected before
// any network call. On failure the caller's draft is untouched; the view
// clears its input only after success.
func (c *Controller) AddComment(ctx context.Context, id int, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyComment
	}

	author := ""
	if c.author != nil {
		author = c.author()
	}

	if _, err := c.api.AddComment(ctx, id, content, author); err != nil {
		return err
	}

	c.log.Info("comment added", "ticket", id)
	c.reload()
	return nil
}

// Assign transfers a ticket to another technician.
func (c *Controller) Assign(ctx context.Context, id int, role Role, status Status, techID int) error {
	if !CanAssign(role, status) {
		return ErrAssignNotAllowed
	}
	if techID <= 0 {
		return ErrNoTechnician
	}

	if _, err := c.api.AssignTicket(ctx, id, techID); err != nil {
		return err
	}

	c.log.Info("ticket transferred", "ticket", id, "assignee", techID)
	c.reload()
	return nil
}

// Technicians returns the transfer candidates, fetching them on first use
// and caching for the rest of the session. Plain users never see the list.
func (c *Controller) Technicians(ctx context.Context, role Role) ([]api.User, error) {
	if !role.IsStaff() {
		return nil, ErrNotStaff
	}

	c.techMu.Lock()
	defer c.techMu.Unlock()

	if c.techs == nil {
		techs, err := c.api.ListTechs(ctx)
		if err != nil {
			return nil, err
		}
		c.techs = techs
	}

	out := make([]api.User, len(c.techs))
	copy(out, c.techs)
	return out, nil
}
