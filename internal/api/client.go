// Package api is the REST client for the CâmaraGestão backend. It is the
// only component that talks to the network; everything above it works with
// the typed results it returns.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenSource supplies the bearer token for authenticated calls. The
// session store implements it.
type TokenSource interface {
	Token() string
}

// Options configures a Client.
type Options struct {
	// BaseURL is the backend base URL without the /api/v1 prefix.
	BaseURL string
	// Tokens supplies the bearer token. May be nil for login-only use.
	Tokens TokenSource
	// Timeout is an optional per-request timeout. Zero means none, matching
	// the web client: a request runs until the server answers or the
	// connection drops.
	Timeout time.Duration
	// OnUnauthorized runs once per 401 response on an authenticated call,
	// before ErrUnauthorized is returned. Used for the forced logout.
	OnUnauthorized func()
}

// Client wraps resty with the backend's conventions: /api/v1 prefix, JSON
// bodies, bearer auth, and the {"error": ...} failure shape. Requests are
// never retried; a failed call surfaces immediately.
type Client struct {
	http           *resty.Client
	tokens         TokenSource
	onUnauthorized func()
}

// New creates a Client for the given backend.
func New(opts Options) *Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/") + "/api/v1").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if opts.Timeout > 0 {
		r.SetTimeout(opts.Timeout)
	}

	c := &Client{
		http:           r,
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
	}

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.tokens != nil {
			if tok := c.tokens.Token(); tok != "" {
				req.SetAuthToken(tok)
			}
		}
		return nil
	})

	return c
}

// request returns a new request bound to ctx.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// check maps a response to the error taxonomy: transport failures are
// wrapped, 401 forces the session out, and other non-2xx become *Error.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}
	return newError(resp)
}

// checkLogin is check without the 401 special case: a 401 from the login
// endpoint means bad credentials, not an expired session.
func (c *Client) checkLogin(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}
	return newError(resp)
}

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	resp, err := c.request(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/login")
	if err := c.checkLogin(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Assets ---

func (c *Client) ListAssets(ctx context.Context) ([]Asset, error) {
	var out []Asset
	resp, err := c.request(ctx).SetResult(&out).Get("/assets")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAsset(ctx context.Context, asset Asset) (*Asset, error) {
	var out Asset
	resp, err := c.request(ctx).SetBody(asset).SetResult(&out).Post("/assets")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAsset(ctx context.Context, id int, asset Asset) (*Asset, error) {
	var out Asset
	resp, err := c.request(ctx).SetBody(asset).SetResult(&out).
		Put("/assets/" + strconv.Itoa(id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id int) error {
	resp, err := c.request(ctx).Delete("/assets/" + strconv.Itoa(id))
	return c.check(resp, err)
}

func (c *Client) AssetHistory(ctx context.Context, id int) ([]AssetHistory, error) {
	var out []AssetHistory
	resp, err := c.request(ctx).SetResult(&out).
		Get("/assets/" + strconv.Itoa(id) + "/history")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Tickets ---

func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	var out []Ticket
	resp, err := c.request(ctx).SetResult(&out).Get("/tickets")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTicket(ctx context.Context, input CreateTicketInput) (*Ticket, error) {
	var out Ticket
	resp, err := c.request(ctx).SetBody(input).SetResult(&out).Post("/tickets")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTicket(ctx context.Context, id int) (*Ticket, error) {
	var out Ticket
	resp, err := c.request(ctx).SetResult(&out).
		Get("/tickets/" + strconv.Itoa(id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTicketStatus moves a ticket to a new lifecycle status. The caller
// is responsible for only requesting transitions its role allows; the
// backend enforces its own rules on top.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int, status string) (*Ticket, error) {
	var out Ticket
	resp, err := c.request(ctx).
		SetBody(map[string]string{"status": status}).
		SetResult(&out).
		Patch("/tickets/" + strconv.Itoa(id) + "/status")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddComment(ctx context.Context, ticketID int, content, author string) (*Comment, error) {
	var out Comment
	resp, err := c.request(ctx).
		SetBody(map[string]string{"content": content, "author": author}).
		SetResult(&out).
		Post("/tickets/" + strconv.Itoa(ticketID) + "/comments")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignTicket transfers a ticket to another technician.
func (c *Client) AssignTicket(ctx context.Context, ticketID, assigneeID int) (*Ticket, error) {
	var out Ticket
	resp, err := c.request(ctx).
		SetBody(map[string]int{"assigned_to_id": assigneeID}).
		SetResult(&out).
		Patch("/tickets/" + strconv.Itoa(ticketID) + "/assign")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Categories ---

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	resp, err := c.request(ctx).SetResult(&out).Get("/categories")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var out Category
	resp, err := c.request(ctx).SetBody(input).SetResult(&out).Post("/categories")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, input CategoryInput) (*Category, error) {
	var out Category
	resp, err := c.request(ctx).SetBody(input).SetResult(&out).
		Put("/categories/" + strconv.Itoa(id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	resp, err := c.request(ctx).Delete("/categories/" + strconv.Itoa(id))
	return c.check(resp, err)
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	resp, err := c.request(ctx).SetResult(&out).Get("/users")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsersSimple returns the reduced user list served to staff for
// requester comboboxes.
func (c *Client) ListUsersSimple(ctx context.Context) ([]UserSimple, error) {
	var out []UserSimple
	resp, err := c.request(ctx).SetResult(&out).Get("/users/list")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTechs returns the technicians available for ticket transfer.
func (c *Client) ListTechs(ctx context.Context) ([]User, error) {
	var out []User
	resp, err := c.request(ctx).SetResult(&out).Get("/users/techs")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var out User
	resp, err := c.request(ctx).SetResult(&out).Get("/users/" + strconv.Itoa(id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	var out User
	resp, err := c.request(ctx).SetBody(input).SetResult(&out).Post("/users")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, input UserInput) (*User, error) {
	var out User
	resp, err := c.request(ctx).SetBody(input).SetResult(&out).
		Put("/users/" + strconv.Itoa(id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	resp, err := c.request(ctx).Delete("/users/" + strconv.Itoa(id))
	return c.check(resp, err)
}

// --- Settings ---

func (c *Client) ListSettings(ctx context.Context) ([]Setting, error) {
	var out []Setting
	resp, err := c.request(ctx).SetResult(&out).Get("/settings")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateSetting(ctx context.Context, key, value string) (*Setting, error) {
	var out Setting
	resp, err := c.request(ctx).
		SetBody(map[string]string{"value": value}).
		SetResult(&out).
		Put("/settings/" + key)
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Audit, dashboards, reports ---

// AuditLogs fetches the audit trail, optionally filtered by entity and
// action. Empty filters are omitted from the query.
func (c *Client) AuditLogs(ctx context.Context, entity, action string) ([]AuditLog, error) {
	req := c.request(ctx)
	if entity != "" {
		req.SetQueryParam("entity", entity)
	}
	if action != "" {
		req.SetQueryParam("action", action)
	}

	var out []AuditLog
	resp, err := req.SetResult(&out).Get("/audit")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DashboardKPIs(ctx context.Context) (*KPIs, error) {
	var out KPIs
	resp, err := c.request(ctx).SetResult(&out).Get("/dashboard/kpis")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reports fetches the report projection, optionally scoped to one
// technician (techID 0 means everyone).
func (c *Client) Reports(ctx context.Context, techID int) (*ReportStats, error) {
	req := c.request(ctx)
	if techID > 0 {
		req.SetQueryParam("tech_id", strconv.Itoa(techID))
	}

	var out ReportStats
	resp, err := req.SetResult(&out).Get("/reports")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- CSV import ---

// ImportAssets uploads an asset CSV as multipart form data. The server
// processes rows independently and reports how many succeeded and failed.
func (c *Client) ImportAssets(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	return c.importCSV(ctx, "/import/assets", filename, file)
}

// ImportUsers uploads a user CSV.
func (c *Client) ImportUsers(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	return c.importCSV(ctx, "/import/users", filename, file)
}

func (c *Client) importCSV(ctx context.Context, path, filename string, file io.Reader) (*ImportResult, error) {
	var out ImportResult
	resp, err := c.request(ctx).
		SetFileReader("file", filename, file).
		SetResult(&out).
		Post(path)
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
