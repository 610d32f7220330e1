package api

import "time"

// User is a system account. Password is write-only and never returned by
// the backend.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSimple is the reduced shape served for comboboxes.
type UserSimple struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

// Asset is an inventory item.
type Asset struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hostname     string `json:"hostname"`
	AssetTag     string `json:"asset_tag"`
	SerialNumber string `json:"serial_number"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`

	Location       string `json:"location"`
	Responsible    string `json:"responsible"`
	TechnicalGroup string `json:"technical_group"`

	OS        string `json:"os"`
	Processor string `json:"processor"`
	RAM       string `json:"ram"`
	Storage   string `json:"storage"`
	IPAddress string `json:"ip_address"`

	ScreenSize  string `json:"screen_size"`
	Connections string `json:"connections"`

	PurchaseDate  time.Time `json:"purchase_date"`
	WarrantyEnd   time.Time `json:"warranty_end"`
	Price         float64   `json:"price"`
	InvoiceNumber string    `json:"invoice_number"`
	Supplier      string    `json:"supplier"`
}

// AssetHistory is one change record for an asset.
type AssetHistory struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	AssetID   int       `json:"asset_id"`
	Event     string    `json:"event"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
}

// Ticket is a support request.
type Ticket struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"due_date"`

	Sector    string `json:"sector"`
	Patrimony string `json:"patrimony"`

	AssetID *int   `json:"asset_id"`
	Asset   *Asset `json:"asset,omitempty"`

	CreatorID int   `json:"creator_id"`
	Creator   *User `json:"creator,omitempty"`

	CategoryID *int      `json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	AssignedToID *int  `json:"assigned_to_id"`
	AssignedTo   *User `json:"assigned_to,omitempty"`

	Comments []Comment `json:"comments"`
}

// Comment is one interaction on a ticket.
type Comment struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	TicketID  int       `json:"ticket_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
}

// Category is a service category with a default assignee for auto-routing.
type Category struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	DefaultUserID    int    `json:"default_user_id"`
	DefaultUser      *User  `json:"default_user,omitempty"`
	EscalationUserID *int   `json:"escalation_user_id"`
	EscalationUser   *User  `json:"escalation_user,omitempty"`
	SLATimeout       int    `json:"sla_timeout"`
}

// Setting is one key/value row of the global system settings.
type Setting struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// AuditLog is one entry of the admin audit trail.
type AuditLog struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int       `json:"user_id"`
	User      User      `json:"user,omitempty"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int       `json:"entity_id"`
	Details   string    `json:"details"`
}

// KPIStats are the dashboard counters.
type KPIStats struct {
	Open      int64 `json:"open"`
	Critical  int64 `json:"critical"`
	Today     int64 `json:"today"`
	SLABreach int64 `json:"sla_breach"`
}

// KPIs is the dashboard payload: counters plus the prioritized open queue.
type KPIs struct {
	Stats           KPIStats `json:"stats"`
	CriticalTickets []Ticket `json:"critical_tickets"`
}

// ReportStats is the reports projection.
type ReportStats struct {
	TotalTickets      int64            `json:"total_tickets"`
	OpenTickets       int64            `json:"open_tickets"`
	ResolvedTickets   int64            `json:"resolved_tickets"`
	AvgMTTRHours      float64          `json:"mttr_hours"`
	SLAComplianceRate float64          `json:"sla_compliance_rate"`
	TicketsByCategory map[string]int64 `json:"tickets_by_category"`
	SatisfactionScore float64          `json:"satisfaction_score"`
	WeeklyTrend       []DailyTrend     `json:"weekly_trend"`
}

// DailyTrend is one point of the weekly ticket-volume trend.
type DailyTrend struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ImportResult is the outcome of a CSV import: rows created and rows
// skipped, in the same run.
type ImportResult struct {
	Message string `json:"message"`
	Success int    `json:"success"`
	Errors  int    `json:"errors"`
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateTicketInput is the body for opening a ticket. RequesterID lets
// staff open a ticket on behalf of another user.
type CreateTicketInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Patrimony   string `json:"patrimony,omitempty"`
	AssetID     *int   `json:"asset_id,omitempty"`
	CategoryID  *int   `json:"category_id,omitempty"`
	RequesterID *int   `json:"requester_id,omitempty"`
}

// UserInput is the body for creating or updating a user. Empty fields are
// omitted so partial updates leave them untouched.
type UserInput struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// CategoryInput is the body for creating or updating a service category.
type CategoryInput struct {
	Name             string `json:"name"`
	DefaultUserID    int    `json:"default_user_id"`
	EscalationUserID *int   `json:"escalation_user_id,omitempty"`
	SLATimeout       int    `json:"sla_timeout,omitempty"`
}
