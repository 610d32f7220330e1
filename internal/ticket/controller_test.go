package ticket

import (
	"context"
	"errors"
	"testing"

	"github.com/camaragestao/gestao/internal/api"
)

// fakeService records API calls and returns canned results.
type fakeService struct {
	statusCalls  []string
	commentCalls []string
	assignCalls  []int
	techCalls    int

	failStatus  error
	failComment error
	failAssign  error
}

func (f *fakeService) UpdateTicketStatus(_ context.Context, id int, status string) (*api.Ticket, error) {
	f.statusCalls = append(f.statusCalls, status)
	if f.failStatus != nil {
		return nil, f.failStatus
	}
	return &api.Ticket{ID: id, Status: status}, nil
}

func (f *fakeService) AddComment(_ context.Context, ticketID int, content, author string) (*api.Comment, error) {
	f.commentCalls = append(f.commentCalls, content)
	if f.failComment != nil {
		return nil, f.failComment
	}
	return &api.Comment{TicketID: ticketID, Content: content, Author: author}, nil
}

func (f *fakeService) AssignTicket(_ context.Context, ticketID, assigneeID int) (*api.Ticket, error) {
	f.assignCalls = append(f.assignCalls, assigneeID)
	if f.failAssign != nil {
		return nil, f.failAssign
	}
	return &api.Ticket{ID: ticketID, AssignedToID: &assigneeID}, nil
}

func (f *fakeService) ListTechs(_ context.Context) ([]api.User, error) {
	f.techCalls++
	return []api.User{
		{ID: 2, Username: "mauro", Role: "Tech"},
		{ID: 3, Username: "andre", Role: "Tech"},
	}, nil
}

type harness struct {
	svc     *fakeService
	ctrl    *Controller
	reloads int
}

func newHarness(confirm bool) *harness {
	h := &harness{svc: &fakeService{}}
	h.ctrl = NewController(Options{
		API:      h.svc,
		Confirm:  ConfirmerFunc(func(string) bool { return confirm }),
		OnReload: func() { h.reloads++ },
		Author:   func() string { return "Maria Silva" },
	})
	return h
}

func TestChangeStatus_SuccessReloads(t *testing.T) {
	h := newHarness(true)

	err := h.ctrl.ChangeStatus(context.Background(), 1, RoleTech, StatusNew, StatusInProgress)
	if err != nil {
		t.Fatalf("ChangeStatus failed: %v", err)
	}
	if len(h.svc.statusCalls) != 1 || h.svc.statusCalls[0] != "Em Andamento" {
		t.Errorf("Expected one status call for Em Andamento, got %v", h.svc.statusCalls)
	}
	if h.reloads != 1 {
		t.Errorf("Expected one reload, got %d", h.reloads)
	}
}

func TestChangeStatus_InvalidTransitionMakesNoCall(t *testing.T) {
	h := newHarness(true)

	err := h.ctrl.ChangeStatus(context.Background(), 1, RoleUser, StatusNew, StatusInProgress)
	if !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("Expected ErrTransitionNotAllowed, got %v", err)
	}
	if len(h.svc.statusCalls) != 0 {
		t.Error("Rejected transition must not reach the API")
	}
	if h.reloads != 0 {
		t.Error("Rejected transition must not reload")
	}
}

func TestChangeStatus_ClosedIsTerminal(t *testing.T) {
	h := newHarness(true)

	for _, to := range Statuses() {
		err := h.ctrl.ChangeStatus(context.Background(), 1, RoleAdmin, StatusClosed, to)
		if !errors.Is(err, ErrTransitionNotAllowed) {
			t.Errorf("Fechado -> %s should be rejected, got %v", to, err)
		}
	}
	if len(h.svc.statusCalls) != 0 {
		t.Error("No request should leave a closed ticket")
	}
}

func TestChangeStatus_DeclinedConfirmAborts(t *testing.T) {
	h := newHarness(false)

	err := h.ctrl.ChangeStatus(context.Background(), 1, RoleTech, StatusInProgress, StatusResolved)
	if err != nil {
		t.Fatalf("Declined confirmation should not be an error, got %v", err)
	}
	if len(h.svc.statusCalls) != 0 {
		t.Error("Declined confirmation must not reach the API")
	}
	if h.reloads != 0 {
		t.Error("Declined confirmation must not reload")
	}
}

func TestChangeStatus_APIFailureDoesNotReload(t *testing.T) {
	h := newHarness(true)
	wantErr := &api.Error{Status: 403, Message: "Você não tem permissão para alterar este chamado"}
	h.svc.failStatus = wantErr

	err := h.ctrl.ChangeStatus(context.Background(), 1, RoleTech, StatusNew, StatusInProgress)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != wantErr.Message {
		t.Fatalf("Expected the API error to surface, got %v", err)
	}
	if h.reloads != 0 {
		t.Error("Failed change must not reload: no local mutation on failure")
	}
}

func TestAddComment_WhitespaceOnlyRejectedWithoutNetwork(t *testing.T) {
	h := newHarness(true)

	for _, content := range []string{"", "   ", "\n\t "} {
		err := h.ctrl.AddComment(context.Background(), 1, content)
		if !errors.Is(err, ErrEmptyComment) {
			t.Errorf("AddComment(%q): expected ErrEmptyComment, got %v", content, err)
		}
	}
	if len(h.svc.commentCalls) != 0 {
		t.Error("Empty comments must not reach the API")
	}
}

func TestAddComment_SuccessReloads(t *testing.T) {
	h := newHarness(true)

	if err := h.ctrl.AddComment(context.Background(), 1, "Trocada a fonte."); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(h.svc.commentCalls) != 1 {
		t.Errorf("Expected one comment call, got %d", len(h.svc.commentCalls))
	}
	if h.reloads != 1 {
		t.Errorf("Expected one reload, got %d", h.reloads)
	}
}

func TestAddComment_FailureLeavesDraftToCaller(t *testing.T) {
	h := newHarness(true)
	h.svc.failComment = errors.New("connection refused")

	err := h.ctrl.AddComment(context.Background(), 1, "draft text")
	if err == nil {
		t.Fatal("Expected the failure to surface")
	}
	if h.reloads != 0 {
		t.Error("Failed comment must not reload")
	}
}

func TestAssign_RequiresTechnician(t *testing.T) {
	h := newHarness(true)

	err := h.ctrl.Assign(context.Background(), 1, RoleTech, StatusInProgress, 0)
	if !errors.Is(err, ErrNoTechnician) {
		t.Fatalf("Expected ErrNoTechnician, got %v", err)
	}
	if len(h.svc.assignCalls) != 0 {
		t.Error("Missing technician must not reach the API")
	}
}

func TestAssign_StaffOnlyAndNotOnClosed(t *testing.T) {
	h := newHarness(true)

	if err := h.ctrl.Assign(context.Background(), 1, RoleUser, StatusNew, 2); !errors.Is(err, ErrAssignNotAllowed) {
		t.Errorf("User transfer should be rejected, got %v", err)
	}
	if err := h.ctrl.Assign(context.Background(), 1, RoleAdmin, StatusClosed, 2); !errors.Is(err, ErrAssignNotAllowed) {
		t.Errorf("Transfer on a closed ticket should be rejected, got %v", err)
	}
	if len(h.svc.assignCalls) != 0 {
		t.Error("Rejected transfers must not reach the API")
	}
}

func TestAssign_SuccessReloads(t *testing.T) {
	h := newHarness(true)

	if err := h.ctrl.Assign(context.Background(), 1, RoleTech, StatusInProgress, 3); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if len(h.svc.assignCalls) != 1 || h.svc.assignCalls[0] != 3 {
		t.Errorf("Expected one assign call for tech 3, got %v", h.svc.assignCalls)
	}
	if h.reloads != 1 {
		t.Errorf("Expected one reload, got %d", h.reloads)
	}
}

func TestTechnicians_LazyAndCached(t *testing.T) {
	h := newHarness(true)

	if h.svc.techCalls != 0 {
		t.Fatal("Technicians must not be fetched before first use")
	}

	first, err := h.ctrl.Technicians(context.Background(), RoleTech)
	if err != nil {
		t.Fatalf("Technicians failed: %v", err)
	}
	second, err := h.ctrl.Technicians(context.Background(), RoleAdmin)
	if err != nil {
		t.Fatalf("Technicians (cached) failed: %v", err)
	}

	if h.svc.techCalls != 1 {
		t.Errorf("Expected one fetch for two lookups, got %d", h.svc.techCalls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("Unexpected tech lists: %v / %v", first, second)
	}
}

func TestTechnicians_RefusedForUserRole(t *testing.T) {
	h := newHarness(true)

	if _, err := h.ctrl.Technicians(context.Background(), RoleUser); !errors.Is(err, ErrNotStaff) {
		t.Fatalf("Expected ErrNotStaff, got %v", err)
	}
	if h.svc.techCalls != 0 {
		t.Error("Refused lookup must not reach the API")
	}
}

// TestLifecycle_EndToEnd walks a ticket through the full lifecycle the way
// the views drive it: tech starts and resolves, the requester closes.
func TestLifecycle_EndToEnd(t *testing.T) {
	h := newHarness(true)
	ctx := context.Background()

	steps := []struct {
		role     Role
		from, to Status
	}{
		{RoleTech, StatusNew, StatusInProgress},
		{RoleTech, StatusInProgress, StatusResolved},
		{RoleUser, StatusResolved, StatusClosed},
	}
	for _, step := range steps {
		if err := h.ctrl.ChangeStatus(ctx, 1, step.role, step.from, step.to); err != nil {
			t.Fatalf("%s: %s -> %s failed: %v", step.role, step.from, step.to, err)
		}
	}

	want := []string{"Em Andamento", "Resolvido", "Fechado"}
	if len(h.svc.statusCalls) != len(want) {
		t.Fatalf("Expected %d status calls, got %v", len(want), h.svc.statusCalls)
	}
	for i := range want {
		if h.svc.statusCalls[i] != want[i] {
			t.Errorf("Call %d: expected %s, got %s", i, want[i], h.svc.statusCalls[i])
		}
	}
	if h.reloads != 3 {
		t.Errorf("Expected a reload per successful step, got %d", h.reloads)
	}
}
