package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	appDomain "lms-backend/internal/domain/application"
	clientDomain "lms-backend/internal/domain/client"
	loanDomain "lms-backend/internal/domain/loan"
	taskDomain "lms-backend/internal/domain/task"
	"lms-backend/internal/domain/uow"
	"lms-backend/internal/guard"
	"lms-backend/internal/testutil/appmock"
	"lms-backend/internal/testutil/auditmock"
	"lms-backend/internal/testutil/clientmock"
	"lms-backend/internal/testutil/loanmock"
	"lms-backend/internal/testutil/notifmock"
	"lms-backend/internal/testutil/rolesmock"
	"lms-backend/internal/testutil/taskmock"
	"lms-backend/internal/testutil/uowmock"
)

const (
	officerID  = "officer-1"
	clientUser = "client-user-1"
	internID   = "intern-1"
	strangerID = "stranger-1"
	testAppID  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testClient = "cccccccccccccccccccccccccccccccc"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

type signerFunc func(ctx context.Context, bucket, path string) (string, error)

func (f signerFunc) SignUpload(ctx context.Context, bucket, path string) (string, error) {
	return f(ctx, bucket, path)
}

// fixture keeps applications, clients, loans, tasks, history and notes in
// memory behind function-backed mocks.
type fixture struct {
	apps    map[string]*appDomain.Application
	owners  map[string]string // clientID -> owning userID
	loans   map[string]*loanDomain.Loan
	tasks   []taskDomain.Task
	history []appDomain.StatusHistory
	notes   []appDomain.Note
	docs    []appDomain.Document

	audit  *auditmock.Sink
	notify *notifmock.Sink
	uc     *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		apps:   map[string]*appDomain.Application{},
		owners: map[string]string{},
		loans:  map[string]*loanDomain.Loan{},
		audit:  auditmock.New(),
		notify: notifmock.New(),
	}

	apps := &appmock.Repo{
		CreateFn: func(_ context.Context, a *appDomain.Application) error {
			cp := *a
			f.apps[a.AppID] = &cp
			return nil
		},
		GetByAppIDFn: func(_ context.Context, appID string) (*appDomain.Application, error) {
			a, ok := f.apps[appID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *a
			return &cp, nil
		},
		SaveFn: func(_ context.Context, a *appDomain.Application) error {
			cp := *a
			f.apps[a.AppID] = &cp
			return nil
		},
		SecurityProjectionFn: func(_ context.Context, appID string) (*appDomain.SecurityProjection, error) {
			a, ok := f.apps[appID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &appDomain.SecurityProjection{
				AppID:             a.AppID,
				Status:            a.Status,
				AssignedToUserID:  a.AssignedToUserID,
				ClientOwnerUserID: f.owners[a.ClientID],
			}, nil
		},
		AppendHistoryFn: func(_ context.Context, h *appDomain.StatusHistory) error {
			f.history = append(f.history, *h)
			return nil
		},
		CreateNoteFn: func(_ context.Context, n *appDomain.Note) error {
			f.notes = append(f.notes, *n)
			return nil
		},
		CreateDocumentFn: func(_ context.Context, d *appDomain.Document) error {
			f.docs = append(f.docs, *d)
			return nil
		},
	}
	clients := &clientmock.Repo{
		CreateFn: func(_ context.Context, c *clientDomain.Client) error {
			f.owners[c.ClientID] = c.UserID
			return nil
		},
		OwnsFn: func(_ context.Context, userID, clientID string) (bool, error) {
			return f.owners[clientID] == userID, nil
		},
		FirstOwnedByFn: func(_ context.Context, userID string) (*clientDomain.Client, error) {
			for cid, owner := range f.owners {
				if owner == userID {
					return &clientDomain.Client{ClientID: cid, UserID: owner}, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	loans := &loanmock.Repo{
		GetByAppIDFn: func(_ context.Context, appID string) (*loanDomain.Loan, error) {
			l, ok := f.loans[appID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *l
			return &cp, nil
		},
		CreateFn: func(_ context.Context, l *loanDomain.Loan) error {
			if _, ok := f.loans[l.AppID]; ok {
				return gorm.ErrDuplicatedKey
			}
			cp := *l
			f.loans[l.AppID] = &cp
			return nil
		},
	}
	tasks := &taskmock.Repo{
		CreateFn: func(_ context.Context, task *taskDomain.Task) error {
			f.tasks = append(f.tasks, *task)
			return nil
		},
	}

	roles := rolesmock.New(map[string][]string{
		officerID:  {guard.RoleLoanOfficer},
		clientUser: {guard.RoleClient},
		internID:   {guard.RoleIntern},
	})
	tx := uowmock.Immediate(uow.Repos{
		Applications: apps,
		Clients:      clients,
		Loans:        loans,
		Tasks:        tasks,
	})

	signer := signerFunc(func(_ context.Context, bucket, path string) (string, error) {
		return "https://storage.test/" + bucket + "/" + path + "?token=t", nil
	})
	f.uc = NewUsecase(apps, clients, tx, roles, f.audit, f.notify, signer)
	return f
}

// seedApp installs an application owned by clientUser.
func (f *fixture) seedApp(status appDomain.Status, assignedTo string) {
	f.owners[testClient] = clientUser
	f.apps[testAppID] = &appDomain.Application{
		AppID:            testAppID,
		ClientID:         testClient,
		RequestedAmount:  decimal.NewFromInt(10000),
		TermMonths:       12,
		Purpose:          "working capital",
		Status:           status,
		AssignedToUserID: assignedTo,
	}
}

func draftInput() CreateDraftInput {
	return CreateDraftInput{
		RequestedAmount: decimal.NewFromInt(5000),
		TermMonths:      6,
		Purpose:         "inventory",
	}
}

// ----- draft creation -----

func TestCreateDraft_ClientCreatesProfileOnFirstApplication(t *testing.T) {
	f := newFixture(t)

	in := draftInput()
	in.BusinessName = "Warung Maju"
	app, err := f.uc.CreateDraft(context.Background(), clientUser, in)
	if err != nil {
		t.Fatalf("CreateDraft err: %v", err)
	}

	if app.Status != appDomain.StatusDraft {
		t.Fatalf("status = %s", app.Status)
	}
	if len(app.AppID) != 32 {
		t.Fatalf("AppID length = %d", len(app.AppID))
	}
	if f.owners[app.ClientID] != clientUser {
		t.Fatalf("client profile not owned by actor: %v", f.owners)
	}
	if len(f.history) != 1 || f.history[0].FromStatus != "" || f.history[0].ToStatus != string(appDomain.StatusDraft) {
		t.Fatalf("history = %+v", f.history)
	}
	if got := f.audit.Actions(); len(got) != 1 || got[0] != "CreateDraftApplication" {
		t.Fatalf("audit = %v", got)
	}
}

func TestCreateDraft_ClientReusesExistingProfile(t *testing.T) {
	f := newFixture(t)
	f.owners[testClient] = clientUser

	app, err := f.uc.CreateDraft(context.Background(), clientUser, draftInput())
	if err != nil {
		t.Fatalf("CreateDraft err: %v", err)
	}
	if app.ClientID != testClient {
		t.Fatalf("ClientID = %s, want existing profile", app.ClientID)
	}
}

func TestCreateDraft_ClientWithoutProfileOrBusinessInfo(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateDraft(context.Background(), clientUser, draftInput())
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateDraft_InternMustSelfAssign(t *testing.T) {
	f := newFixture(t)
	f.owners[testClient] = clientUser

	in := draftInput()
	in.ClientID = testClient
	in.AssignedToUserID = internID
	app, err := f.uc.CreateDraft(context.Background(), internID, in)
	if err != nil {
		t.Fatalf("CreateDraft err: %v", err)
	}
	if app.AssignedToUserID != internID {
		t.Fatalf("AssignedToUserID = %s", app.AssignedToUserID)
	}

	in.AssignedToUserID = "someone-else"
	if _, err := f.uc.CreateDraft(context.Background(), internID, in); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("foreign assignment err = %v, want ErrForbidden", err)
	}

	in.AssignedToUserID = internID
	in.ClientID = ""
	if _, err := f.uc.CreateDraft(context.Background(), internID, in); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("missing client err = %v, want ErrValidation", err)
	}
}

func TestCreateDraft_StaffRequiresClientID(t *testing.T) {
	f := newFixture(t)
	f.owners[testClient] = clientUser

	in := draftInput()
	if _, err := f.uc.CreateDraft(context.Background(), officerID, in); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	in.ClientID = testClient
	if _, err := f.uc.CreateDraft(context.Background(), officerID, in); err != nil {
		t.Fatalf("CreateDraft err: %v", err)
	}
}

func TestCreateDraft_UnknownRoleForbidden(t *testing.T) {
	f := newFixture(t)
	in := draftInput()
	in.BusinessName = "x"
	if _, err := f.uc.CreateDraft(context.Background(), strangerID, in); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateDraft_InputValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		mutate func(*CreateDraftInput)
	}{
		{"empty purpose", func(in *CreateDraftInput) { in.Purpose = "  " }},
		{"zero amount", func(in *CreateDraftInput) { in.RequestedAmount = decimal.Zero }},
		{"negative amount", func(in *CreateDraftInput) { in.RequestedAmount = decimal.NewFromInt(-5) }},
		{"zero term", func(in *CreateDraftInput) { in.TermMonths = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := draftInput()
			tc.mutate(&in)
			if _, err := f.uc.CreateDraft(context.Background(), officerID, in); !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

// ----- draft updates -----

func TestUpdateDraft_Draft(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusDraft, "")

	app, err := f.uc.UpdateDraft(context.Background(), clientUser, testAppID, UpdateDraftInput{
		RequestedAmount: dec(t, "7500.00"),
		TermMonths:      18,
		Purpose:         "equipment",
	})
	if err != nil {
		t.Fatalf("UpdateDraft err: %v", err)
	}
	if !app.RequestedAmount.Equal(dec(t, "7500.00")) || app.TermMonths != 18 || app.Purpose != "equipment" {
		t.Fatalf("app = %+v", app)
	}
}

func TestUpdateDraft_DraftStillRequiresPurpose(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusDraft, "")

	_, err := f.uc.UpdateDraft(context.Background(), clientUser, testAppID, UpdateDraftInput{
		RequestedAmount: dec(t, "7500.00"),
		TermMonths:      18,
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateDraft_NonDraftOnlyStaffReassign(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusUnderReview, "")

	_, err := f.uc.UpdateDraft(context.Background(), clientUser, testAppID, UpdateDraftInput{
		RequestedAmount: dec(t, "9999.00"),
		TermMonths:      24,
		Purpose:         "changed",
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("client edit err = %v, want ErrForbidden", err)
	}

	// a reassign-only update carries no business fields at all
	app, err := f.uc.UpdateDraft(context.Background(), officerID, testAppID, UpdateDraftInput{
		AssignedToUserID: internID,
	})
	if err != nil {
		t.Fatalf("staff reassign err: %v", err)
	}
	if app.AssignedToUserID != internID {
		t.Fatalf("AssignedToUserID = %s", app.AssignedToUserID)
	}
	// business fields must be untouched
	if app.TermMonths != 12 || app.Purpose != "working capital" {
		t.Fatalf("non-draft fields mutated: %+v", app)
	}
	if got := f.audit.Actions(); got[len(got)-1] != "ReassignApplication" {
		t.Fatalf("audit = %v", got)
	}
}

// ----- status changes -----

func TestChangeStatus_HappyPath(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusSubmitted, internID)

	app, err := f.uc.ChangeStatus(context.Background(), officerID, testAppID, appDomain.StatusUnderReview, "picking up")
	if err != nil {
		t.Fatalf("ChangeStatus err: %v", err)
	}
	if app.Status != appDomain.StatusUnderReview {
		t.Fatalf("status = %s", app.Status)
	}
	if len(f.history) != 1 {
		t.Fatalf("history rows = %d", len(f.history))
	}
	h := f.history[0]
	if h.FromStatus != string(appDomain.StatusSubmitted) || h.ToStatus != string(appDomain.StatusUnderReview) || h.Note != "picking up" {
		t.Fatalf("history = %+v", h)
	}

	// owner and assignee get notified, actor does not
	users := f.notify.Users()
	if len(users) != 2 {
		t.Fatalf("notified = %v", users)
	}
	seen := map[string]bool{}
	for _, u := range users {
		seen[u] = true
	}
	if !seen[clientUser] || !seen[internID] {
		t.Fatalf("notified = %v", users)
	}
}

func TestChangeStatus_SelfTransitionIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusUnderReview, "")

	app, err := f.uc.ChangeStatus(context.Background(), officerID, testAppID, appDomain.StatusUnderReview, "")
	if err != nil {
		t.Fatalf("ChangeStatus err: %v", err)
	}
	if app.Status != appDomain.StatusUnderReview {
		t.Fatalf("status = %s", app.Status)
	}
	if len(f.history) != 0 {
		t.Fatalf("no-op wrote history: %+v", f.history)
	}
	if len(f.notify.Queued) != 0 {
		t.Fatal("no-op sent notifications")
	}
	if len(f.audit.Entries) != 0 {
		t.Fatal("no-op wrote audit")
	}
}

func TestChangeStatus_InvalidEdge(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusDraft, "")

	_, err := f.uc.ChangeStatus(context.Background(), officerID, testAppID, appDomain.StatusApproved, "")
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestChangeStatus_NonStaffCannotReview(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusSubmitted, "")

	_, err := f.uc.ChangeStatus(context.Background(), clientUser, testAppID, appDomain.StatusApproved, "")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestChangeStatus_StrangerCannotAccess(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusSubmitted, "")

	_, err := f.uc.ChangeStatus(context.Background(), strangerID, testAppID, appDomain.StatusUnderReview, "")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestChangeStatus_UnknownApplication(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ChangeStatus(context.Background(), officerID, "ffffffffffffffffffffffffffffffff", appDomain.StatusUnderReview, "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestChangeStatus_ApprovalProvisionsLoanOnce(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusUnderReview, "")

	if _, err := f.uc.ChangeStatus(context.Background(), officerID, testAppID, appDomain.StatusApproved, "ok"); err != nil {
		t.Fatalf("approve err: %v", err)
	}

	l, ok := f.loans[testAppID]
	if !ok {
		t.Fatal("loan not provisioned")
	}
	if !l.PrincipalAmount.Equal(decimal.NewFromInt(10000)) || !l.OutstandingPrincipal.Equal(l.PrincipalAmount) {
		t.Fatalf("loan amounts = %s / %s", l.PrincipalAmount, l.OutstandingPrincipal)
	}
	if l.Status != loanDomain.StatusPendingDisbursement || l.TermMonths != 12 {
		t.Fatalf("loan = %+v", l)
	}

	// walking the edge again via InfoRequested must not create a second loan
	firstLoanID := l.LoanID
	f.apps[testAppID].Status = appDomain.StatusUnderReview
	if _, err := f.uc.ChangeStatus(context.Background(), officerID, testAppID, appDomain.StatusApproved, ""); err != nil {
		t.Fatalf("re-approve err: %v", err)
	}
	if f.loans[testAppID].LoanID != firstLoanID {
		t.Fatal("loan replaced on second approval")
	}
}

func TestChangeStatus_ApprovalSurvivesDuplicateKeyRace(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusUnderReview, "")

	// GetByAppID misses but the insert hits the unique index, as when a
	// concurrent approval commits between the two statements.
	loans := &loanmock.Repo{
		GetByAppIDFn: func(_ context.Context, _ string) (*loanDomain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, _ *loanDomain.Loan) error {
			return gorm.ErrDuplicatedKey
		},
	}
	if err := provisionLoan(context.Background(), loans, f.apps[testAppID]); err != nil {
		t.Fatalf("provisionLoan err: %v", err)
	}
}

func TestChangeStatus_InfoRequestedCreatesFollowUp(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusUnderReview, internID)

	before := time.Now().UTC()
	if _, err := f.uc.ChangeStatus(context.Background(), officerID, testAppID, appDomain.StatusInfoRequested, "missing bank statement"); err != nil {
		t.Fatalf("ChangeStatus err: %v", err)
	}

	if len(f.tasks) != 1 {
		t.Fatalf("tasks = %d", len(f.tasks))
	}
	task := f.tasks[0]
	if task.AppID != testAppID || task.Status != taskDomain.StatusOpen {
		t.Fatalf("task = %+v", task)
	}
	if task.AssignedTo != clientUser {
		t.Fatalf("task assigned to %s, want client owner", task.AssignedTo)
	}
	if !strings.Contains(task.Title, "missing bank statement") {
		t.Fatalf("task title = %q", task.Title)
	}
	wantDue := before.AddDate(0, 0, 7)
	if task.DueDate == nil || task.DueDate.Before(wantDue.Add(-time.Minute)) || task.DueDate.After(wantDue.Add(time.Minute)) {
		t.Fatalf("task due = %v", task.DueDate)
	}

	if len(f.notes) != 1 || f.notes[0].CreatedBy != officerID {
		t.Fatalf("notes = %+v", f.notes)
	}
	if !strings.Contains(f.notes[0].Body, "missing bank statement") {
		t.Fatalf("note body = %q", f.notes[0].Body)
	}
}

func TestSubmit_SetsSubmittedAtOnce(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusDraft, "")

	app, err := f.uc.Submit(context.Background(), clientUser, testAppID, "")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if app.Status != appDomain.StatusSubmitted || app.SubmittedAt == nil {
		t.Fatalf("app = %+v", app)
	}

	// repeat submit is an idempotent no-op
	again, err := f.uc.Submit(context.Background(), clientUser, testAppID, "")
	if err != nil {
		t.Fatalf("second Submit err: %v", err)
	}
	if len(f.history) != 1 {
		t.Fatalf("history rows = %d", len(f.history))
	}
	if !again.SubmittedAt.Equal(*app.SubmittedAt) {
		t.Fatal("SubmittedAt changed on repeat submit")
	}
}

// ----- reads -----

func TestGet_Authorization(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusSubmitted, internID)

	for _, actor := range []string{officerID, clientUser, internID} {
		if _, err := f.uc.Get(context.Background(), actor, testAppID); err != nil {
			t.Fatalf("%s Get err: %v", actor, err)
		}
	}
	if _, err := f.uc.Get(context.Background(), strangerID, testAppID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatal("stranger must not read")
	}
	if _, err := f.uc.Get(context.Background(), officerID, "ffffffffffffffffffffffffffffffff"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatal("unknown application must be ErrNotFound")
	}
}

func TestList_ScopedByRole(t *testing.T) {
	f := newFixture(t)

	var gotAll, gotAssignee, gotOwner bool
	apps := f.uc.apps.(*appmock.Repo)
	apps.ListAllFn = func(_ context.Context) ([]appDomain.Application, error) {
		gotAll = true
		return nil, nil
	}
	apps.ListByAssigneeFn = func(_ context.Context, userID string) ([]appDomain.Application, error) {
		gotAssignee = userID == internID
		return nil, nil
	}
	apps.ListByClientOwnerFn = func(_ context.Context, userID string) ([]appDomain.Application, error) {
		gotOwner = userID == clientUser
		return nil, nil
	}

	if _, err := f.uc.List(context.Background(), officerID); err != nil || !gotAll {
		t.Fatalf("staff list: err=%v all=%v", err, gotAll)
	}
	if _, err := f.uc.List(context.Background(), internID); err != nil || !gotAssignee {
		t.Fatalf("intern list: err=%v assignee=%v", err, gotAssignee)
	}
	if _, err := f.uc.List(context.Background(), clientUser); err != nil || !gotOwner {
		t.Fatalf("client list: err=%v owner=%v", err, gotOwner)
	}

	out, err := f.uc.List(context.Background(), strangerID)
	if err != nil || len(out) != 0 {
		t.Fatalf("roleless list: %v %v", out, err)
	}
}

// ----- documents -----

func TestPresignUpload(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusSubmitted, "")

	res, err := f.uc.PresignUpload(context.Background(), clientUser, testAppID, PresignUploadInput{
		DocType: "KTP", FileName: "id card.png",
	})
	if err != nil {
		t.Fatalf("PresignUpload err: %v", err)
	}
	if res.Bucket != "loan-documents" {
		t.Fatalf("bucket = %s", res.Bucket)
	}
	if !strings.HasPrefix(res.StoragePath, "applications/"+testAppID+"/") {
		t.Fatalf("path = %s", res.StoragePath)
	}
	if strings.Contains(res.StoragePath, " ") {
		t.Fatalf("path not sanitized: %s", res.StoragePath)
	}
	if !strings.Contains(res.UploadURL, res.StoragePath) {
		t.Fatalf("url = %s", res.UploadURL)
	}

	_, err = f.uc.PresignUpload(context.Background(), clientUser, testAppID, PresignUploadInput{DocType: "KTP"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("missing file name err = %v", err)
	}
	_, err = f.uc.PresignUpload(context.Background(), strangerID, testAppID, PresignUploadInput{DocType: "KTP", FileName: "x.png"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("stranger err = %v", err)
	}
}

func TestConfirmUpload(t *testing.T) {
	f := newFixture(t)
	f.seedApp(appDomain.StatusSubmitted, "")

	doc, err := f.uc.ConfirmUpload(context.Background(), clientUser, testAppID, ConfirmUploadInput{
		DocType: "KTP", StoragePath: "applications/x/y.png",
	})
	if err != nil {
		t.Fatalf("ConfirmUpload err: %v", err)
	}
	if doc.Status != appDomain.DocumentPending {
		t.Fatalf("default status = %s", doc.Status)
	}
	if doc.UploadedBy != clientUser || len(f.docs) != 1 {
		t.Fatalf("doc = %+v", doc)
	}

	_, err = f.uc.ConfirmUpload(context.Background(), clientUser, testAppID, ConfirmUploadInput{DocType: "KTP"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("missing path err = %v", err)
	}
}
