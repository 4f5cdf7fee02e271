package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/session"
	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// ------------ helpers ------------

func ptr[T any](v T) *T { return &v }

func ok[T any](data *T) *models.Envelope[T] {
	return &models.Envelope[T]{Success: true, Data: data}
}

// readerFromLines feeds one answer per line; every line is newline
// terminated so a blank answer is an empty line rather than EOF.
func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// fakeAPI is an in-memory backend. SetGoal updates the goal returned by
// FetchGoal so refreshes see the new target.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	login    *models.Envelope[models.AuthData]
	register *models.Envelope[models.AuthData]

	submitted []models.ActivityRecord
	submit    *models.Envelope[models.ActivityCreated]

	filters []models.HistoryFilter
	history *models.Envelope[models.ActivityList]

	profile *models.Envelope[models.ProfileData]
	updates []models.ProfileUpdate
	update  *models.Envelope[models.ProfileData]

	goal    *models.Envelope[models.GoalState]
	goalErr error
	targets []int
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.Envelope[models.AuthData], error) {
	f.record("login")
	return f.login, nil
}

func (f *fakeAPI) Register(ctx context.Context, username, email, password string) (*models.Envelope[models.AuthData], error) {
	f.record("register")
	return f.register, nil
}

func (f *fakeAPI) SubmitActivity(ctx context.Context, r models.ActivityRecord) (*models.Envelope[models.ActivityCreated], error) {
	f.record("submit")
	f.submitted = append(f.submitted, r)
	return f.submit, nil
}

func (f *fakeAPI) FetchHistory(ctx context.Context, userID int, filter models.HistoryFilter) (*models.Envelope[models.ActivityList], error) {
	f.record("history")
	f.filters = append(f.filters, filter)
	return f.history, nil
}

func (f *fakeAPI) FetchProfile(ctx context.Context, userID int) (*models.Envelope[models.ProfileData], error) {
	f.record("profile")
	return f.profile, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, userID int, u models.ProfileUpdate) (*models.Envelope[models.ProfileData], error) {
	f.record("update_profile")
	f.updates = append(f.updates, u)
	return f.update, nil
}

func (f *fakeAPI) FetchGoal(ctx context.Context, userID int) (*models.Envelope[models.GoalState], error) {
	f.record("goal")
	if f.goalErr != nil {
		return nil, f.goalErr
	}
	return f.goal, nil
}

func (f *fakeAPI) SetGoal(ctx context.Context, userID int, target int) (*models.Envelope[models.GoalState], error) {
	f.record("set_goal")
	f.targets = append(f.targets, target)
	f.goal = ok(&models.GoalState{TargetCalories: ptr(target), CurrentCalories: ptr(0), ProgressPercent: ptr(0.0)})
	return &models.Envelope[models.GoalState]{Success: true, Message: ptr("Goal updated successfully")}, nil
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

type testApp struct {
	*App
	api   *fakeAPI
	store *session.Store
	out   *bytes.Buffer
}

func newTestApp(t *testing.T, api *fakeAPI, lines ...string) *testApp {
	t.Helper()

	store, err := session.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	a := newApp(cfg, store, api, logging.Nop(), readerFromLines(lines...), &out)
	a.now = func() time.Time { return time.Date(2024, 3, 10, 18, 0, 0, 0, time.Local) }
	t.Cleanup(a.Close)

	return &testApp{App: a, api: api, store: store, out: &out}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func signIn(t *testing.T, ta *testApp, id int) {
	t.Helper()
	require.NoError(t, ta.store.SaveUserID(context.Background(), id))
}

func goalOf(target, current int, percent float64) *models.Envelope[models.GoalState] {
	return ok(&models.GoalState{
		TargetCalories:  ptr(target),
		CurrentCalories: ptr(current),
		ProgressPercent: ptr(percent),
	})
}

func completeProfile() *models.Envelope[models.ProfileData] {
	return ok(&models.ProfileData{Profile: &models.Profile{
		UserID: 7, Username: "sam", Email: "sam@example.com",
		Height: ptr(180.0), Weight: ptr(75.5), Age: ptr(31),
	}})
}

// ------------ auth ------------

func TestApp_LoginStoresSessionAndShowsHome(t *testing.T) {
	stubPassword(t, "pw")
	api := &fakeAPI{
		login:   ok(&models.AuthData{User: &models.UserInfo{ID: 7}}),
		goal:    goalOf(2000, 500, 25),
		profile: completeProfile(),
	}
	ta := newTestApp(t, api, "sam@example.com")
	ctx := context.Background()

	require.NoError(t, ta.Login(ctx))

	id, err := ta.store.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	w, err := ta.store.Weight(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 75.5, w, 1e-9)

	out := ta.out.String()
	assert.Contains(t, out, viewstate.MsgLoginOK)
	assert.Contains(t, out, "Goal: 2000 kcal")
	assert.Contains(t, out, "500 / 2000 kcal (25%)")
	assert.Equal(t, "user #7", ta.status(ctx))
}

func TestApp_LoginBlankFieldsStayLocal(t *testing.T) {
	stubPassword(t, "")
	api := &fakeAPI{}
	ta := newTestApp(t, api, "")

	require.NoError(t, ta.Login(context.Background()))

	assert.Empty(t, api.calls)
	assert.Contains(t, ta.out.String(), viewstate.MsgFillAll)
	assert.False(t, ta.isLoggedIn(context.Background()))
}

func TestApp_LoginRejectedByBackend(t *testing.T) {
	stubPassword(t, "wrong")
	api := &fakeAPI{login: &models.Envelope[models.AuthData]{Error: ptr("Invalid email or password")}}
	ta := newTestApp(t, api, "sam@example.com")

	require.NoError(t, ta.Login(context.Background()))

	assert.Contains(t, ta.out.String(), "Invalid email or password")
	assert.Zero(t, api.count("goal"))
	assert.Equal(t, "guest", ta.status(context.Background()))
}

func TestApp_LoginWithoutUserIDStaysGuest(t *testing.T) {
	stubPassword(t, "pw")
	api := &fakeAPI{login: ok(&models.AuthData{})}
	ta := newTestApp(t, api, "sam@example.com")

	require.NoError(t, ta.Login(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, viewstate.MsgNoUserID)
	assert.NotContains(t, out, viewstate.MsgLoginOK)
	assert.Zero(t, api.count("goal"))
	assert.Equal(t, "guest", ta.status(context.Background()))
}

func TestApp_RunWritesToAppOutput(t *testing.T) {
	ta := newTestApp(t, &fakeAPI{}, "help", "week", "exit")

	ta.Run(context.Background())

	out := ta.out.String()
	assert.Contains(t, out, "fittracker")
	assert.Contains(t, out, "ft> guest > ")
	assert.Equal(t, 2, strings.Count(out, guestHelp))
	assert.Contains(t, out, viewstate.MsgLoginFirst)
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))
}

func TestApp_RegisterDoesNotSignIn(t *testing.T) {
	stubPassword(t, "pw")
	api := &fakeAPI{register: ok(&models.AuthData{User: &models.UserInfo{ID: 9}})}
	ta := newTestApp(t, api, "sam", "sam@example.com")

	require.NoError(t, ta.Register(context.Background()))

	assert.Equal(t, 1, api.count("register"))
	assert.Contains(t, ta.out.String(), viewstate.MsgRegisterOK)
	assert.False(t, ta.isLoggedIn(context.Background()))
}

func TestApp_LogoutClearsSession(t *testing.T) {
	api := &fakeAPI{goal: goalOf(1000, 0, 0)}
	ta := newTestApp(t, api)
	ctx := context.Background()
	signIn(t, ta, 7)
	ta.goal.Fetch(ctx)
	require.True(t, ta.goal.HasGoal())

	require.NoError(t, ta.Logout(ctx))

	assert.False(t, ta.isLoggedIn(ctx))
	assert.False(t, ta.goal.HasGoal())
	assert.Contains(t, ta.out.String(), "Logged out.")
}

// ------------ home and goal ------------

func TestApp_HomeGoalFailureShowsCardAndNotification(t *testing.T) {
	api := &fakeAPI{goalErr: client.ErrUnavailable, profile: completeProfile()}
	ta := newTestApp(t, api)
	signIn(t, ta, 7)

	require.NoError(t, ta.Home(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, viewstate.MsgNoGoal)
	assert.Contains(t, out, viewstate.MsgStartGoal)
	assert.Contains(t, out, "* "+viewstate.MsgNetwork)
}

func TestApp_HomePromptsForIncompleteProfileOnce(t *testing.T) {
	api := &fakeAPI{
		goal: goalOf(1000, 1200, 120),
		profile: ok(&models.ProfileData{Profile: &models.Profile{
			UserID: 7, Username: "sam", Email: "sam@example.com",
		}}),
	}
	ta := newTestApp(t, api)
	signIn(t, ta, 7)
	ctx := context.Background()

	require.NoError(t, ta.Home(ctx))
	require.NoError(t, ta.Home(ctx))

	out := ta.out.String()
	assert.Equal(t, 1, strings.Count(out, "Your profile is missing weight or height"))
	assert.Contains(t, out, "1200 / 1000 kcal (120%, Goal Met! 🎉)")
	assert.False(t, ta.profile.Prompt.Get())
}

func TestApp_SetGoalRefreshesCard(t *testing.T) {
	api := &fakeAPI{goal: &models.Envelope[models.GoalState]{Message: ptr("No goal set")}}
	ta := newTestApp(t, api, "1500")
	signIn(t, ta, 7)

	require.NoError(t, ta.SetGoal(context.Background()))

	assert.Equal(t, []int{1500}, api.targets)
	assert.Equal(t, 1, api.count("goal"))
	out := ta.out.String()
	assert.Contains(t, out, "Goal updated successfully")
	assert.Contains(t, out, "Goal: 1500 kcal")
	assert.True(t, ta.goal.HasGoal())
}

func TestApp_SetGoalRejectedLocally(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "zero", input: "0", want: "Please enter a calorie target greater than zero"},
		{name: "blank", input: "", want: "Please enter a calorie target greater than zero"},
		{name: "text", input: "many", want: "Please enter a whole number of calories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			ta := newTestApp(t, api, tt.input)
			signIn(t, ta, 7)

			require.NoError(t, ta.SetGoal(context.Background()))

			assert.Empty(t, api.calls)
			assert.Contains(t, ta.out.String(), tt.want)
		})
	}
}

// ------------ activities ------------

func TestApp_AddRecordRequiresGoal(t *testing.T) {
	api := &fakeAPI{goal: &models.Envelope[models.GoalState]{Message: ptr("No goal set")}}
	ta := newTestApp(t, api, "1", "30", "200")
	signIn(t, ta, 7)

	require.NoError(t, ta.AddRecord(context.Background()))

	assert.Zero(t, api.count("submit"))
	assert.Contains(t, ta.out.String(), "Set a weekly goal")
}

func TestApp_AddRecordSubmits(t *testing.T) {
	api := &fakeAPI{
		goal:   goalOf(1000, 0, 0),
		submit: ok(&models.ActivityCreated{ActivityID: ptr(11)}),
	}
	ta := newTestApp(t, api, "2", "30", "250", "", "", "Riverside")
	signIn(t, ta, 7)

	require.NoError(t, ta.AddRecord(context.Background()))

	require.Len(t, api.submitted, 1)
	got := api.submitted[0]
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, models.ActivityRunning, got.Type)
	assert.Equal(t, 30, got.DurationMin)
	assert.Equal(t, 250, got.Calories)
	assert.Nil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
	require.NotNil(t, got.LocationName)
	assert.Equal(t, "Riverside", *got.LocationName)

	assert.Contains(t, ta.out.String(), "* Activity added")
	assert.Equal(t, 2, api.count("goal"), "goal is refreshed after a submission")
}

func TestApp_AddRecordAcceptsTypeByName(t *testing.T) {
	api := &fakeAPI{goal: goalOf(1000, 0, 0), submit: ok(&models.ActivityCreated{})}
	ta := newTestApp(t, api, "jumping rope", "10", "90", "51.5", "-0.12", "")
	signIn(t, ta, 7)

	require.NoError(t, ta.AddRecord(context.Background()))

	require.Len(t, api.submitted, 1)
	assert.Equal(t, models.ActivityJumpingRope, api.submitted[0].Type)
	require.NotNil(t, api.submitted[0].Latitude)
	assert.InDelta(t, 51.5, *api.submitted[0].Latitude, 1e-9)
}

func TestApp_AddRecordInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "unknown type", lines: []string{"9", "30", "100", "", "", ""}, want: "Please select an activity type"},
		{name: "zero duration", lines: []string{"1", "0", "100", "", "", ""}, want: "Duration must be greater than zero"},
		{name: "negative calories", lines: []string{"1", "30", "-5", "", "", ""}, want: "Calories must be greater than zero"},
		{name: "duration not a number", lines: []string{"1", "half an hour"}, want: "Duration must be a whole number of minutes"},
		{name: "latitude out of range", lines: []string{"1", "30", "100", "123", "", ""}, want: "Latitude must be between -90 and 90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{goal: goalOf(1000, 0, 0)}
			ta := newTestApp(t, api, tt.lines...)
			signIn(t, ta, 7)

			require.NoError(t, ta.AddRecord(context.Background()))

			assert.Zero(t, api.count("submit"))
			assert.Contains(t, ta.out.String(), tt.want)
		})
	}
}

func TestApp_AddRecordBackendFailure(t *testing.T) {
	api := &fakeAPI{
		goal:   goalOf(1000, 0, 0),
		submit: &models.Envelope[models.ActivityCreated]{Error: ptr("Database error")},
	}
	ta := newTestApp(t, api, "1", "30", "100", "", "", "")
	signIn(t, ta, 7)

	require.NoError(t, ta.AddRecord(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "* Database error")
	assert.NotContains(t, out, "Activity added")
	assert.Equal(t, 1, api.count("goal"))
}

func TestApp_History(t *testing.T) {
	api := &fakeAPI{history: ok(&models.ActivityList{Count: 1, Activities: []models.ActivityRecord{
		{UserID: 7, Type: models.ActivityRunning, DurationMin: 30, Calories: 250, Timestamp: "2024-03-05 07:30:00"},
	}})}
	ta := newTestApp(t, api)
	signIn(t, ta, 7)

	require.NoError(t, ta.History(context.Background(), []string{"2024-03-01", "2024-03-07"}))

	require.Len(t, api.filters, 1)
	assert.Equal(t, models.HistoryFilter{StartDate: "2024-03-01", EndDate: "2024-03-07"}, api.filters[0])
	out := ta.out.String()
	assert.Contains(t, out, "05-March-2024")
	assert.Contains(t, out, "07:30")
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "30 min")
}

func TestApp_HistoryEmptyAndBadDate(t *testing.T) {
	api := &fakeAPI{history: ok(&models.ActivityList{})}
	ta := newTestApp(t, api)
	signIn(t, ta, 7)
	ctx := context.Background()

	require.NoError(t, ta.History(ctx, nil))
	assert.Contains(t, ta.out.String(), "No activities found.")

	require.NoError(t, ta.History(ctx, []string{"2024-13-01"}))
	assert.Contains(t, ta.out.String(), "Start date must be YYYY-MM-DD")
	assert.Equal(t, 1, api.count("history"))
}

func TestApp_WeekChartsSevenDays(t *testing.T) {
	api := &fakeAPI{history: ok(&models.ActivityList{Activities: []models.ActivityRecord{
		{Type: models.ActivityRunning, Calories: 300, Timestamp: "2024-03-10 07:00:00"},
		{Type: models.ActivityCycling, Calories: 150, Timestamp: "2024-03-10 19:00:00"},
		{Type: models.ActivityWalking, Calories: 120, Timestamp: "2024-03-08 12:00:00"},
		{Type: models.ActivityWalking, Calories: 999, Timestamp: "2024-03-01 12:00:00"},
	}})}
	ta := newTestApp(t, api)
	signIn(t, ta, 7)

	require.NoError(t, ta.Week(context.Background()))

	require.Len(t, api.filters, 1)
	assert.Equal(t, models.HistoryFilter{StartDate: "2024-03-04", EndDate: "2024-03-10"}, api.filters[0])

	out := ta.out.String()
	assert.Contains(t, out, "450 kcal")
	assert.Contains(t, out, "120 kcal")
	assert.NotContains(t, out, "999 kcal")
	assert.Equal(t, 5, strings.Count(out, " 0 kcal"))
}

// ------------ profile ------------

func TestApp_Profile(t *testing.T) {
	api := &fakeAPI{profile: completeProfile()}
	ta := newTestApp(t, api)
	signIn(t, ta, 7)

	require.NoError(t, ta.Profile(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "sam@example.com")
	assert.Contains(t, out, "180 cm")
	assert.Contains(t, out, "75.5 kg")
}

func TestApp_EditProfileCachesBodyMetrics(t *testing.T) {
	api := &fakeAPI{update: &models.Envelope[models.ProfileData]{
		Success: true,
		Message: ptr("Profile updated successfully"),
		Data:    completeProfile().Data,
	}}
	ta := newTestApp(t, api, "180", "75.5", "", "", "")
	signIn(t, ta, 7)
	ctx := context.Background()

	require.NoError(t, ta.EditProfile(ctx))

	require.Len(t, api.updates, 1)
	u := api.updates[0]
	require.NotNil(t, u.Height)
	assert.InDelta(t, 180.0, *u.Height, 1e-9)
	assert.Nil(t, u.DateOfBirth)

	h, err := ta.store.Height(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, h, 1e-9)
	assert.Contains(t, ta.out.String(), "Profile updated successfully")
}

func TestApp_EditProfileLocalChecks(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "nothing entered", lines: []string{"", "", "", "", ""}, want: "Nothing to update."},
		{name: "bad height", lines: []string{"tall"}, want: "Height must be a number"},
		{name: "negative weight", lines: []string{"", "-70", "", "", ""}, want: "Weight must be greater than zero"},
		{name: "bad date", lines: []string{"", "", "01/02/1990", "", ""}, want: "Date of birth must be YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			ta := newTestApp(t, api, tt.lines...)
			signIn(t, ta, 7)

			require.NoError(t, ta.EditProfile(context.Background()))

			assert.Empty(t, api.updates)
			assert.Contains(t, ta.out.String(), tt.want)
		})
	}
}

func TestApp_EditProfileRejected(t *testing.T) {
	api := &fakeAPI{update: &models.Envelope[models.ProfileData]{Error: ptr("Invalid phone")}}
	ta := newTestApp(t, api, "", "", "", "", "abc")
	signIn(t, ta, 7)

	require.NoError(t, ta.EditProfile(context.Background()))

	assert.Contains(t, ta.out.String(), "Invalid phone")
}

// ------------ lifecycle ------------

func TestApp_CloseUnsubscribes(t *testing.T) {
	ta := newTestApp(t, &fakeAPI{})

	ta.Close()
	ta.goal.Errors.Set("late failure")

	assert.NotContains(t, ta.out.String(), "late failure")
}
