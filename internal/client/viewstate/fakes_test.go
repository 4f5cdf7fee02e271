package viewstate

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/session"
)

func ptr[T any](v T) *T { return &v }

// memSession is an in-memory Session.
type memSession struct {
	mu     sync.Mutex
	userID int
	weight float64
	height float64
	age    int
	err    error

	bodySaves int
}

func newMemSession(userID int) *memSession {
	return &memSession{userID: userID}
}

func (s *memSession) SaveUserID(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.userID = id
	return nil
}

func (s *memSession) UserID(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return session.NoUser, s.err
	}
	return s.userID, nil
}

func (s *memSession) SaveBodyInfo(_ context.Context, w, h float64, age int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.weight, s.height, s.age = w, h, age
	s.bodySaves++
	return nil
}

func (s *memSession) Weight(context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weight, s.err
}

func (s *memSession) Height(context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height, s.err
}

func (s *memSession) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID, s.weight, s.height, s.age = session.NoUser, 0, 0, 0
	return s.err
}

type fakeAuthRepo struct {
	loginEnv *models.Envelope[models.AuthData]
	regEnv   *models.Envelope[models.AuthData]
	err      error
	calls    int
}

func (f *fakeAuthRepo) Login(context.Context, string, string) (*models.Envelope[models.AuthData], error) {
	f.calls++
	return f.loginEnv, f.err
}

func (f *fakeAuthRepo) Register(context.Context, string, string, string) (*models.Envelope[models.AuthData], error) {
	f.calls++
	return f.regEnv, f.err
}

// fakeGoalRepo keeps a server-side goal so that Set followed by Current
// behaves like the backend.
type fakeGoalRepo struct {
	mu        sync.Mutex
	target    *int
	current   int
	fetchErr  error
	setErr    error
	setEnv    *models.Envelope[models.GoalState]
	fetches   int
	sets      int
	lastSetTo int
}

func (f *fakeGoalRepo) Current(context.Context, int) (*models.Envelope[models.GoalState], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.target == nil {
		return &models.Envelope[models.GoalState]{Success: false, Message: ptr("No goal found")}, nil
	}
	pct := float64(f.current) * 100 / float64(*f.target)
	return &models.Envelope[models.GoalState]{Success: true, Data: &models.GoalState{
		TargetCalories:  ptr(*f.target),
		CurrentCalories: ptr(f.current),
		ProgressPercent: &pct,
	}}, nil
}

func (f *fakeGoalRepo) Set(_ context.Context, _ int, target int) (*models.Envelope[models.GoalState], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.lastSetTo = target
	if f.setErr != nil {
		return nil, f.setErr
	}
	if f.setEnv != nil {
		return f.setEnv, nil
	}
	f.target = ptr(target)
	return &models.Envelope[models.GoalState]{Success: true, Message: ptr("Goal updated")}, nil
}

type fakeActivityRepo struct {
	mu       sync.Mutex
	added    []models.ActivityRecord
	addEnv   *models.Envelope[models.ActivityCreated]
	addErr   error
	histEnv  *models.Envelope[models.ActivityList]
	histErr  error
	histHook func()
	filters  []models.HistoryFilter
}

func (f *fakeActivityRepo) Add(_ context.Context, r models.ActivityRecord) (*models.Envelope[models.ActivityCreated], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, r)
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.addEnv != nil {
		return f.addEnv, nil
	}
	return &models.Envelope[models.ActivityCreated]{Success: true, Data: &models.ActivityCreated{ActivityID: ptr(1)}}, nil
}

func (f *fakeActivityRepo) History(_ context.Context, _ int, filter models.HistoryFilter) (*models.Envelope[models.ActivityList], error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	hook := f.histHook
	env, err := f.histEnv, f.histErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return env, err
}

type fakeProfileRepo struct {
	getEnv    *models.Envelope[models.ProfileData]
	getErr    error
	updateEnv *models.Envelope[models.ProfileData]
	updateErr error
	gets      int
	updates   []models.ProfileUpdate
}

func (f *fakeProfileRepo) Get(context.Context, int) (*models.Envelope[models.ProfileData], error) {
	f.gets++
	return f.getEnv, f.getErr
}

func (f *fakeProfileRepo) Update(_ context.Context, _ int, u models.ProfileUpdate) (*models.Envelope[models.ProfileData], error) {
	f.updates = append(f.updates, u)
	return f.updateEnv, f.updateErr
}
