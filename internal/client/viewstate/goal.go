package viewstate

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// Status is the load state of a holder.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// GoalResult is what the goal display surface renders. A failed fetch is
// reported as Success=false with Message "No goal set" and the failure
// text in Error, the same shape as a user who has no goal yet.
type GoalResult struct {
	Success bool
	Message string
	Error   string
	Goal    *models.GoalState
}

type goalInput struct {
	Target int `validate:"gt=0"`
}

var goalMessages = map[string]string{
	"Target": "Please enter a calorie target greater than zero",
}

// GoalHolder fetches and updates the weekly calorie goal. Progress is
// always taken from the backend: a successful update is followed by a
// fresh fetch.
type GoalHolder struct {
	lifecycle

	repo    repositories.GoalRepository
	session Session
	logger  logging.Logger

	Status Observable[Status]
	Goal   Observable[*GoalResult]
	Update Observable[*models.Envelope[models.GoalState]]
	// Errors receives messages meant for a transient notification. Goal
	// fetch failures are published here as well as in Goal.
	Errors Observable[string]

	fetch  stream
	update stream
}

func NewGoalHolder(repo repositories.GoalRepository, s Session, logger logging.Logger) *GoalHolder {
	return &GoalHolder{
		lifecycle: newLifecycle(),
		repo:      repo,
		session:   s,
		logger:    logger,
	}
}

// Fetch loads the current goal of the signed-in user.
func (h *GoalHolder) Fetch(ctx context.Context) {
	userID, err := currentUser(ctx, h.session)
	if err != nil {
		h.fetchFailed(UserMessage(err, MsgGoalLoad))
		return
	}

	ticket := h.fetch.begin()
	h.Status.Set(StatusLoading)

	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Current(ctx, userID)
	if !h.fetch.accept(ticket, &h.lifecycle) {
		return
	}
	if err != nil {
		h.logger.Warn(ctx, "fetch goal", "user_id", userID, "error", err)
		h.fetchFailed(UserMessage(err, MsgGoalLoad))
		return
	}

	res := &GoalResult{Success: env.Success, Goal: env.Data}
	if env.Success {
		res.Message = env.MessageOr("")
	} else {
		res.Message = env.MessageOr(MsgNoGoal)
		if env.Error != nil {
			res.Error = *env.Error
		}
	}
	h.Goal.Set(res)
	h.Status.Set(StatusLoaded)
}

func (h *GoalHolder) fetchFailed(msg string) {
	h.Goal.Set(&GoalResult{Success: false, Message: MsgNoGoal, Error: msg})
	h.Errors.Set(msg)
	h.Status.Set(StatusFailed)
}

// SetGoal stores a new weekly target and refreshes the goal when the
// backend accepts it. A non-positive target or a missing session is
// rejected locally.
func (h *GoalHolder) SetGoal(ctx context.Context, target int) error {
	if err := check(goalInput{Target: target}, goalMessages); err != nil {
		return err
	}
	userID, err := currentUser(ctx, h.session)
	if err != nil {
		return err
	}

	ticket := h.update.begin()
	bctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Set(bctx, userID, target)
	if !h.update.accept(ticket, &h.lifecycle) {
		return nil
	}
	if err != nil {
		h.logger.Warn(ctx, "set goal", "user_id", userID, "error", err)
		h.Errors.Set(UserMessage(err, MsgGoalFail))
		return nil
	}

	h.Update.Set(env)
	if !env.Success {
		h.Errors.Set(env.Text(MsgGoalFail))
		return nil
	}

	h.Fetch(ctx)
	return nil
}

// Reset clears the update result and the pending notification.
func (h *GoalHolder) Reset() {
	h.Update.Set(nil)
	h.Errors.Set("")
}

// HasGoal reports whether the last fetch returned a target above zero.
func (h *GoalHolder) HasGoal() bool {
	r := h.Goal.Get()
	return r != nil && r.Success && r.Goal.Target() > 0
}

// GoalView is the derived presentation of a goal. Percent keeps the raw
// backend value; Bar is the same value clamped to [0, 100].
type GoalView struct {
	HasGoal  bool
	Target   int
	Current  int
	Percent  float64
	Bar      int
	Met      bool
	Headline string
	Detail   string
}

// DisplayGoal derives the goal card from r.
func DisplayGoal(r *GoalResult) GoalView {
	if r == nil || !r.Success {
		return GoalView{Headline: MsgNoGoal, Detail: MsgStartGoal}
	}

	v := GoalView{
		HasGoal: true,
		Target:  r.Goal.Target(),
		Current: r.Goal.Current(),
		Percent: r.Goal.Percent(),
	}
	v.Bar = clamp(int(v.Percent), 0, 100)
	v.Met = v.Percent >= 100
	v.Headline = fmt.Sprintf("Goal: %d kcal", v.Target)
	if v.Met {
		v.Detail = fmt.Sprintf("%d / %d kcal (%d%%, Goal Met! 🎉)", v.Current, v.Target, int(v.Percent))
	} else {
		v.Detail = fmt.Sprintf("%d / %d kcal (%d%%)", v.Current, v.Target, int(v.Percent))
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
