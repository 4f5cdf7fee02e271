package viewstate

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// CompletionOutcome tells what CheckCompletion did.
type CompletionOutcome int

const (
	// CompletionCached: body metrics were already cached, nothing fetched.
	CompletionCached CompletionOutcome = iota
	// CompletionStored: the fetched profile was complete and cached.
	CompletionStored
	// CompletionPrompt: the profile is incomplete and the user was prompted.
	CompletionPrompt
	// CompletionSuppressed: the profile is incomplete but the user was
	// already prompted by this holder.
	CompletionSuppressed
	// CompletionFailed: the check could not be made.
	CompletionFailed
)

func (o CompletionOutcome) String() string {
	switch o {
	case CompletionCached:
		return "cached"
	case CompletionStored:
		return "stored"
	case CompletionPrompt:
		return "prompt"
	case CompletionSuppressed:
		return "suppressed"
	default:
		return "failed"
	}
}

var profileMessages = map[string]string{
	"Height":      "Height must be greater than zero",
	"Weight":      "Weight must be greater than zero",
	"DateOfBirth": "Date of birth must be YYYY-MM-DD",
}

// ProfileHolder backs the profile screens and the profile completion check
// on the home screen.
type ProfileHolder struct {
	lifecycle

	repo    repositories.ProfileRepository
	session Session
	logger  logging.Logger

	Profile      Observable[*models.Profile]
	UpdateResult Observable[*models.Envelope[models.ProfileData]]
	// Prompt is set to true when the user should be asked to complete the
	// profile.
	Prompt Observable[bool]
	Errors Observable[string]

	prompted atomic.Bool
	fetch    stream
	update   stream
}

func NewProfileHolder(repo repositories.ProfileRepository, s Session, logger logging.Logger) *ProfileHolder {
	return &ProfileHolder{
		lifecycle: newLifecycle(),
		repo:      repo,
		session:   s,
		logger:    logger,
	}
}

// Fetch loads the signed-in user's profile into Profile.
func (h *ProfileHolder) Fetch(ctx context.Context) {
	p, err := h.load(ctx)
	if err != nil {
		h.Errors.Set(UserMessage(err, MsgProfileFail))
		return
	}
	if p != nil {
		h.Profile.Set(p)
	}
}

// load fetches the profile. A nil profile with a nil error means the
// result was stale or the holder is closed.
func (h *ProfileHolder) load(ctx context.Context) (*models.Profile, error) {
	userID, err := currentUser(ctx, h.session)
	if err != nil {
		return nil, err
	}

	ticket := h.fetch.begin()
	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Get(ctx, userID)
	if !h.fetch.accept(ticket, &h.lifecycle) {
		return nil, nil
	}
	if err != nil {
		h.logger.Warn(ctx, "fetch profile", "user_id", userID, "error", err)
		return nil, err
	}
	if !env.Success || env.Data == nil || env.Data.Profile == nil {
		return nil, &envelopeError{message: env.Text(MsgProfileFail)}
	}
	return env.Data.Profile, nil
}

// Update sends the edited fields. On success the returned profile replaces
// Profile and its body metrics are cached. The raw response is always
// published in UpdateResult.
func (h *ProfileHolder) Update(ctx context.Context, u models.ProfileUpdate) error {
	if err := check(u, profileMessages); err != nil {
		return err
	}
	userID, err := currentUser(ctx, h.session)
	if err != nil {
		return err
	}

	ticket := h.update.begin()
	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Update(ctx, userID, u)
	if !h.update.accept(ticket, &h.lifecycle) {
		return nil
	}
	if err != nil {
		h.logger.Warn(ctx, "update profile", "user_id", userID, "error", err)
		h.Errors.Set(UserMessage(err, MsgUpdateFail))
		return nil
	}

	h.UpdateResult.Set(env)
	if env.Success && env.Data != nil && env.Data.Profile != nil {
		h.Profile.Set(env.Data.Profile)
		if env.Data.Profile.HasBodyMetrics() {
			h.cache(ctx, env.Data.Profile)
		}
	}
	return nil
}

// CheckCompletion runs the one-shot profile completeness check of the home
// screen. Cached metrics short-circuit it. Otherwise the profile is
// fetched: complete metrics are cached, incomplete ones prompt the user at
// most once per holder.
func (h *ProfileHolder) CheckCompletion(ctx context.Context) CompletionOutcome {
	weight, err := h.session.Weight(ctx)
	if err != nil {
		h.logger.Error(ctx, "read cached weight", "error", err)
		return CompletionFailed
	}
	height, err := h.session.Height(ctx)
	if err != nil {
		h.logger.Error(ctx, "read cached height", "error", err)
		return CompletionFailed
	}
	if weight > 0 || height > 0 {
		return CompletionCached
	}

	p, err := h.load(ctx)
	if err != nil || p == nil {
		return CompletionFailed
	}
	h.Profile.Set(p)

	if !p.HasBodyMetrics() {
		if !h.prompted.CompareAndSwap(false, true) {
			return CompletionSuppressed
		}
		h.Prompt.Set(true)
		return CompletionPrompt
	}

	if !h.cache(ctx, p) {
		return CompletionFailed
	}
	return CompletionStored
}

// DismissPrompt acknowledges the completion prompt.
func (h *ProfileHolder) DismissPrompt() {
	h.Prompt.Set(false)
}

func (h *ProfileHolder) cache(ctx context.Context, p *models.Profile) bool {
	age := 0
	if p.Age != nil {
		age = *p.Age
	}
	if err := h.session.SaveBodyInfo(ctx, *p.Weight, *p.Height, age); err != nil {
		h.logger.Error(ctx, "cache body info", "error", err)
		return false
	}
	return true
}

// UpdateMessage is the notification text for a profile update response.
func UpdateMessage(env *models.Envelope[models.ProfileData]) string {
	if env == nil {
		return MsgUpdateFail
	}
	if env.Success {
		return env.MessageOr(MsgProfileOK)
	}
	return env.Text(MsgUpdateFail)
}
