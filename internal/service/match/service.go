package match

import (
	"context"
	"time"

	"github.com/Mikheydazz/starmatch-bot/internal/app"
	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/db"
	"github.com/Mikheydazz/starmatch-bot/internal/metrics"
	"github.com/Mikheydazz/starmatch-bot/internal/numerology"
	"github.com/Mikheydazz/starmatch-bot/internal/repository"
)

// MatchNotifier is told when a like promotes into a mutual match so the
// front-end can ping both parties. Implementations must not block the
// request path on delivery.
type MatchNotifier interface {
	NotifyMutualMatch(ctx context.Context, userA, userB string)
}

// Service owns the like ledger, compatibility checks and profile browsing.
type Service struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	likes    *repository.LikeRepository
	notifier MatchNotifier
}

// NewService creates the match service with dependencies from AppContext.
// A nil notifier falls back to logging match promotions.
func NewService(appCtx *app.AppContext, notifier MatchNotifier) *Service {
	if notifier == nil {
		notifier = &logNotifier{appCtx: appCtx}
	}
	return &Service{
		appCtx:   appCtx,
		users:    repository.NewUserRepository(appCtx.DB),
		likes:    repository.NewLikeRepository(appCtx.DB),
		notifier: notifier,
	}
}

type logNotifier struct {
	appCtx *app.AppContext
}

func (n *logNotifier) NotifyMutualMatch(_ context.Context, userA, userB string) {
	n.appCtx.Logger.Info("mutual match", "user_a", userA, "user_b", userB)
}

// LikeResult reports whether a like action left the pair in a mutual match.
type LikeResult struct {
	Mutual bool `json:"mutual"`
}

// Like records interest from one user toward another.
//
// Behavior:
//   - Liking yourself or a missing profile is rejected.
//   - Duplicate likes from the same direction are no-ops.
//   - Liking an already-mutual pair reports mutual without changing state.
//   - When the reverse like exists, the pair is promoted atomically and both
//     parties are notified exactly once.
func (s *Service) Like(ctx context.Context, fromID, toID string) (LikeResult, error) {
	if fromID == "" || toID == "" {
		return LikeResult{}, apperr.Validation("user ids must not be empty")
	}
	if fromID == toID {
		return LikeResult{}, apperr.Validation("cannot like yourself")
	}

	for _, id := range []string{fromID, toID} {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return LikeResult{}, apperr.Storage(err)
		}
		if !exists {
			return LikeResult{}, apperr.NotFound("user %s", id)
		}
	}

	mutual, promoted, err := s.likes.Like(ctx, fromID, toID)
	if err != nil {
		return LikeResult{}, apperr.Storage(err)
	}

	metrics.IncLike()

	// counters are advisory; drop them and let the next read repopulate
	_ = s.appCtx.Cache.Del(ctx, s.appCtx.Cache.KeyForLikeCount(toID))
	_ = s.appCtx.Cache.Del(ctx, s.appCtx.Cache.KeyForLikeCount(fromID))

	if promoted {
		metrics.IncMatch()
		s.notifier.NotifyMutualMatch(ctx, fromID, toID)
	}

	return LikeResult{Mutual: mutual}, nil
}

// ScoreDates computes compatibility for two raw birth dates without touching
// stored profiles or balances.
func (s *Service) ScoreDates(dateA, dateB string) (numerology.Result, error) {
	result, err := numerology.Score(dateA, dateB)
	if err != nil {
		return numerology.Result{}, err
	}
	metrics.ObserveCompatibility(result.Percentage)
	return result, nil
}

// CheckCompatibility scores the caller against another stored profile.
//
// The check costs MatchPrice credits. The spend happens first as a
// conditional decrement; if the target profile turns out to be missing the
// credits are refunded before the NotFound surfaces.
func (s *Service) CheckCompatibility(ctx context.Context, userID, targetID string) (numerology.Result, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return numerology.Result{}, err
	}

	price := s.appCtx.Cfg.App.MatchPrice
	if err := s.users.SpendBalance(ctx, userID, price); err != nil {
		return numerology.Result{}, err
	}

	target, err := s.users.Get(ctx, targetID)
	if err != nil {
		if refundErr := s.users.AddBalance(ctx, userID, price); refundErr != nil {
			s.appCtx.Logger.Error("refund failed", "user", userID, "err", refundErr)
		}
		return numerology.Result{}, err
	}

	result, err := numerology.Score(user.Birthday, target.Birthday)
	if err != nil {
		if refundErr := s.users.AddBalance(ctx, userID, price); refundErr != nil {
			s.appCtx.Logger.Error("refund failed", "user", userID, "err", refundErr)
		}
		return numerology.Result{}, err
	}

	metrics.ObserveCompatibility(result.Percentage)
	return result, nil
}

// ProfileInput carries the fields a user supplies about themselves.
// Age and zodiac are derived from the birthday, never taken from input.
type ProfileInput struct {
	UserID   string
	Name     string
	Gender   string
	Birthday string
	Bio      string
	City     string
	PhotoID  string
}

// SaveProfile registers or updates a profile. New profiles start with the
// configured credit balance; the upsert never resets an existing balance.
func (s *Service) SaveProfile(ctx context.Context, in ProfileInput) (*db.User, error) {
	age, err := numerology.Age(in.Birthday, time.Now())
	if err != nil {
		return nil, err
	}
	day, month, _, err := numerology.ParseDate(in.Birthday)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		UserID:   in.UserID,
		Name:     in.Name,
		Gender:   in.Gender,
		Birthday: in.Birthday,
		Age:      age,
		Bio:      in.Bio,
		Zodiac:   numerology.ZodiacSign(day, month),
		City:     in.City,
		PhotoID:  in.PhotoID,
		Balance:  s.appCtx.Cfg.App.StartBalance,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperr.Storage(err)
	}
	return s.users.Get(ctx, in.UserID)
}

// Profile fetches a stored profile.
func (s *Service) Profile(ctx context.Context, userID string) (*db.User, error) {
	return s.users.Get(ctx, userID)
}

// Browse lists visible candidate profiles for a viewer with cursor
// pagination. Hidden and banned profiles never appear.
func (s *Service) Browse(
	ctx context.Context,
	viewerID string,
	filter repository.BrowseFilter,
	paginationToken *string,
	limit int,
) ([]db.User, *string, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	users, next, err := s.users.Browse(ctx, viewerID, filter, paginationToken, limit)
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}
	return users, next, nil
}

// Matches returns the profiles on the other end of the caller's mutual
// matches.
func (s *Service) Matches(ctx context.Context, userID string) ([]db.User, error) {
	ids, err := s.likes.MatchesFor(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	profiles := make([]db.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.Get(ctx, id)
		if err != nil {
			continue // partner profile deleted; skip
		}
		profiles = append(profiles, *u)
	}
	return profiles, nil
}

// LikeCount returns how many one-sided likes the user has received.
// Cache-first: Redis with TTL, DB fallback, cache repopulated on miss.
func (s *Service) LikeCount(ctx context.Context, userID string) (int64, error) {
	key := s.appCtx.Cache.KeyForLikeCount(userID)
	if n, ok, _ := s.appCtx.Cache.GetCounter(ctx, key); ok {
		return n, nil
	}

	count, err := s.likes.CountReceived(ctx, userID)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	_ = s.appCtx.Cache.SetCounter(ctx, key, count)
	return count, nil
}

// TopUp records a payment and credits the balance.
func (s *Service) TopUp(ctx context.Context, userID string, amount int, description string) (*db.Payment, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount must be positive, got %d", amount)
	}
	payment, err := s.users.AddPayment(ctx, userID, amount, description)
	if err != nil {
		return nil, err
	}
	return payment, nil
}
