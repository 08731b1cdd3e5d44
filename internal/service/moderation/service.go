package moderation

import (
	"context"

	"github.com/Mikheydazz/starmatch-bot/internal/app"
	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/db"
	"github.com/Mikheydazz/starmatch-bot/internal/metrics"
	"github.com/Mikheydazz/starmatch-bot/internal/repository"
)

// ModeratorNotifier is told when a profile crosses the report threshold and
// gets auto-hidden, so a human can review it.
type ModeratorNotifier interface {
	NotifyThresholdReached(ctx context.Context, userID string, totalReports int64)
}

// Service owns reports, bans and profile visibility.
type Service struct {
	appCtx   *app.AppContext
	repo     *repository.ModerationRepository
	users    *repository.UserRepository
	notifier ModeratorNotifier
}

// NewService creates the moderation service with dependencies from
// AppContext. A nil notifier falls back to logging threshold crossings.
func NewService(appCtx *app.AppContext, notifier ModeratorNotifier) *Service {
	if notifier == nil {
		notifier = &logNotifier{appCtx: appCtx}
	}
	return &Service{
		appCtx:   appCtx,
		repo:     repository.NewModerationRepository(appCtx.DB),
		users:    repository.NewUserRepository(appCtx.DB),
		notifier: notifier,
	}
}

type logNotifier struct {
	appCtx *app.AppContext
}

func (n *logNotifier) NotifyThresholdReached(_ context.Context, userID string, totalReports int64) {
	n.appCtx.Logger.Warn("report threshold reached, profile hidden",
		"user", userID, "reports", totalReports)
}

// ReportResult reports whether a submission was stored and the live count.
type ReportResult struct {
	Accepted     bool  `json:"accepted"`
	TotalReports int64 `json:"total_reports"`
}

// AddReport files a report against a user.
//
// Behavior:
//   - Reporting yourself or a missing profile is rejected.
//   - A duplicate from the same reporter is not an error: accepted=false and
//     the count is unchanged.
//   - When the count reaches the threshold, the profile is hidden in the same
//     transaction and the moderator notifier fires once.
func (s *Service) AddReport(ctx context.Context, reportedID, reporterID, reason string) (ReportResult, error) {
	if reportedID == "" || reporterID == "" {
		return ReportResult{}, apperr.Validation("user ids must not be empty")
	}
	if reportedID == reporterID {
		return ReportResult{}, apperr.Validation("cannot report yourself")
	}

	exists, err := s.users.Exists(ctx, reportedID)
	if err != nil {
		return ReportResult{}, apperr.Storage(err)
	}
	if !exists {
		return ReportResult{}, apperr.NotFound("user %s", reportedID)
	}

	threshold := s.appCtx.Cfg.App.ReportThreshold
	accepted, total, crossed, err := s.repo.AddReport(ctx, reportedID, reporterID, reason, threshold)
	if err != nil {
		return ReportResult{}, apperr.Storage(err)
	}

	metrics.IncReport(accepted)

	if accepted {
		_ = s.appCtx.Cache.SetCounter(ctx, s.appCtx.Cache.KeyForReportCount(reportedID), total)
	}
	if crossed {
		s.notifier.NotifyThresholdReached(ctx, reportedID, total)
	}

	return ReportResult{Accepted: accepted, TotalReports: total}, nil
}

// Ban blocks a user, hides their profile and purges their reports.
func (s *Service) Ban(ctx context.Context, userID, reason, bannedBy string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if !exists {
		return apperr.NotFound("user %s", userID)
	}

	if err := s.repo.Ban(ctx, userID, reason, bannedBy); err != nil {
		return apperr.Storage(err)
	}

	metrics.IncBan()
	_ = s.appCtx.Cache.Del(ctx, s.appCtx.Cache.KeyForReportCount(userID))
	s.appCtx.Logger.Info("user banned", "user", userID, "by", bannedBy, "reason", reason)
	return nil
}

// Unban lifts a ban and unhides the profile. Reports purged by the ban stay
// purged.
func (s *Service) Unban(ctx context.Context, userID string) error {
	if err := s.repo.Unban(ctx, userID); err != nil {
		return apperr.Storage(err)
	}
	_ = s.appCtx.Cache.Del(ctx, s.appCtx.Cache.KeyForReportCount(userID))
	s.appCtx.Logger.Info("user unbanned", "user", userID)
	return nil
}

// IsVisible reports whether a profile may appear in browse results: not
// banned, not hidden, and under the report threshold. The live report count
// is rechecked so a stale hidden flag can never expose an over-threshold
// profile.
func (s *Service) IsVisible(ctx context.Context, userID string) (bool, error) {
	banned, err := s.repo.IsBanned(ctx, userID)
	if err != nil {
		return false, apperr.Storage(err)
	}
	if banned {
		return false, nil
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.Hidden {
		return false, nil
	}

	count, err := s.repo.ReportCount(ctx, userID)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return count < int64(s.appCtx.Cfg.App.ReportThreshold), nil
}

// ReportCount returns reports filed against a user, cache-first.
func (s *Service) ReportCount(ctx context.Context, userID string) (int64, error) {
	key := s.appCtx.Cache.KeyForReportCount(userID)
	if n, ok, _ := s.appCtx.Cache.GetCounter(ctx, key); ok {
		return n, nil
	}

	count, err := s.repo.ReportCount(ctx, userID)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	_ = s.appCtx.Cache.SetCounter(ctx, key, count)
	return count, nil
}

// MostReported lists visible users by report count for moderator review.
func (s *Service) MostReported(ctx context.Context, limit int) ([]repository.ReportedUser, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.repo.MostReported(ctx, limit)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// ReportsFor returns the report history for one user.
func (s *Service) ReportsFor(ctx context.Context, userID string) ([]db.Report, error) {
	reports, err := s.repo.ReportsFor(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return reports, nil
}

// BannedUsers lists all current bans.
func (s *Service) BannedUsers(ctx context.Context) ([]db.Ban, error) {
	bans, err := s.repo.BannedUsers(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return bans, nil
}
