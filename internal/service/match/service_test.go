package match_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Mikheydazz/starmatch-bot/internal/app"
	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/cache"
	"github.com/Mikheydazz/starmatch-bot/internal/config"
	"github.com/Mikheydazz/starmatch-bot/internal/db"
	"github.com/Mikheydazz/starmatch-bot/internal/repository"
	"github.com/Mikheydazz/starmatch-bot/internal/service/match"
)

// recordingNotifier captures mutual-match notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	pairs [][2]string
}

func (n *recordingNotifier) NotifyMutualMatch(_ context.Context, a, b string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pairs = append(n.pairs, [2]string{a, b})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pairs)
}

// setupService spins up an in-memory SQLite DB, a miniredis, and wires both
// into a match service. Each test gets its own isolated DB + Redis.
func setupService(t *testing.T) (*match.Service, *recordingNotifier, *app.AppContext) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(db.Models()...))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = ""
	cfg.App.MatchPrice = 1
	cfg.App.StartBalance = 3
	cfg.App.ReportThreshold = 15

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	notifier := &recordingNotifier{}
	appCtx := app.New(cfg, gdb, redisCache, logger)
	return match.NewService(appCtx, notifier), notifier, appCtx
}

func saveUser(t *testing.T, svc *match.Service, id, gender, birthday string) *db.User {
	t.Helper()
	user, err := svc.SaveProfile(context.Background(), match.ProfileInput{
		UserID:   id,
		Name:     "User " + id,
		Gender:   gender,
		Birthday: birthday,
		Bio:      "test profile",
		City:     "Moscow",
	})
	require.NoError(t, err)
	return user
}

func TestSaveProfileDerivesFields(t *testing.T) {
	svc, _, _ := setupService(t)

	user := saveUser(t, svc, "u1", "female", "15.04.1986")
	assert.Equal(t, "Aries ♈", user.Zodiac)
	assert.GreaterOrEqual(t, user.Age, 40)
	assert.Equal(t, 3, user.Balance)

	_, err := svc.SaveProfile(context.Background(), match.ProfileInput{
		UserID: "u2", Name: "Bad", Gender: "male", Birthday: "31.02.2000",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLikeAndMutualPromotion(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")
	saveUser(t, svc, "b", "female", "03.11.1992")

	res, err := svc.Like(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, res.Mutual)
	assert.Equal(t, 0, notifier.count())

	res, err = svc.Like(ctx, "b", "a")
	require.NoError(t, err)
	assert.True(t, res.Mutual)
	assert.Equal(t, 1, notifier.count())

	// repeating the like never re-notifies or duplicates the match
	res, err = svc.Like(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, res.Mutual)
	assert.Equal(t, 1, notifier.count())
}

func TestLikeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")

	_, err := svc.Like(ctx, "a", "a")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Like(ctx, "a", "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Like(ctx, "ghost", "a")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCheckCompatibilitySpendsBalance(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")
	saveUser(t, svc, "b", "female", "03.11.1992")

	res, err := svc.CheckCompatibility(ctx, "a", "b")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Percentage, 0.0)
	assert.LessOrEqual(t, res.Percentage, 100.0)
	assert.InDelta(t, res.MatrixScore, res.Percentage, 0.05)

	user, err := svc.Profile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, user.Balance)
}

func TestCheckCompatibilityInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")
	saveUser(t, svc, "b", "female", "03.11.1992")

	for i := 0; i < 3; i++ {
		_, err := svc.CheckCompatibility(ctx, "a", "b")
		require.NoError(t, err)
	}

	_, err := svc.CheckCompatibility(ctx, "a", "b")
	assert.ErrorIs(t, err, apperr.ErrInsufficientBalance)
}

func TestCheckCompatibilityRefundsOnMissingTarget(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")

	_, err := svc.CheckCompatibility(ctx, "a", "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	user, err := svc.Profile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, user.Balance, "credits must be refunded when the target is missing")
}

func TestScoreDates(t *testing.T) {
	svc, _, _ := setupService(t)

	res, err := svc.ScoreDates("15.04.1986", "15.04.1986")
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Percentage)

	_, err = svc.ScoreDates("15.04.1986", "bad")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestMatches(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")
	saveUser(t, svc, "b", "female", "03.11.1992")
	saveUser(t, svc, "c", "female", "27.07.1989")

	_, _ = svc.Like(ctx, "a", "b")
	_, _ = svc.Like(ctx, "b", "a")
	_, _ = svc.Like(ctx, "c", "a") // one-sided

	matches, err := svc.Matches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "b", matches[0].UserID)
}

func TestLikeCountCacheFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, appCtx := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")
	saveUser(t, svc, "b", "female", "03.11.1992")
	saveUser(t, svc, "c", "female", "27.07.1989")

	_, _ = svc.Like(ctx, "b", "a")
	_, _ = svc.Like(ctx, "c", "a")

	// first call hits the DB and populates the cache
	count, err := svc.LikeCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	cached, ok, err := appCtx.Cache.GetCounter(ctx, appCtx.Cache.KeyForLikeCount("a"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), cached)

	// second call serves the cached value
	count, err = svc.LikeCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBrowseExcludesViewer(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")
	saveUser(t, svc, "b", "female", "03.11.1992")
	saveUser(t, svc, "c", "female", "27.07.1989")

	users, _, err := svc.Browse(ctx, "a", repository.BrowseFilter{}, nil, 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, "a", u.UserID)
	}
}

func TestTopUp(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	saveUser(t, svc, "a", "male", "15.04.1986")

	payment, err := svc.TopUp(ctx, "a", 5, "stars purchase")
	require.NoError(t, err)
	assert.Equal(t, 5, payment.Amount)

	user, err := svc.Profile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 8, user.Balance)

	_, err = svc.TopUp(ctx, "a", 0, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.TopUp(ctx, "ghost", 5, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
