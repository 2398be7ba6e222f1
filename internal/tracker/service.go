package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/striketrack/backend/internal/domain"
	"github.com/striketrack/backend/internal/period"
)

// userRepo defines the user repository interface needed by the service.
type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

// goalRepo defines the goal-tracker repository interface needed by the service.
type goalRepo interface {
	ListDaily(ctx context.Context) ([]domain.DailyGoalRecord, error)
	ListWeekly(ctx context.Context) ([]domain.WeeklyGoalRecord, error)
	ListIncompleteDaily(ctx context.Context) ([]domain.DailyGoalRecord, error)
	ListIncompleteWeekly(ctx context.Context) ([]domain.WeeklyGoalRecord, error)
	MarkDailyIncomplete(ctx context.Context, userID, goal, date, comments string) (int64, error)
	MarkWeeklyIncomplete(ctx context.Context, userID, goal, week, comments string) (int64, error)
	InsertDaily(ctx context.Context, rec domain.DailyGoalRecord) error
	InsertWeekly(ctx context.Context, rec domain.WeeklyGoalRecord) error
}

// notifier delivers a pre-formatted text message to the chat sink.
type notifier interface {
	Send(ctx context.Context, text string) error
	SendStrikeNotice(ctx context.Context, n domain.StrikeNotice) error
}

// txRunner executes fn inside a database transaction.
type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// noTx runs fn directly. Used when no transaction manager is injected.
type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Service orchestrates the pure tracker core against the record store and
// the notification sink. It holds no mutable state; every call works on a
// fresh snapshot. Collaborators are injected explicitly — there is no
// process-wide client singleton.
type Service struct {
	log      *slog.Logger
	users    userRepo
	goals    goalRepo
	notify   notifier
	tx       txRunner
	now      func() time.Time
	location *time.Location
}

// NewService creates the tracker service. loc is the report timezone; nowFn
// defaults to time.Now when nil (tests inject a fixed clock); tx may be nil
// when the store offers no transactions.
func NewService(logger *slog.Logger, users userRepo, goals goalRepo, notify notifier, tx txRunner, loc *time.Location, nowFn func() time.Time) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if tx == nil {
		tx = noTx{}
	}
	return &Service{
		log:      logger.With("service", "tracker"),
		users:    users,
		goals:    goals,
		notify:   notify,
		tx:       tx,
		now:      nowFn,
		location: loc,
	}
}

// Snapshot is a consistent in-memory view of the record store.
type Snapshot struct {
	Users  []domain.User
	States []domain.UserGoalState
}

// Snapshot fetches users plus all daily and weekly rows concurrently and
// aggregates them. Quarantined rows are logged and dropped.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		users  []domain.User
		daily  []domain.DailyGoalRecord
		weekly []domain.WeeklyGoalRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.goals.ListDaily(gctx)
		return err
	})
	g.Go(func() (err error) {
		weekly, err = s.goals.ListWeekly(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	states, quarantined := Aggregate(users, daily, weekly)
	for _, q := range quarantined {
		s.log.Warn("quarantined goal row",
			slog.String("table", q.Table),
			slog.String("user_id", q.UserID),
			slog.String("goal", q.Goal),
			slog.String("key", q.Key),
		)
	}

	return &Snapshot{Users: users, States: states}, nil
}

// UserDashboard is one user's display-ready view: eligible periods as the
// column axis, distinct goal names as the row axis, plus the grouped goals.
type UserDashboard struct {
	UserID          string                        `json:"user_id"`
	Name            string                        `json:"name"`
	DailyDates      []string                      `json:"daily_dates"`
	DailyGoalNames  []string                      `json:"daily_goal_names"`
	DailyGoals      map[string][]domain.GoalEntry `json:"daily_goals"`
	WeeklyKeys      []string                      `json:"weekly_keys"`
	WeeklyGoalNames []string                      `json:"weekly_goal_names"`
	WeeklyGoals     map[string][]domain.GoalEntry `json:"weekly_goals"`
}

// Dashboard returns the per-user tables and summaries for the UI.
func (s *Service) Dashboard(ctx context.Context) ([]UserDashboard, []domain.UserSummary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := s.now().In(s.location)
	names := make(map[string]string, len(snap.Users))
	for _, u := range snap.Users {
		names[u.ID] = u.DisplayName()
	}

	boards := make([]UserDashboard, 0, len(snap.States))
	for _, st := range snap.States {
		dates := DueDates(st.DailyGoals, now)
		weeks := DueWeeks(st.WeeklyGoals, now)
		boards = append(boards, UserDashboard{
			UserID:          st.UserID,
			Name:            names[st.UserID],
			DailyDates:      dates,
			DailyGoalNames:  GoalNames(st.DailyGoals, dates),
			DailyGoals:      st.DailyGoals,
			WeeklyKeys:      weeks,
			WeeklyGoalNames: GoalNames(st.WeeklyGoals, weeks),
			WeeklyGoals:     st.WeeklyGoals,
		})
	}

	return boards, Summarize(snap.Users, snap.States), nil
}

// Report builds the strike report text from the incomplete-only rows, the
// way the scheduled job reads the store. On this snapshot every row is an
// explicit strike, so the headline and itemized counts coincide.
func (s *Service) Report(ctx context.Context) (string, error) {
	var (
		users  []domain.User
		daily  []domain.DailyGoalRecord
		weekly []domain.WeeklyGoalRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.goals.ListIncompleteDaily(gctx)
		return err
	})
	g.Go(func() (err error) {
		weekly, err = s.goals.ListIncompleteWeekly(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("fetch report rows: %w", err)
	}

	states, _ := Aggregate(users, daily, weekly)
	now := s.now().In(s.location)
	s.log.Info("building report",
		slog.String("week", period.WeekKeyOf(now)),
		slog.Int("users", len(users)),
	)

	return BuildReport(now, s.location, Summarize(users, states)), nil
}

// SendReport builds the report and delivers it to the notification sink.
func (s *Service) SendReport(ctx context.Context) (string, error) {
	text, err := s.Report(ctx)
	if err != nil {
		return "", err
	}
	if err := s.notify.Send(ctx, text); err != nil {
		return "", fmt.Errorf("send report: %w", err)
	}
	return text, nil
}

// commentsRe is the charset the strike form accepts for comments.
var commentsRe = regexp.MustCompile(`^[a-zA-Z0-9,' -]*$`)

// AddStrikeInput is the admin "mark incomplete" mutation input. Period is a
// date key for daily goals and a week key for weekly ones.
type AddStrikeInput struct {
	UserID   string          `json:"user_id"`
	GoalType domain.GoalType `json:"goal_type"`
	Goal     string          `json:"goal"`
	Period   string          `json:"period"`
	Comments string          `json:"comments"`
}

func (in AddStrikeInput) validate() error {
	switch {
	case in.UserID == "":
		return domain.NewValidationError("user_id", "is required")
	case !in.GoalType.Valid():
		return domain.NewValidationError("goal_type", "must be daily or weekly")
	case in.Goal == "":
		return domain.NewValidationError("goal", "is required")
	case len(in.Comments) > 200:
		return domain.NewValidationError("comments", "must be at most 200 characters")
	case !commentsRe.MatchString(in.Comments):
		return domain.NewValidationError("comments", "contains unsupported characters")
	}

	if in.GoalType == domain.GoalTypeDaily {
		if !domain.IsDateKey(in.Period) {
			return domain.NewValidationError("period", "must be a YYYY-MM-DD date")
		}
		return nil
	}
	if _, _, err := period.ParseWeekKey(in.Period); err != nil {
		return domain.NewValidationError("period", "must be a valid YYYY-W## week")
	}
	return nil
}

// AddStrike marks the matching goal row incomplete, inserting a fresh
// incomplete row when no row exists for that user/goal/period yet, then
// sends the single-strike notice and a refreshed report. Notification
// failures are logged, not returned: the strike is already recorded.
func (s *Service) AddStrike(ctx context.Context, in AddStrikeInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	user, err := s.users.Get(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("look up user %s: %w", in.UserID, err)
	}

	if err := s.recordStrike(ctx, in); err != nil {
		return err
	}

	notice := domain.StrikeNotice{
		UserName: user.DisplayName(),
		Goal:     in.Goal,
		GoalType: in.GoalType,
		Period:   in.Period,
		Comments: in.Comments,
		At:       s.now().In(s.location),
	}
	if err := s.notify.SendStrikeNotice(ctx, notice); err != nil {
		s.log.Warn("strike notice delivery failed", slog.Any("error", err))
	}
	if _, err := s.SendReport(ctx); err != nil {
		s.log.Warn("post-strike report delivery failed", slog.Any("error", err))
	}

	return nil
}

// recordStrike runs the update-then-insert inside a transaction so a
// concurrent insert of the same (user, goal, period) row cannot slip
// between the two statements.
func (s *Service) recordStrike(ctx context.Context, in AddStrikeInput) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.recordStrikeTx(ctx, in)
	})
}

func (s *Service) recordStrikeTx(ctx context.Context, in AddStrikeInput) error {
	var (
		affected int64
		err      error
	)
	if in.GoalType == domain.GoalTypeDaily {
		affected, err = s.goals.MarkDailyIncomplete(ctx, in.UserID, in.Goal, in.Period, in.Comments)
	} else {
		affected, err = s.goals.MarkWeeklyIncomplete(ctx, in.UserID, in.Goal, in.Period, in.Comments)
	}
	if err != nil {
		return fmt.Errorf("mark incomplete: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// No row for this user/goal/period yet: record the strike as a new
	// incomplete row rather than silently doing nothing.
	incomplete := false
	if in.GoalType == domain.GoalTypeDaily {
		err = s.goals.InsertDaily(ctx, domain.DailyGoalRecord{
			UserID:    in.UserID,
			Goal:      in.Goal,
			Completed: &incomplete,
			Comments:  in.Comments,
			Date:      in.Period,
		})
	} else {
		err = s.goals.InsertWeekly(ctx, domain.WeeklyGoalRecord{
			UserID:    in.UserID,
			Goal:      in.Goal,
			Completed: &incomplete,
			Comments:  in.Comments,
			Week:      in.Period,
		})
	}
	if err != nil {
		return fmt.Errorf("insert strike row: %w", err)
	}
	return nil
}
