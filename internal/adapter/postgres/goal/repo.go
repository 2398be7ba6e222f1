// Package goal implements the daily and weekly goal-tracker repositories
// using PostgreSQL.
package goal

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/striketrack/backend/internal/adapter/postgres"
	"github.com/striketrack/backend/internal/domain"
)

const (
	dailyTable  = "daily_goal_tracker"
	weeklyTable = "weekly_goal_tracker"
)

var (
	dailyColumns  = []string{"id", "user_id", "goal", "completed", "comments", "date"}
	weeklyColumns = []string{"id", "user_id", "goal", "completed", "comments", "week"}
)

// Repo provides goal-tracker persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new goal repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListDaily returns all daily goal rows ordered by date then user.
func (r *Repo) ListDaily(ctx context.Context) ([]domain.DailyGoalRecord, error) {
	return r.listDaily(ctx, nil)
}

// ListIncompleteDaily returns only daily rows explicitly marked incomplete.
func (r *Repo) ListIncompleteDaily(ctx context.Context) ([]domain.DailyGoalRecord, error) {
	return r.listDaily(ctx, squirrel.Eq{"completed": false})
}

func (r *Repo) listDaily(ctx context.Context, where any) ([]domain.DailyGoalRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := postgres.Builder().
		Select(dailyColumns...).
		From(dailyTable).
		OrderBy("date ASC", "user_id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list daily query: %w", err)
	}

	var recs []domain.DailyGoalRecord
	if err := pgxscan.Select(ctx, q, &recs, sql, args...); err != nil {
		return nil, postgres.MapError(err, "daily_goals", "all")
	}

	return recs, nil
}

// ListWeekly returns all weekly goal rows ordered by week then user.
func (r *Repo) ListWeekly(ctx context.Context) ([]domain.WeeklyGoalRecord, error) {
	return r.listWeekly(ctx, nil)
}

// ListIncompleteWeekly returns only weekly rows explicitly marked incomplete.
func (r *Repo) ListIncompleteWeekly(ctx context.Context) ([]domain.WeeklyGoalRecord, error) {
	return r.listWeekly(ctx, squirrel.Eq{"completed": false})
}

func (r *Repo) listWeekly(ctx context.Context, where any) ([]domain.WeeklyGoalRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := postgres.Builder().
		Select(weeklyColumns...).
		From(weeklyTable).
		OrderBy("week ASC", "user_id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list weekly query: %w", err)
	}

	var recs []domain.WeeklyGoalRecord
	if err := pgxscan.Select(ctx, q, &recs, sql, args...); err != nil {
		return nil, postgres.MapError(err, "weekly_goals", "all")
	}

	return recs, nil
}

// MarkDailyIncomplete sets completed=false and comments on the row matching
// (user_id, goal, date). Returns the number of rows affected; zero means no
// such row exists.
func (r *Repo) MarkDailyIncomplete(ctx context.Context, userID, goal, date, comments string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(dailyTable).
		Set("completed", false).
		Set("comments", comments).
		Where(squirrel.Eq{"user_id": userID, "goal": goal, "date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark daily query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "daily_goal", userID)
	}

	return tag.RowsAffected(), nil
}

// MarkWeeklyIncomplete sets completed=false and comments on the row matching
// (user_id, goal, week). Returns the number of rows affected.
func (r *Repo) MarkWeeklyIncomplete(ctx context.Context, userID, goal, week, comments string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(weeklyTable).
		Set("completed", false).
		Set("comments", comments).
		Where(squirrel.Eq{"user_id": userID, "goal": goal, "week": week}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark weekly query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "weekly_goal", userID)
	}

	return tag.RowsAffected(), nil
}

// InsertDaily adds a new daily goal row. The ID is assigned by the database.
func (r *Repo) InsertDaily(ctx context.Context, rec domain.DailyGoalRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(dailyTable).
		Columns("user_id", "goal", "completed", "comments", "date").
		Values(rec.UserID, rec.Goal, rec.Completed, rec.Comments, rec.Date).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert daily query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "daily_goal", rec.UserID)
	}

	return nil
}

// InsertWeekly adds a new weekly goal row. The ID is assigned by the database.
func (r *Repo) InsertWeekly(ctx context.Context, rec domain.WeeklyGoalRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(weeklyTable).
		Columns("user_id", "goal", "completed", "comments", "week").
		Values(rec.UserID, rec.Goal, rec.Completed, rec.Comments, rec.Week).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert weekly query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "weekly_goal", rec.UserID)
	}

	return nil
}
