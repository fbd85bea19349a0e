package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eslsoft/gearplan/internal/entity"
	"github.com/eslsoft/gearplan/internal/repository"
)

const planRunSchema = `
CREATE TABLE IF NOT EXISTS plan_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	exam_type TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	minutes_per_day INTEGER NOT NULL,
	days_per_week INTEGER NOT NULL,
	complete INTEGER NOT NULL,
	study_days INTEGER NOT NULL,
	total_weeks INTEGER NOT NULL,
	lesson_minutes INTEGER NOT NULL,
	qr_minutes INTEGER NOT NULL,
	removed_lessons INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// SQLitePlanRepository records plan runs in a local sqlite database.
type SQLitePlanRepository struct {
	db *sql.DB
}

// NewSQLitePlanRepository opens (creating if needed) the history database at
// path and bootstraps the schema. The returned cleanup closes the handle.
func NewSQLitePlanRepository(path string) (*SQLitePlanRepository, func(), error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(planRunSchema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init history schema: %w", err)
	}
	repo := &SQLitePlanRepository{db: db}
	return repo, func() { db.Close() }, nil
}

var _ repository.PlanRepository = (*SQLitePlanRepository)(nil)

func (r *SQLitePlanRepository) Save(ctx context.Context, run *entity.PlanRun) (*entity.PlanRun, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO plan_runs (
			exam_type, start_date, end_date, minutes_per_day, days_per_week,
			complete, study_days, total_weeks, lesson_minutes, qr_minutes,
			removed_lessons, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ExamType,
		run.Start.Format(time.DateOnly),
		run.End.Format(time.DateOnly),
		run.MinutesPerDay,
		run.DaysPerWeek,
		run.Complete,
		run.Summary.StudyDays,
		run.Summary.TotalWeeks,
		run.Summary.TotalLessonMinutes,
		run.Summary.TotalQRMinutes,
		run.Summary.RemovedLessons,
		run.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("save plan run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("save plan run: %w", err)
	}
	saved := *run
	saved.ID = id
	return &saved, nil
}

func (r *SQLitePlanRepository) List(ctx context.Context, query *repository.ListPlanRunsQuery) ([]entity.PlanRun, error) {
	limit := 20
	if query != nil && query.Limit > 0 {
		limit = query.Limit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, exam_type, start_date, end_date, minutes_per_day,
			days_per_week, complete, study_days, total_weeks,
			lesson_minutes, qr_minutes, removed_lessons, created_at
		FROM plan_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plan runs: %w", err)
	}
	defer rows.Close()

	var runs []entity.PlanRun
	for rows.Next() {
		var run entity.PlanRun
		if err := rows.Scan(
			&run.ID, &run.ExamType, &run.Start, &run.End, &run.MinutesPerDay,
			&run.DaysPerWeek, &run.Complete, &run.Summary.StudyDays,
			&run.Summary.TotalWeeks, &run.Summary.TotalLessonMinutes,
			&run.Summary.TotalQRMinutes, &run.Summary.RemovedLessons,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
