package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jask/teachdesk/internal/model"
)

// resetOrder lists tables children first so foreign keys never block a delete.
var resetOrder = []string{
	model.Tasks,
	model.Activities,
	model.CourseTopics,
	model.Courses,
	model.Teachers,
}

// Reset wipes every record. The schema stays so the console can keep running.
func Reset(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("reset: db not configured")
	}
	if err := WithTx(db, func(tx *sqlx.Tx) error {
		for _, t := range resetOrder {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if db.DriverName() == DriverSQLite {
		_, _ = db.ExecContext(ctx, "VACUUM")
	}
	return nil
}
