package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jask/teachdesk/internal/database/repository"
	"github.com/jask/teachdesk/internal/model"
)

// SeedDefaults inserts a small sample dataset when every table is empty.
// It is idempotent and safe to run on every startup: a store that holds any
// record, or whose records were all deleted from only some tables, is left
// alone.
func SeedDefaults(ctx context.Context, db *sqlx.DB) error {
	empty, err := storeEmpty(ctx, db)
	if err != nil || !empty {
		return err
	}
	return WithTx(db, func(tx *sqlx.Tx) error {
		teachers := []model.Record{
			{"name": "Ana Torres", "email": "ana.torres@school.edu"},
			{"name": "Leo Herrera", "email": "leo.herrera@school.edu"},
		}
		for _, t := range teachers {
			if _, err := repository.Insert(ctx, tx, model.Teachers, t); err != nil {
				return err
			}
		}

		courses := []struct {
			rec    model.Record
			topics []model.Record
		}{
			{
				rec: model.Record{"course_name": "Programming I", "description": "Introduction to structured programming"},
				topics: []model.Record{
					{"title": "Variables and types", "objective": "Declare and use primitive types"},
					{"title": "Control flow", "objective": "Write conditionals and loops"},
				},
			},
			{
				rec: model.Record{"course_name": "Databases", "description": "Relational modelling and SQL"},
				topics: []model.Record{
					{"title": "Normal forms", "objective": "Normalise a schema to 3NF"},
				},
			},
		}
		for _, c := range courses {
			courseID, err := repository.Insert(ctx, tx, model.Courses, c.rec)
			if err != nil {
				return err
			}
			for i, topic := range c.topics {
				topic["course_id"] = courseID
				topicID, err := repository.Insert(ctx, tx, model.CourseTopics, topic)
				if err != nil {
					return err
				}
				status := model.StatusPending
				if i == 0 {
					status = model.StatusDone
				}
				activity := model.Record{"course_topic_id": topicID, "description": "Worksheet: " + topic.String("title"), "status": status}
				if _, err := repository.Insert(ctx, tx, model.Activities, activity); err != nil {
					return err
				}
				task := model.Record{
					"course_topic_id":  topicID,
					"description":      "Lecture: " + topic.String("title"),
					"class_taught":     i == 0,
					"pending_activity": i != 0,
					"notes":            "",
				}
				if _, err := repository.Insert(ctx, tx, model.Tasks, task); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func storeEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	for _, t := range model.All() {
		var n int
		if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+t.Name); err != nil {
			return false, fmt.Errorf("count %s: %w", t.Name, err)
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}
