package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		telegram_id INTEGER NOT NULL UNIQUE,
		full_name   TEXT NOT NULL,
		role        TEXT NOT NULL DEFAULT '',
		department  TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'PENDING'
		            CHECK(status IN ('PENDING','ACTIVE','BLOCKED')),
		project_id  TEXT REFERENCES projects(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS construction_objects (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		customer_name     TEXT NOT NULL DEFAULT '',
		customer_address  TEXT NOT NULL DEFAULT '',
		customer_contacts TEXT NOT NULL DEFAULT '',
		contractor_name   TEXT NOT NULL DEFAULT '',
		work_types        TEXT NOT NULL DEFAULT '[]',
		total_volume_m2   REAL NOT NULL DEFAULT 0,
		start_date        TEXT,
		end_date          TEXT,
		contract_date     TEXT,
		duration_days     INTEGER,
		contract_link     TEXT NOT NULL DEFAULT '',
		estimate_link     TEXT NOT NULL DEFAULT '',
		project_manager   TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'NEW'
		                  CHECK(status IN ('NEW','IN_PROGRESS','PAUSED','COMPLETED','CANCELLED')),
		created_by        TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_schedule_items (
		id            TEXT PRIMARY KEY,
		object_id     TEXT NOT NULL REFERENCES construction_objects(id) ON DELETE CASCADE,
		section       TEXT NOT NULL DEFAULT '',
		subsection    TEXT NOT NULL DEFAULT '',
		sort_order    INTEGER NOT NULL DEFAULT 0,
		work_name     TEXT NOT NULL,
		unit          TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'PLANNED'
		              CHECK(status IN ('PLANNED','IN_PROGRESS','DONE')),
		volume_plan   REAL,
		volume_fact   REAL,
		workers_count INTEGER,
		start_date    TEXT,
		end_date      TEXT,
		duration_days INTEGER,
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	// No uniqueness on (object_id, task_number): forced re-materialization
	// appends a second full set.
	`CREATE TABLE IF NOT EXISTS ecosystem_tasks (
		id               TEXT PRIMARY KEY,
		object_id        TEXT NOT NULL REFERENCES construction_objects(id) ON DELETE CASCADE,
		task_number      INTEGER NOT NULL,
		task_name        TEXT NOT NULL,
		block            TEXT NOT NULL DEFAULT '',
		department       TEXT NOT NULL DEFAULT '',
		code             TEXT NOT NULL DEFAULT '',
		responsible      TEXT NOT NULL DEFAULT '',
		recipient        TEXT NOT NULL DEFAULT '',
		incoming_doc     TEXT NOT NULL DEFAULT '',
		outgoing_doc     TEXT NOT NULL DEFAULT '',
		bot_trigger      TEXT NOT NULL DEFAULT '',
		priority         TEXT NOT NULL DEFAULT 'Средний',
		status           TEXT NOT NULL DEFAULT 'Ожидание'
		                 CHECK(status IN ('Ожидание','В работе','Выполнено','Отменено')),
		planned_date     TEXT,
		duration_days    INTEGER NOT NULL DEFAULT 0,
		assigned_user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		completed_at     TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS facades (
		id            TEXT PRIMARY KEY,
		object_id     TEXT NOT NULL REFERENCES construction_objects(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		sort_order    INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL DEFAULT 'PLANNED'
		              CHECK(status IN ('PLANNED','IN_PROGRESS','COMPLETED')),
		modules_plan  INTEGER NOT NULL DEFAULT 0,
		modules_fact  INTEGER NOT NULL DEFAULT 0,
		brackets_plan INTEGER NOT NULL DEFAULT 0,
		brackets_fact INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_fact_daily (
		id            TEXT PRIMARY KEY,
		object_id     TEXT NOT NULL REFERENCES construction_objects(id) ON DELETE CASCADE,
		report_date   TEXT NOT NULL,
		week          TEXT NOT NULL DEFAULT '',
		day_number    INTEGER,
		modules_plan  REAL,
		modules_fact  REAL,
		brackets_plan REAL,
		brackets_fact REAL,
		sealant_plan  REAL,
		sealant_fact  REAL,
		hermetic_plan REAL,
		hermetic_fact REAL,
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id          TEXT PRIMARY KEY,
		action      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		user_id     TEXT,
		old_value   TEXT,
		new_value   TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_status ON users(status)`,
	`CREATE INDEX IF NOT EXISTS idx_objects_project ON construction_objects(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_object ON work_schedule_items(object_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_object ON ecosystem_tasks(object_id, task_number)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON ecosystem_tasks(assigned_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON ecosystem_tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_facades_object ON facades(object_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_fact_object ON plan_fact_daily(object_id, report_date)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_logs(entity_type, entity_id)`,
}
