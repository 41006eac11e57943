package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rbeckett/hearth/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(&t.ID, &t.HouseholdID, &t.Title, &t.Description, &t.Frequency,
		&t.Interval, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.TaskCompletion, error) {
	var c model.TaskCompletion
	err := scanner.Scan(&c.ID, &c.TaskID, &c.CompletedBy, &c.Skipped, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const taskCols = `id, household_id, title, description, frequency, interval, assigned_to, created_at, updated_at`
const completionCols = `id, task_id, completed_by, skipped, completed_at`

func (s *TaskStore) Create(householdID int64, title, description, frequency string, interval int, assignedTo *int64) (*model.Task, error) {
	if interval < 1 {
		interval = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO tasks (household_id, title, description, frequency, interval, assigned_to)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		householdID, title, description, frequency, interval, assignedTo,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) List(householdID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE household_id = ? ORDER BY created_at ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(id int64, title, description, frequency string, interval int, assignedTo *int64) (*model.Task, error) {
	if interval < 1 {
		interval = 1
	}
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, frequency = ?, interval = ?, assigned_to = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, description, frequency, interval, assignedTo, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Complete records a completion (or a skip) of a task by a user.
func (s *TaskStore) Complete(taskID int64, completedBy *int64, skipped bool) (*model.TaskCompletion, error) {
	result, err := s.db.Exec(
		`INSERT INTO task_completions (task_id, completed_by, skipped) VALUES (?, ?, ?)`,
		taskID, completedBy, skipped,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+completionCols+` FROM task_completions WHERE id = ?`, id)
	return scanCompletion(row)
}

func (s *TaskStore) DeleteCompletion(id int64) error {
	_, err := s.db.Exec(`DELETE FROM task_completions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

// ListCompletions returns all completions for a household's tasks, oldest
// first. Fairness scoring and status computation both consume this.
func (s *TaskStore) ListCompletions(householdID int64) ([]model.TaskCompletion, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.task_id, c.completed_by, c.skipped, c.completed_at
		 FROM task_completions c
		 JOIN tasks t ON t.id = c.task_id
		 WHERE t.household_id = ?
		 ORDER BY c.completed_at ASC, c.id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.TaskCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

// LastCompletion returns the time of the most recent non-skipped completion
// of a task, or nil if it has never been completed.
func (s *TaskStore) LastCompletion(taskID int64) (*time.Time, error) {
	var at time.Time
	err := s.db.QueryRow(
		`SELECT completed_at FROM task_completions
		 WHERE task_id = ? AND skipped = 0
		 ORDER BY completed_at DESC LIMIT 1`,
		taskID,
	).Scan(&at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last completion: %w", err)
	}
	return &at, nil
}
