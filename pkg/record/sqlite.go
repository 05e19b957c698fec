// Package record persists finished runs to a SQLite database so forecasts can
// be compared across configurations.
package record

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/sherine-k/ovens/pkg/simulation"
	"github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	ovens      INTEGER NOT NULL,
	final_tick INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pizzas (
	run_id           TEXT NOT NULL REFERENCES runs(id),
	pizza_id         INTEGER NOT NULL,
	name             TEXT NOT NULL,
	arrival          INTEGER NOT NULL,
	bake_time        INTEGER NOT NULL,
	start            INTEGER NOT NULL,
	predicted_finish INTEGER NOT NULL,
	finish           INTEGER NOT NULL,
	PRIMARY KEY (run_id, pizza_id)
);
`

// Run is a stored simulation run.
type Run struct {
	ID        string
	Ovens     int
	FinalTick int64
}

// Recorder writes runs into a SQLite database.
type Recorder struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// WriteRun stores one run and all of its baked pizzas in a single transaction
// and returns the generated run ID.
func (r *Recorder) WriteRun(ovens int, finalTick int64, pizzas []*simulation.Pizza) (string, error) {
	runID := xid.New().String()

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (id, ovens, final_tick) VALUES (?, ?, ?)`, runID, ovens, finalTick); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO pizzas
		(run_id, pizza_id, name, arrival, bake_time, start, predicted_finish, finish)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range pizzas {
		if _, err := stmt.Exec(runID, p.ID, p.Name, p.Arrival, p.BakeTime, p.Start, p.PredictedFinish, p.Finish); err != nil {
			return "", fmt.Errorf("failed to insert pizza %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	logrus.Debugf("Recorded run %s with %d pizzas", runID, len(pizzas))
	return runID, nil
}

// ListRuns returns every stored run, oldest first.
func (r *Recorder) ListRuns() ([]Run, error) {
	// xid sorts by creation time
	rows, err := r.db.Query(`SELECT id, ovens, final_tick FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Ovens, &run.FinalTick); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadPizzas returns the pizzas of a run ordered by ID.
func (r *Recorder) LoadPizzas(runID string) ([]*simulation.Pizza, error) {
	rows, err := r.db.Query(`SELECT pizza_id, name, arrival, bake_time, start, predicted_finish, finish
		FROM pizzas WHERE run_id = ? ORDER BY pizza_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pizzas for run %s: %w", runID, err)
	}
	defer rows.Close()

	pizzas := []*simulation.Pizza{}
	for rows.Next() {
		p := &simulation.Pizza{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Arrival, &p.BakeTime, &p.Start, &p.PredictedFinish, &p.Finish); err != nil {
			return nil, fmt.Errorf("failed to scan pizza: %w", err)
		}
		pizzas = append(pizzas, p)
	}
	return pizzas, rows.Err()
}
