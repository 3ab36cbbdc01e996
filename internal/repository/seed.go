package repository

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"taskdesk/internal/model"
)

//go:embed seed.yaml
var demoSeed []byte

type seedFile struct {
	Employees []model.EmployeeFields `yaml:"employees"`
	Tasks     []seedTask             `yaml:"tasks"`
}

type seedTask struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Status      model.TaskStatus `yaml:"status"`
	Assignee    string           `yaml:"assignee"` // employee email, empty for unassigned
}

// Seed loads the bundled demo data into store.
func Seed(ctx context.Context, store *Store) error {
	return LoadSeed(ctx, store, bytes.NewReader(demoSeed))
}

// LoadSeed reads a YAML document of employees and tasks and inserts them
// through the repositories, so ids follow the store's sequences. Tasks name
// their assignee by email.
func LoadSeed(ctx context.Context, store *Store, r io.Reader) error {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode seed: %w", err)
	}

	employees := NewEmployeeRepository(store)
	tasks := NewTaskRepository(store)

	ids := make(map[string]int64, len(doc.Employees))
	for _, fields := range doc.Employees {
		e, err := employees.Create(ctx, fields)
		if err != nil {
			return fmt.Errorf("seed employee %q: %w", fields.Email, err)
		}
		ids[e.Email] = e.ID
	}

	for _, st := range doc.Tasks {
		if !st.Status.IsValid() {
			return fmt.Errorf("seed task %q: invalid status %q", st.Title, st.Status)
		}
		fields := model.TaskFields{
			Title:       st.Title,
			Description: st.Description,
			Status:      st.Status,
		}
		if st.Assignee != "" {
			id, ok := ids[st.Assignee]
			if !ok {
				return fmt.Errorf("seed task %q: unknown assignee %q", st.Title, st.Assignee)
			}
			fields.EmployeeID = &id
		}
		if _, err := tasks.Create(ctx, fields); err != nil {
			return fmt.Errorf("seed task %q: %w", st.Title, err)
		}
	}
	return nil
}
