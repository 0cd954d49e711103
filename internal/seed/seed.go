// Package seed loads demo tasks from a YAML fixture into a task store at
// start-up.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
	"gopkg.in/yaml.v3"
)

// File is the root of a seed document.
type File struct {
	Tasks []Task `yaml:"tasks"`
}

// Task is one seeded task. CompleteTill uses RFC 3339.
type Task struct {
	Title        string  `yaml:"title"`
	Description  *string `yaml:"description"`
	Done         bool    `yaml:"done"`
	CompleteTill string  `yaml:"completeTill"`
}

type prepared struct {
	params domain.NewTaskParams
	done   bool
}

// LoadFile reads the fixture at path and inserts its tasks. It returns the
// number of tasks inserted.
func LoadFile(ctx context.Context, path string, taskStore store.TaskStore) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(ctx, f, taskStore)
}

// Load decodes a seed document and inserts its tasks in document order.
// Every entry is validated first, so a bad entry leaves the store untouched.
func Load(ctx context.Context, r io.Reader, taskStore store.TaskStore) (int, error) {
	log := logger.FromContext(ctx)

	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to decode seed file: %w", err)
	}

	entries := make([]prepared, 0, len(file.Tasks))
	for i, t := range file.Tasks {
		p, err := prepare(t)
		if err != nil {
			return 0, fmt.Errorf("seed task %d: %w", i, err)
		}
		entries = append(entries, p)
	}

	for i, p := range entries {
		task, err := taskStore.Create(ctx, p.params)
		if err != nil {
			return i, fmt.Errorf("seed task %d: %w", i, err)
		}
		if p.done {
			done := true
			if _, _, err := taskStore.Update(ctx, task.ID, domain.TaskPatch{Done: &done}); err != nil {
				return i + 1, fmt.Errorf("seed task %d: %w", i, err)
			}
		}
	}

	log.Info("seed tasks loaded", slog.Int("count", len(entries)))
	return len(entries), nil
}

func prepare(t Task) (prepared, error) {
	if strings.TrimSpace(t.Title) == "" {
		return prepared{}, domain.NewValidationError("title", "is required", domain.ErrTaskTitleEmpty)
	}

	deadline, err := domain.ParseDeadline(t.CompleteTill)
	if err != nil {
		return prepared{}, err
	}

	return prepared{
		params: domain.NewTaskParams{
			Title:        t.Title,
			Description:  t.Description,
			CompleteTill: deadline,
		},
		done: t.Done,
	}, nil
}
