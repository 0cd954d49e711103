package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func task(title string, done bool, minute int, description ...string) domain.Task {
	t := domain.Task{
		ID:        uuid.New(),
		Title:     title,
		Done:      done,
		CreatedAt: base.Add(time.Duration(minute) * time.Minute),
	}
	if len(description) > 0 {
		d := description[0]
		t.Description = &d
	}
	return t
}

func titles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestTasksFilterAndSearch(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		task("Buy milk", false, 3),
		task("Buy bread", true, 2),
		task("Walk dog", false, 1, "buy treats on the way"),
	}

	tests := []struct {
		name   string
		filter domain.Filter
		search string
		want   []string
	}{
		{"active buy", domain.FilterActive, "buy", []string{"Buy milk", "Walk dog"}},
		{"active buy milk", domain.FilterActive, "MILK", []string{"Buy milk"}},
		{"completed", domain.FilterCompleted, "", []string{"Buy bread"}},
		{"completed no match", domain.FilterCompleted, "dog", []string{}},
		{"all blank search", domain.FilterAll, "   ", []string{"Buy milk", "Buy bread", "Walk dog"}},
		{"description match", domain.FilterAll, "treats", []string{"Walk dog"}},
		{"no match", domain.FilterAll, "zzz", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tasks(tasks, tc.filter, tc.search)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestTasksActiveBuyExample(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		task("Buy milk", false, 1),
		task("Buy bread", true, 2),
		task("Walk dog", false, 3),
	}

	got := Tasks(tasks, domain.FilterActive, "buy")
	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Title)
}

func TestTasksAllSortsNewestFirst(t *testing.T) {
	t.Parallel()

	t1 := task("t1", false, 1)
	t2 := task("t2", true, 2)
	t3 := task("t3", false, 3)

	got := Tasks([]domain.Task{t1, t3, t2}, domain.FilterAll, "")
	assert.Equal(t, []string{"t3", "t2", "t1"}, titles(got))
}

func TestTasksNonAllKeepsInputOrder(t *testing.T) {
	t.Parallel()

	older := task("older", false, 1)
	newer := task("newer", false, 2)

	got := Tasks([]domain.Task{older, newer}, domain.FilterActive, "")
	assert.Equal(t, []string{"older", "newer"}, titles(got))
}

func TestTasksIsIdempotentAndPure(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		task("a", false, 1, "x"),
		task("b", true, 2),
		task("c", false, 3),
	}
	snapshot := make([]domain.Task, len(tasks))
	copy(snapshot, tasks)

	first := Tasks(tasks, domain.FilterActive, "")
	second := Tasks(tasks, domain.FilterActive, "")
	assert.Equal(t, first, second)

	all := Tasks(tasks, domain.FilterAll, "")
	*all[len(all)-1].Description = "changed"
	assert.Equal(t, snapshot, tasks, "input must not be reordered or mutated")
	assert.Equal(t, "x", *tasks[0].Description)
}

func TestTasksEmptyInput(t *testing.T) {
	t.Parallel()

	got := Tasks(nil, domain.FilterAll, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
