package progress

import (
	"math/rand"
	"testing"

	"github.com/oksasatya/planify/internal/domain/entity"
)

func statuses(done, doing, todo int) []entity.TaskStatus {
	out := make([]entity.TaskStatus, 0, done+doing+todo)
	for i := 0; i < done; i++ {
		out = append(out, entity.StatusDone)
	}
	for i := 0; i < doing; i++ {
		out = append(out, entity.StatusDoing)
	}
	for i := 0; i < todo; i++ {
		out = append(out, entity.StatusTodo)
	}
	return out
}

func TestOfEmptyIsZero(t *testing.T) {
	if got := Of(nil); got != 0 {
		t.Fatalf("expected 0 for no tasks, got %d", got)
	}
	if got := Of([]entity.TaskStatus{}); got != 0 {
		t.Fatalf("expected 0 for empty slice, got %d", got)
	}
}

func TestOfAllDoneIsHundred(t *testing.T) {
	for n := 1; n <= 7; n++ {
		if got := Of(statuses(n, 0, 0)); got != 100 {
			t.Fatalf("n=%d: expected 100, got %d", n, got)
		}
	}
}

func TestOfRounding(t *testing.T) {
	cases := []struct {
		name              string
		done, doing, todo int
		want              int
	}{
		{"quarter", 1, 1, 2, 25},
		{"third", 1, 0, 2, 33},
		{"two thirds", 2, 0, 1, 67},
		{"half up", 1, 0, 7, 13},   // 12.5
		{"half up 2", 1, 0, 199, 1}, // 0.5
		{"below half", 1, 0, 200, 0},
		{"none done", 0, 3, 3, 0},
		{"doing is not done", 0, 5, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Of(statuses(tc.done, tc.doing, tc.todo)); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestOfOrderIndependent(t *testing.T) {
	base := statuses(3, 4, 6)
	want := Of(base)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]entity.TaskStatus(nil), base...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Of(shuffled); got != want {
			t.Fatalf("order changed result: %d != %d (%v)", got, want, shuffled)
		}
	}
}

func TestOfTasks(t *testing.T) {
	tasks := []entity.Task{
		{Status: entity.StatusDone},
		{Status: entity.StatusTodo},
		{Status: entity.StatusDoing},
		{Status: entity.StatusTodo},
	}
	if got := OfTasks(tasks); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}
