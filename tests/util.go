package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/storage/memstore"
)

// Entry is one message received by a Logger.
type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger is a core.Logger that records entries instead of printing them.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("fatal", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}

// Count returns the number of entries logged at `level`.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// NewGradebook opens a Gradebook on an in-memory store configured with `policy`.
func NewGradebook(t *testing.T, policy grading.Policy) (*grading.Gradebook, *memstore.Store, *Logger) {
	t.Helper()
	store := memstore.Open()
	if err := store.WritePolicy(policy); err != nil {
		t.Fatalf("NewGradebook() failed: %v", err)
	}
	logger := new(Logger)
	gb, err := grading.NewGradebook(store, logger)
	if err != nil {
		t.Fatalf("NewGradebook() failed: %v", err)
	}
	return gb, store, logger
}

// CreateStudent adds a student and records `grades` (slot key -> score) for them.
func CreateStudent(t *testing.T, gb *grading.Gradebook, id int, last, first string, grades map[string]int) grading.Student {
	t.Helper()
	stu, err := gb.AddStudent(id, last, first)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	for slot, score := range grades {
		cat, err := grading.ParseCategory(slot[:1])
		if err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
		var idx int
		if _, err := fmt.Sscanf(slot[1:], "%d", &idx); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
		if err := gb.ChangeGrade(id, cat, idx, score); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
	}
	stu, err = gb.Student(id)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

// ScoreList returns a grading.ScorePrompt answering with `inputs` in order.
func ScoreList(inputs ...string) grading.ScorePrompt {
	next := 0
	return func(_ grading.Student, _ string) (string, error) {
		if next >= len(inputs) {
			return "", fmt.Errorf("no input left")
		}
		in := inputs[next]
		next++
		return in, nil
	}
}
