package memstore

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grading"
)

// ErrWriteFailed is returned by every write while the Store is set to fail.
var ErrWriteFailed = errors.New("memstore: write failed")

// Store is an in-memory grading.Repository. Records are copied in and out, so callers never share maps with it.
type Store struct {
	mu         sync.RWMutex
	grades     map[int]grading.Student
	policy     *grading.Policy
	failWrites bool

	gradeWrites  int
	policyWrites int
}

var _ grading.Repository = (*Store)(nil)

func Open() *Store {
	return &Store{grades: make(map[int]grading.Student)}
}

// FailWrites makes every following write fail (or succeed again).
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// GradeWrites returns how many times the grades document was successfully written.
func (s *Store) GradeWrites() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gradeWrites
}

// PolicyWrites returns how many times the policy document was successfully written.
func (s *Store) PolicyWrites() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policyWrites
}

func (s *Store) ReadGrades() (map[int]grading.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStudents(s.grades), nil
}

func (s *Store) WriteGrades(students map[int]grading.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrWriteFailed
	}
	s.grades = copyStudents(students)
	s.gradeWrites++
	return nil
}

func (s *Store) ReadPolicy() (*grading.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.policy == nil {
		return nil, nil
	}
	p := *s.policy
	return &p, nil
}

func (s *Store) WritePolicy(policy grading.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrWriteFailed
	}
	s.policy = &policy
	s.policyWrites++
	return nil
}

func copyStudents(students map[int]grading.Student) map[int]grading.Student {
	c := make(map[int]grading.Student, len(students))
	for id, stu := range students {
		c[id] = stu.Clone()
	}
	return c
}
