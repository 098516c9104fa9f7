package grading

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

// Score bounds
const (
	MinScore = 0
	MaxScore = 100
)

// Category is a grade category code; it prefixes every slot key of the category.
type Category string

const (
	CategoryProgramming Category = "P"
	CategoryTest        Category = "T"
	CategoryFinalExam   Category = "F"
)

// Categories lists every Category in policy order.
var Categories = []Category{CategoryProgramming, CategoryTest, CategoryFinalExam}

// ParseCategory parses a category code, case-insensitively.
func ParseCategory(s string) (Category, error) {
	cat := Category(strings.ToUpper(core.CleanString(s)))
	switch cat {
	case CategoryProgramming, CategoryTest, CategoryFinalExam:
		return cat, nil
	default:
		return "", errors.Wrapf(ErrInvalidCategory, "%q", s)
	}
}

// Slot returns the slot key of the i-th (1-based) grade of the category, eg: P3.
func (c Category) Slot(i int) string {
	return string(c) + strconv.Itoa(i)
}

// PolicyKey returns the name under which the category is stored in the policy document.
func (c Category) PolicyKey() string {
	switch c {
	case CategoryProgramming:
		return "assignments"
	case CategoryTest:
		return "tests"
	case CategoryFinalExam:
		return "final_exams"
	default:
		return ""
	}
}

func (c Category) String() string {
	switch c {
	case CategoryProgramming:
		return "programming assignment"
	case CategoryTest:
		return "test"
	case CategoryFinalExam:
		return "final exam"
	default:
		return string(c)
	}
}

// Weights are the category percentages used to combine category averages into a final grade.
type Weights struct {
	Assignments int `json:"assignments"`
	Tests       int `json:"tests"`
	FinalExams  int `json:"final_exams"`
}

func (w Weights) Total() int { return w.Assignments + w.Tests + w.FinalExams }

// Valid reports whether the weights can be used to compute final grades.
func (w Weights) Valid() bool { return w.Total() == 100 }

// Policy is the semester-wide grading configuration.
// Nothing is enforced when it is set: out of range counts or weights are stored as given.
type Policy struct {
	Assignments int     `json:"assignments"`
	Tests       int     `json:"tests"`
	FinalExams  int     `json:"final_exams"`
	Weights     Weights `json:"weights"`
}

// Set overwrites the whole policy.
func (p *Policy) Set(assignments, tests, finalExams int, weights Weights) {
	p.Assignments = assignments
	p.Tests = tests
	p.FinalExams = finalExams
	p.Weights = weights
}

// Get returns a snapshot of the policy.
func (p *Policy) Get() Policy { return *p }

// Count returns the number of grades configured for the category.
func (p Policy) Count(cat Category) int {
	switch cat {
	case CategoryProgramming:
		return p.Assignments
	case CategoryTest:
		return p.Tests
	case CategoryFinalExam:
		return p.FinalExams
	default:
		return 0
	}
}

// Weight returns the percentage of the category in the final grade.
func (p Policy) Weight(cat Category) int {
	switch cat {
	case CategoryProgramming:
		return p.Weights.Assignments
	case CategoryTest:
		return p.Weights.Tests
	case CategoryFinalExam:
		return p.Weights.FinalExams
	default:
		return 0
	}
}

type Student struct {
	ID         int            `json:"student_id"`
	LastName   string         `json:"last_name"`
	FirstName  string         `json:"first_name"`
	Grades     map[string]int `json:"grades"`
	FinalGrade *float64       `json:"final_grade,omitempty"`
}

func NewStudent(id int, lastName, firstName string) Student {
	return Student{
		ID:        id,
		LastName:  lastName,
		FirstName: firstName,
		Grades:    make(map[string]int),
	}
}

// UnmarshalJSON decodes a stored student; a missing grades mapping decodes as empty.
func (s *Student) UnmarshalJSON(data []byte) error {
	type student Student
	var stu student
	if err := json.Unmarshal(data, &stu); err != nil {
		return err
	}
	if stu.Grades == nil {
		stu.Grades = make(map[string]int)
	}
	*s = Student(stu)
	return nil
}

// SetGrade inserts or overwrites the score of the slot.
func (s *Student) SetGrade(slot string, score int) {
	if s.Grades == nil {
		s.Grades = make(map[string]int)
	}
	s.Grades[slot] = score
}

func (s Student) Grade(slot string) (int, bool) {
	score, ok := s.Grades[slot]
	return score, ok
}

func (s Student) HasFinalGrade() bool { return s.FinalGrade != nil }

// Label formats the student identity for prompts.
func (s Student) Label() string {
	return fmt.Sprintf("Student ID: %d, Name: %s, %s", s.ID, s.LastName, s.FirstName)
}

// Clone returns a deep copy of the student.
func (s Student) Clone() Student {
	c := s
	c.Grades = make(map[string]int, len(s.Grades))
	for k, v := range s.Grades {
		c.Grades[k] = v
	}
	if s.FinalGrade != nil {
		fg := *s.FinalGrade
		c.FinalGrade = &fg
	}
	return c
}

// SlotGrade is one configured slot of a category, recorded or not.
type SlotGrade struct {
	Slot     string
	Score    int
	Recorded bool
}

func (sg SlotGrade) String() string {
	if !sg.Recorded {
		return sg.Slot + ": Not set"
	}
	return fmt.Sprintf("%s: %d", sg.Slot, sg.Score)
}

// OrderBy is the ordering of a report.
type OrderBy int

const (
	ByName OrderBy = iota
	ByID
)

// ParseOrderBy parses "name" or "id", case-insensitively.
func ParseOrderBy(s string) (OrderBy, error) {
	switch core.CleanString(s, true /* lower */) {
	case "name":
		return ByName, nil
	case "id":
		return ByID, nil
	default:
		return 0, errors.Wrapf(ErrInvalidOrder, "%q", s)
	}
}

func (o OrderBy) String() string {
	if o == ByID {
		return "id"
	}
	return "name"
}

// ReportLine is one student row of the grade report.
type ReportLine struct {
	ID         int
	LastName   string
	FirstName  string
	FinalGrade *float64
}

func (l ReportLine) String() string {
	grade := "Not calculated"
	if l.FinalGrade != nil {
		grade = strconv.FormatFloat(*l.FinalGrade, 'f', 2, 64)
	}
	return fmt.Sprintf("ID: %d, Name: %s %s, Final Grade: %s", l.ID, l.LastName, l.FirstName, grade)
}
