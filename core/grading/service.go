package grading

import (
	"iter"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var (
	// errors
	ErrNotFound        = errors.New("student not found")
	ErrDuplicateID     = errors.New("a student with this ID already exists")
	ErrNoStudents      = errors.New("no students added yet")
	ErrNothingToRecord = errors.New("no grades to record")
	ErrNoSlots         = errors.New("no grades set up for this category")
	ErrInvalidCategory = errors.New("invalid grade category")
	ErrOutOfRange      = errors.New("value out of range")
	ErrNonNumeric      = errors.New("not a number")
	ErrWeightsInvalid  = errors.New("total weights do not sum to 100%")
	ErrInvalidOrder    = errors.New("invalid ordering option")
)

type (
	// Repository persists whole documents: every write replaces the stored document.
	// Reads of an absent document return an empty result and no error.
	Repository interface {
		ReadGrades() (map[int]Student, error)
		WriteGrades(students map[int]Student) error
		// ReadPolicy returns nil when no policy has been stored yet.
		ReadPolicy() (*Policy, error)
		WritePolicy(policy Policy) error
	}

	// ScorePrompt supplies the raw score entered for a slot of a student.
	ScorePrompt func(stu Student, slot string) (string, error)

	// SlotError explains why a slot was skipped while recording grades.
	SlotError struct {
		Slot  string
		Input string
		Err   error
	}

	RecordResult struct {
		Recorded []string
		Skipped  []SlotError
	}

	// Gradebook owns the students & the grading policy, and writes every change back to its Repository.
	Gradebook struct {
		repo     Repository
		log      core.Logger
		students map[int]*Student
		policy   Policy
	}
)

func (se SlotError) Error() string {
	return se.Slot + ": " + se.Err.Error()
}

func (se SlotError) Unwrap() error { return se.Err }

// NewGradebook loads the stored students and policy.
func NewGradebook(repo Repository, logger core.Logger) (*Gradebook, error) {
	records, err := repo.ReadGrades()
	if err != nil {
		return nil, errors.Wrap(err, "reading grades")
	}
	gb := &Gradebook{
		repo:     repo,
		log:      logger,
		students: make(map[int]*Student, len(records)),
	}
	for id, rec := range records {
		stu := rec.Clone()
		stu.ID = id
		gb.students[id] = &stu
	}

	policy, err := repo.ReadPolicy()
	if err != nil {
		return nil, errors.Wrap(err, "reading policy")
	}
	if policy != nil {
		gb.policy.Set(policy.Assignments, policy.Tests, policy.FinalExams, policy.Weights)
	}
	return gb, nil
}

func (gb *Gradebook) Policy() Policy { return gb.policy.Get() }

func (gb *Gradebook) StudentCount() int { return len(gb.students) }

func (gb *Gradebook) Student(id int) (Student, error) {
	stu, ok := gb.students[id]
	if !ok {
		return Student{}, ErrNotFound
	}
	return stu.Clone(), nil
}

// SetupSemester replaces the grading policy.
// Grades recorded beyond the new counts are kept as they are.
func (gb *Gradebook) SetupSemester(p Policy) error {
	gb.policy.Set(p.Assignments, p.Tests, p.FinalExams, p.Weights)
	gb.persistPolicy()
	return nil
}

func (gb *Gradebook) AddStudent(id int, lastName, firstName string) (Student, error) {
	if _, ok := gb.students[id]; ok {
		return Student{}, errors.Wrapf(ErrDuplicateID, "student ID %d", id)
	}
	stu := NewStudent(id, lastName, firstName)
	gb.students[id] = &stu
	gb.persistGrades()
	return stu.Clone(), nil
}

// RecordGrades asks `prompt` for every configured slot of the category.
// Invalid entries are skipped and reported in the RecordResult; the remaining slots are still asked.
// The student record is persisted once, after all slots were asked.
func (gb *Gradebook) RecordGrades(id int, cat Category, prompt ScorePrompt) (RecordResult, error) {
	var res RecordResult
	if len(gb.students) == 0 {
		return res, ErrNoStudents
	}
	stu, ok := gb.students[id]
	if !ok {
		return res, errors.Wrapf(ErrNotFound, "student ID %d", id)
	}
	count := gb.policy.Count(cat)
	if count == 0 {
		return res, errors.Wrapf(ErrNothingToRecord, "%s", cat)
	}

	var promptErr error
	for i := 1; i <= count; i++ {
		slot := cat.Slot(i)
		input, err := prompt(stu.Clone(), slot)
		if err != nil {
			promptErr = errors.Wrapf(err, "reading %s", slot)
			break
		}
		score, err := ParseScore(input)
		if err != nil {
			res.Skipped = append(res.Skipped, SlotError{Slot: slot, Input: input, Err: err})
			continue
		}
		stu.SetGrade(slot, score)
		res.Recorded = append(res.Recorded, slot)
	}

	gb.persistGrades()
	return res, promptErr
}

// CategoryGrades lists every configured slot of the category for the student.
func (gb *Gradebook) CategoryGrades(id int, cat Category) ([]SlotGrade, error) {
	stu, ok := gb.students[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "student ID %d", id)
	}
	count, err := gb.slotCount(cat)
	if err != nil {
		return nil, err
	}
	grades := make([]SlotGrade, 0, count)
	for i := 1; i <= count; i++ {
		slot := cat.Slot(i)
		score, ok := stu.Grade(slot)
		grades = append(grades, SlotGrade{Slot: slot, Score: score, Recorded: ok})
	}
	return grades, nil
}

// ChangeGrade overwrites a single configured slot.
func (gb *Gradebook) ChangeGrade(id int, cat Category, slotIndex, score int) error {
	stu, ok := gb.students[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "student ID %d", id)
	}
	count, err := gb.slotCount(cat)
	if err != nil {
		return err
	}
	if slotIndex < 1 || slotIndex > count {
		return errors.Wrapf(ErrOutOfRange, "grade number must be between 1 and %d", count)
	}
	if score < MinScore || score > MaxScore {
		return errors.Wrapf(ErrOutOfRange, "grade must be between %d and %d", MinScore, MaxScore)
	}

	stu.SetGrade(cat.Slot(slotIndex), score)
	gb.persistGrades()
	return nil
}

// CalculateFinalGrades computes the weighted final grade of every student.
// Only recorded slots are averaged; a category without any recorded slot contributes nothing.
func (gb *Gradebook) CalculateFinalGrades() error {
	if len(gb.students) == 0 {
		return ErrNoStudents
	}
	weights := gb.policy.Weights
	if !weights.Valid() {
		return errors.Wrapf(ErrWeightsInvalid, "weights total %d%%", weights.Total())
	}

	for _, stu := range gb.students {
		var final float64
		for _, cat := range Categories {
			var sum, n int
			for i := 1; i <= gb.policy.Count(cat); i++ {
				if score, ok := stu.Grade(cat.Slot(i)); ok {
					sum += score
					n++
				}
			}
			if n > 0 {
				avg := float64(sum) / float64(n)
				final += avg * float64(gb.policy.Weight(cat)) / 100
			}
		}
		fg := final
		stu.FinalGrade = &fg
	}

	fields := make(map[string]interface{}, len(Categories)+1)
	fields["students"] = len(gb.students)
	for _, cat := range Categories {
		fields[cat.PolicyKey()+"_weight"] = gb.policy.Weight(cat)
	}
	gb.log.Debug("final grades calculated", fields)

	gb.persistGrades()
	return nil
}

// Report returns the students ordered by `order`.
// The sequence is sorted when iterated, so it can be ranged over again after changes.
func (gb *Gradebook) Report(order OrderBy) iter.Seq[ReportLine] {
	return func(yield func(ReportLine) bool) {
		lines := make([]ReportLine, 0, len(gb.students))
		for _, stu := range gb.students {
			line := ReportLine{ID: stu.ID, LastName: stu.LastName, FirstName: stu.FirstName}
			if stu.FinalGrade != nil {
				fg := *stu.FinalGrade
				line.FinalGrade = &fg
			}
			lines = append(lines, line)
		}

		switch order {
		case ByID:
			sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
		default:
			sort.Slice(lines, func(i, j int) bool {
				if lines[i].LastName != lines[j].LastName {
					return lines[i].LastName < lines[j].LastName
				}
				if lines[i].FirstName != lines[j].FirstName {
					return lines[i].FirstName < lines[j].FirstName
				}
				return lines[i].ID < lines[j].ID
			})
		}

		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

func (gb *Gradebook) slotCount(cat Category) (int, error) {
	switch cat {
	case CategoryProgramming, CategoryTest, CategoryFinalExam:
	default:
		return 0, errors.Wrapf(ErrInvalidCategory, "%q", string(cat))
	}
	count := gb.policy.Count(cat)
	if count == 0 {
		return 0, errors.Wrapf(ErrNoSlots, "%s", cat)
	}
	return count, nil
}

// persistGrades writes every student back. A failed write is reported and otherwise ignored:
// memory stays authoritative and the next successful write brings the document up to date.
func (gb *Gradebook) persistGrades() {
	records := make(map[int]Student, len(gb.students))
	for id, stu := range gb.students {
		records[id] = stu.Clone()
	}
	if err := gb.repo.WriteGrades(records); err != nil {
		gb.log.Error("error occurred while writing grades", errors.Wrap(err, "writing grades"))
	}
}

func (gb *Gradebook) persistPolicy() {
	if err := gb.repo.WritePolicy(gb.policy.Get()); err != nil {
		gb.log.Error("error occurred while writing policy", errors.Wrap(err, "writing policy"))
	}
}

// ParseScore parses a raw score, which must be an integer between MinScore and MaxScore.
func ParseScore(input string) (int, error) {
	score, err := strconv.Atoi(core.CleanString(input))
	if err != nil {
		return 0, errors.Wrapf(ErrNonNumeric, "invalid grade %q, please enter a number", input)
	}
	if score < MinScore || score > MaxScore {
		return 0, errors.Wrapf(ErrOutOfRange, "grade must be between %d and %d", MinScore, MaxScore)
	}
	return score, nil
}
