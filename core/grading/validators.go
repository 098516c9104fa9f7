package grading

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

var (
	idRangeTag  = "studentid"
	idRangeText = "{0} must be between 1 and 9999"
)

// RegisterValidators registers the grading validation tags & their translations.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(idRangeTag, studentIDValidation)
	core.RegisterCustomTranslation(validate, translator, idRangeTag, idRangeText)
}

// NewStudentInput contains information needed to add a Student.
type NewStudentInput struct {
	ID        int    `json:"student_id" validate:"studentid"`
	LastName  string `json:"last_name" validate:"required,notblank"`
	FirstName string `json:"first_name" validate:"required,notblank"`
}

func (ns *NewStudentInput) Validate(validate *validator.Validate) error {
	ns.LastName = core.CleanString(ns.LastName)
	ns.FirstName = core.CleanString(ns.FirstName)
	return validate.Struct(ns)
}

// SemesterSetup contains the ranges an interactive semester setup accepts.
// The weights total is not checked here; CalculateFinalGrades requires it to be 100.
type SemesterSetup struct {
	Assignments       int `json:"assignments" validate:"min=0,max=6"`
	Tests             int `json:"tests" validate:"min=0,max=4"`
	FinalExams        int `json:"final_exams" validate:"min=0,max=1"`
	AssignmentsWeight int `json:"assignments_weight" validate:"min=0,max=100"`
	TestsWeight       int `json:"tests_weight" validate:"min=0,max=100"`
	FinalExamsWeight  int `json:"final_exams_weight" validate:"min=0,max=100"`
}

func (ss SemesterSetup) Validate(validate *validator.Validate) error { return validate.Struct(ss) }

// Policy builds the grading Policy from the setup.
func (ss SemesterSetup) Policy() Policy {
	var p Policy
	p.Set(ss.Assignments, ss.Tests, ss.FinalExams, Weights{
		Assignments: ss.AssignmentsWeight,
		Tests:       ss.TestsWeight,
		FinalExams:  ss.FinalExamsWeight,
	})
	return p
}

// Custom Validators

func studentIDValidation(fl validator.FieldLevel) bool {
	id := fl.Field().Int()
	return id >= 1 && id <= 9999
}
