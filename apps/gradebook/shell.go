package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/apps"
	"github.com/trezcool/gradebook/apps/shared"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

var menu = []string{
	"(S) Set up new semester",
	"(A) Add student",
	"(P) Record programming assignment grades",
	"(T) Record test grades",
	"(F) Record final exam grades",
	"(C) Change a grade",
	"(G) Calculate final grades",
	"(O) Output grade data",
	"(Q) Quit",
}

// shell is the interactive menu. It reads one answer per line and drives the gradebook with parsed arguments.
type shell struct {
	in         *bufio.Scanner
	out        io.Writer
	echo       bool // print answers back; set when input is not typed on a terminal
	gb         *grading.Gradebook
	validate   *validator.Validate
	translator ut.Translator
}

func newShell(in io.Reader, out io.Writer, echo bool, deps *shared.Deps) *shell {
	return &shell{
		in:         bufio.NewScanner(in),
		out:        out,
		echo:       echo,
		gb:         deps.Gradebook,
		validate:   deps.Validate,
		translator: deps.Translator,
	}
}

// run shows the menu until the user quits or the input ends.
func (sh *shell) run() error {
	for {
		sh.displayMenu()
		choice, err := sh.ask("Enter your choice: ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch strings.ToUpper(core.CleanString(choice)) {
		case "Q":
			return nil
		case "S":
			err = sh.setupSemester()
		case "A":
			err = sh.addStudent()
		case "P":
			err = sh.recordGrades(grading.CategoryProgramming)
		case "T":
			err = sh.recordGrades(grading.CategoryTest)
		case "F":
			err = sh.recordGrades(grading.CategoryFinalExam)
		case "C":
			err = sh.changeGrade()
		case "G":
			err = sh.calculateFinalGrades()
		case "O":
			err = sh.outputGradeData()
		default:
			sh.println("Invalid choice. Please try again.")
		}

		if err != nil {
			if errors.Cause(err) == io.EOF {
				return nil
			}
			sh.println("Error: " + shared.ErrorMessage(err, sh.translator))
		}
	}
}

func (sh *shell) displayMenu() {
	for _, item := range menu {
		sh.println(item)
	}
}

func (sh *shell) setupSemester() error {
	prompts := []struct {
		field, text string
	}{
		{"assignments", "Number of programming assignments (0-6): "},
		{"tests", "Number of tests (0-4): "},
		{"final exams", "Number of final exams (0-1): "},
		{"weight", "Weight for assignments (%): "},
		{"weight", "Weight for tests (%): "},
		{"weight", "Weight for final exams (%): "},
	}
	values := make([]int, len(prompts))
	for i, p := range prompts {
		n, err := sh.askInt(p.field, p.text)
		if err != nil {
			return err
		}
		values[i] = n
	}

	setup := grading.SemesterSetup{
		Assignments:       values[0],
		Tests:             values[1],
		FinalExams:        values[2],
		AssignmentsWeight: values[3],
		TestsWeight:       values[4],
		FinalExamsWeight:  values[5],
	}
	if err := setup.Validate(sh.validate); err != nil {
		return err
	}
	if err := sh.gb.SetupSemester(setup.Policy()); err != nil {
		return err
	}
	if total := setup.Policy().Weights.Total(); total != 100 {
		sh.printf("Warning: weights total %d%%, final grades cannot be calculated until they sum to 100%%.\n", total)
	}
	sh.println("Semester set up.")
	return nil
}

func (sh *shell) addStudent() error {
	id, err := sh.askInt("student ID", "Enter student ID (1-9999): ")
	if err != nil {
		return err
	}
	last, err := sh.ask("Enter student's last name: ")
	if err != nil {
		return err
	}
	first, err := sh.ask("Enter student's first name: ")
	if err != nil {
		return err
	}

	input := grading.NewStudentInput{ID: id, LastName: last, FirstName: first}
	if err := input.Validate(sh.validate); err != nil {
		return err
	}
	stu, err := sh.gb.AddStudent(input.ID, input.LastName, input.FirstName)
	if err != nil {
		return err
	}
	sh.printf("Student added: ID %d, Name: %s, %s\n", stu.ID, stu.LastName, stu.FirstName)
	return nil
}

func (sh *shell) recordGrades(cat grading.Category) error {
	if sh.gb.StudentCount() == 0 {
		return grading.ErrNoStudents
	}
	id, err := sh.askInt("student ID", "Enter student ID to record grades for: ")
	if err != nil {
		return err
	}

	res, err := sh.gb.RecordGrades(id, cat, func(stu grading.Student, slot string) (string, error) {
		return sh.ask(fmt.Sprintf("Enter %s grade %s for %s: ", cat, slot, stu.Label()))
	})
	for _, skipped := range res.Skipped {
		sh.printf("Skipped %s: %s\n", skipped.Slot, skipped.Err)
	}
	if err != nil {
		return err
	}
	sh.printf("%s grades recorded successfully for student ID %d.\n", string(cat), id)
	return nil
}

func (sh *shell) changeGrade() error {
	id, err := sh.askInt("student ID", "Enter student ID to change grade for: ")
	if err != nil {
		return err
	}
	if _, err := sh.gb.Student(id); err != nil {
		return err
	}

	answer, err := sh.ask("Enter the type of score to change (P, T, or F): ")
	if err != nil {
		return err
	}
	cat, err := grading.ParseCategory(answer)
	if err != nil {
		return err
	}
	grades, err := sh.gb.CategoryGrades(id, cat)
	if err != nil {
		return err
	}
	sh.printf("Current %s grades:\n", cat)
	for _, g := range grades {
		sh.println(g.String())
	}

	slot, err := sh.askInt("grade number", fmt.Sprintf("Enter %s grade number to change (1-%d): ", cat, len(grades)))
	if err != nil {
		return err
	}
	if slot < 1 || slot > len(grades) {
		return errors.Wrapf(grading.ErrOutOfRange, "grade number must be between 1 and %d", len(grades))
	}
	score, err := sh.askInt("grade", fmt.Sprintf("Enter the new score for %s: ", cat.Slot(slot)))
	if err != nil {
		return err
	}

	if err := sh.gb.ChangeGrade(id, cat, slot, score); err != nil {
		return err
	}
	sh.printf("Grade for %s updated successfully.\n", cat.Slot(slot))
	return nil
}

func (sh *shell) calculateFinalGrades() error {
	if err := sh.gb.CalculateFinalGrades(); err != nil {
		return err
	}
	sh.println("Final grades calculated and updated for all students.")
	return nil
}

func (sh *shell) outputGradeData() error {
	answer, err := sh.ask("Order by name or ID (name/ID): ")
	if err != nil {
		return err
	}
	order, err := grading.ParseOrderBy(answer)
	if err != nil {
		return err
	}
	sh.println("Student Grades:")
	for line := range sh.gb.Report(order) {
		sh.println(line.String())
	}
	return nil
}

// ask prints the prompt and returns the next input line; io.EOF once the input is exhausted.
func (sh *shell) ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(sh.out, prompt)
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", err
		}
		sh.println("")
		return "", io.EOF
	}
	answer := sh.in.Text()
	if sh.echo {
		sh.println(answer)
	}
	return answer, nil
}

func (sh *shell) askInt(field, prompt string) (int, error) {
	answer, err := sh.ask(prompt)
	if err != nil {
		return 0, err
	}
	return apps.ParseInt(field, answer)
}

func (sh *shell) println(s string) {
	_, _ = fmt.Fprintln(sh.out, s)
}

func (sh *shell) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(sh.out, format, a...)
}
