package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

var (
	errHelp         = errors.New("help provided")
	errMissingFlags = errors.New("missing flags")
)

type commandLine struct {
	gb         *grading.Gradebook
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage: admin [-dry-run] COMMAND [FLAGS]")
	_, _ = fmt.Fprintln(cli.out, "  setup -assignments N -tests N -finals N -wa W -wt W -wf W - set up a new semester")
	_, _ = fmt.Fprintln(cli.out, "  addstudent -id ID -last LAST -first FIRST - add a student")
	_, _ = fmt.Fprintln(cli.out, "  record -id ID -category P|T|F -scores S1,S2,.. - record a category's grades")
	_, _ = fmt.Fprintln(cli.out, "  changegrade -id ID -category P|T|F -slot N -score S - change one grade")
	_, _ = fmt.Fprintln(cli.out, "  calculate - calculate final grades")
	_, _ = fmt.Fprintln(cli.out, "  report -order name|id - output grade data")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	setupCmd := cli.newFlagSet("setup")
	setupAssignments := setupCmd.Int("assignments", 0, "Number of programming assignments (0-6).")
	setupTests := setupCmd.Int("tests", 0, "Number of tests (0-4).")
	setupFinals := setupCmd.Int("finals", 0, "Number of final exams (0-1).")
	setupWA := setupCmd.Int("wa", 0, "Weight for assignments (%).")
	setupWT := setupCmd.Int("wt", 0, "Weight for tests (%).")
	setupWF := setupCmd.Int("wf", 0, "Weight for final exams (%).")

	addStudentCmd := cli.newFlagSet("addstudent")
	addStudentID := addStudentCmd.Int("id", 0, "The student ID (1-9999).")
	addStudentLast := addStudentCmd.String("last", "", "The student's last name.")
	addStudentFirst := addStudentCmd.String("first", "", "The student's first name.")

	recordCmd := cli.newFlagSet("record")
	recordID := recordCmd.Int("id", 0, "The student ID.")
	recordCategory := recordCmd.String("category", "", "The grade category: P, T or F.")
	recordScores := recordCmd.String("scores", "", "Comma separated scores, one per configured grade.")

	changeGradeCmd := cli.newFlagSet("changegrade")
	changeGradeID := changeGradeCmd.Int("id", 0, "The student ID.")
	changeGradeCategory := changeGradeCmd.String("category", "", "The grade category: P, T or F.")
	changeGradeSlot := changeGradeCmd.Int("slot", 0, "The grade number to change.")
	changeGradeScore := changeGradeCmd.Int("score", 0, "The new score (0-100).")

	reportCmd := cli.newFlagSet("report")
	reportOrder := reportCmd.String("order", "id", "Order by name or id.")

	switch args[1] {
	case "setup":
		if err := setupCmd.Parse(args[2:]); err != nil {
			return err
		}
		if setupCmd.NFlag() == 0 {
			setupCmd.Usage()
			return errHelp
		}
		return cli.setup(grading.SemesterSetup{
			Assignments:       *setupAssignments,
			Tests:             *setupTests,
			FinalExams:        *setupFinals,
			AssignmentsWeight: *setupWA,
			TestsWeight:       *setupWT,
			FinalExamsWeight:  *setupWF,
		})
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if addStudentCmd.NFlag() == 0 {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(grading.NewStudentInput{
			ID:        *addStudentID,
			LastName:  *addStudentLast,
			FirstName: *addStudentFirst,
		})
	case "record":
		if err := recordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *recordID == 0 || *recordCategory == "" {
			recordCmd.Usage()
			return errHelp
		}
		var scores []string
		if *recordScores != "" {
			scores = strings.Split(*recordScores, ",")
		}
		return cli.record(*recordID, *recordCategory, scores)
	case "changegrade":
		if err := changeGradeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *changeGradeID == 0 || *changeGradeCategory == "" {
			changeGradeCmd.Usage()
			return errHelp
		}
		if err := requireFlags(changeGradeCmd, "slot", "score"); err != nil {
			return err
		}
		return cli.changeGrade(*changeGradeID, *changeGradeCategory, *changeGradeSlot, *changeGradeScore)
	case "calculate":
		return cli.calculate()
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.report(*reportOrder)
	default:
		cli.printUsage()
		return errHelp
	}
}

// requireFlags fails with a field error per flag that was not set on the command line.
func requireFlags(fs *flag.FlagSet, names ...string) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var flds []core.FieldError
	for _, name := range names {
		if !set[name] {
			flds = append(flds, core.FieldError{Field: name, Error: name + " is required"})
		}
	}
	if flds != nil {
		return core.NewValidationError(errMissingFlags, flds...)
	}
	return nil
}
