package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grading"
)

var errMissingScore = errors.New("no score given")

func (cli *commandLine) setup(setup grading.SemesterSetup) error {
	if err := setup.Validate(cli.validate); err != nil {
		return err
	}
	if err := cli.gb.SetupSemester(setup.Policy()); err != nil {
		return err
	}
	if total := setup.Policy().Weights.Total(); total != 100 {
		_, _ = fmt.Fprintf(cli.out, "warning: weights total %d%%\n", total)
	}
	return nil
}

func (cli *commandLine) addStudent(input grading.NewStudentInput) error {
	if err := input.Validate(cli.validate); err != nil {
		return err
	}
	_, err := cli.gb.AddStudent(input.ID, input.LastName, input.FirstName)
	return err
}

// record feeds `scores` to the configured slots of the category, in order.
func (cli *commandLine) record(id int, category string, scores []string) error {
	cat, err := grading.ParseCategory(category)
	if err != nil {
		return err
	}

	next := 0
	res, err := cli.gb.RecordGrades(id, cat, func(_ grading.Student, slot string) (string, error) {
		if next >= len(scores) {
			return "", errMissingScore
		}
		score := scores[next]
		next++
		return score, nil
	})
	for _, skipped := range res.Skipped {
		_, _ = fmt.Fprintf(cli.out, "skipped %s\n", skipped.Error())
	}
	return err
}

func (cli *commandLine) changeGrade(id int, category string, slot, score int) error {
	cat, err := grading.ParseCategory(category)
	if err != nil {
		return err
	}
	return cli.gb.ChangeGrade(id, cat, slot, score)
}

func (cli *commandLine) calculate() error {
	return cli.gb.CalculateFinalGrades()
}

func (cli *commandLine) report(order string) error {
	by, err := grading.ParseOrderBy(order)
	if err != nil {
		return err
	}
	for line := range cli.gb.Report(by) {
		_, _ = fmt.Fprintln(cli.out, line.String())
	}
	return nil
}
