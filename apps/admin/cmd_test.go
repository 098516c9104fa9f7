package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/apps/shared"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/tests"
)

func setup(t *testing.T, policy grading.Policy) (*commandLine, *bytes.Buffer) {
	gb, _, _ := testutil.NewGradebook(t, policy)
	validate, translator := shared.NewValidator()

	out := new(bytes.Buffer)
	return &commandLine{
		gb:         gb,
		validate:   validate,
		translator: translator,
		out:        out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || shared.ErrorMessage(err, cli.translator) != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out := setup(t, grading.Policy{})
	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: "Usage:"},
		{name: "setup: no flags", args: []string{"setup"}, wantErr: errHelp},
		{name: "addstudent: no flags", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "record: no category", args: []string{"record", "-id", "1"}, wantErr: errHelp},
		{name: "changegrade: no id", args: []string{"changegrade", "-category", "P"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"report", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	})
}

func Test_commandLine_setup(t *testing.T) {
	cli, out := setup(t, grading.Policy{})
	runCLITests(t, cli, out, []cliTest{
		{
			name:       "count out of range",
			args:       []string{"setup", "-assignments", "7", "-wa", "100"},
			wantErrStr: "assignments must be 6 or less",
		},
		{
			name:    "weights do not sum to 100",
			args:    []string{"setup", "-assignments", "2", "-wa", "50"},
			wantOut: "warning: weights total 50%",
		},
		{
			name: "valid",
			args: []string{"setup", "-assignments", "2", "-tests", "1", "-finals", "1", "-wa", "50", "-wt", "20", "-wf", "30"},
		},
	})

	want := grading.Policy{Assignments: 2, Tests: 1, FinalExams: 1, Weights: grading.Weights{Assignments: 50, Tests: 20, FinalExams: 30}}
	assert.Equal(t, want, cli.gb.Policy())
}

func Test_commandLine_addStudent(t *testing.T) {
	cli, out := setup(t, grading.Policy{})
	runCLITests(t, cli, out, []cliTest{
		{name: "ID out of range", args: []string{"addstudent", "-id", "0", "-last", "Doe", "-first", "Jane"}, wantErrStr: "student_id must be between 1 and 9999"},
		{name: "missing names", args: []string{"addstudent", "-id", "7"}, wantErrStr: "last_name is required; first_name is required"},
		{name: "added", args: []string{"addstudent", "-id", "7", "-last", "Doe", "-first", "Jane"}},
		{name: "duplicate", args: []string{"addstudent", "-id", "7", "-last", "Roe", "-first", "Ann"}, wantErr: grading.ErrDuplicateID},
	})
	assert.Equal(t, 1, cli.gb.StudentCount())
}

func Test_commandLine_grades(t *testing.T) {
	policy := grading.Policy{Assignments: 2, Tests: 0, FinalExams: 1, Weights: grading.Weights{Assignments: 60, FinalExams: 40}}
	cli, out := setup(t, policy)
	testutil.CreateStudent(t, cli.gb, 1, "Doe", "Jane", nil)
	testutil.CreateStudent(t, cli.gb, 2, "Roe", "Ann", nil)

	runCLITests(t, cli, out, []cliTest{
		{name: "record: invalid category", args: []string{"record", "-id", "1", "-category", "X", "-scores", "1"}, wantErr: grading.ErrInvalidCategory},
		{name: "record: unknown student", args: []string{"record", "-id", "9", "-category", "P", "-scores", "1,2"}, wantErr: grading.ErrNotFound},
		{name: "record: nothing to record", args: []string{"record", "-id", "1", "-category", "T"}, wantErr: grading.ErrNothingToRecord},
		{name: "record: missing scores", args: []string{"record", "-id", "2", "-category", "P", "-scores", "70"}, wantErr: errMissingScore},
		{name: "record: skipped", args: []string{"record", "-id", "1", "-category", "p", "-scores", "80,lol"}, wantOut: "skipped P2: "},
		{name: "changegrade: slot out of range", args: []string{"changegrade", "-id", "1", "-category", "P", "-slot", "3", "-score", "90"}, wantErr: grading.ErrOutOfRange},
		{name: "changegrade: missing score", args: []string{"changegrade", "-id", "1", "-category", "P", "-slot", "2"}, wantErrStr: "score is required"},
		{name: "changegrade: missing slot & score", args: []string{"changegrade", "-id", "1", "-category", "P"}, wantErrStr: "slot is required; score is required"},
		{name: "changegrade: negative score", args: []string{"changegrade", "-id", "1", "-category", "P", "-slot", "2", "-score", "-1"}, wantErr: grading.ErrOutOfRange},
		{name: "changegrade", args: []string{"changegrade", "-id", "1", "-category", "P", "-slot", "2", "-score", "90"}},
		{name: "record: finals", args: []string{"record", "-id", "1", "-category", "F", "-scores", "100"}},
		{name: "calculate", args: []string{"calculate"}},
		{name: "report: invalid order", args: []string{"report", "-order", "grade"}, wantErr: grading.ErrInvalidOrder},
		{name: "report: by id", args: []string{"report"}, wantOut: "ID: 1, Name: Doe Jane, Final Grade: 91.00\nID: 2, Name: Roe Ann, Final Grade: 42.00\n"},
		{name: "report: by name", args: []string{"report", "-order", "name"}, wantOut: "ID: 1, Name: Doe Jane"},
	})

	stu, err := cli.gb.Student(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"P1": 80, "P2": 90, "F1": 100}, stu.Grades)
}

func Test_commandLine_calculate_invalidWeights(t *testing.T) {
	cli, out := setup(t, grading.Policy{Assignments: 1, Weights: grading.Weights{Assignments: 80}})
	testutil.CreateStudent(t, cli.gb, 1, "Doe", "Jane", map[string]int{"P1": 50})

	runCLITests(t, cli, out, []cliTest{
		{name: "calculate", args: []string{"calculate"}, wantErrStr: "weights total 80%: total weights do not sum to 100%"},
	})
}
