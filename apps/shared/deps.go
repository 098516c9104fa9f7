package shared

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
	logsvc "github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/jsonfile"
	"github.com/trezcool/gradebook/storage/memstore"
)

// Deps holds everything an app needs to drive the gradebook.
type Deps struct {
	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Gradebook  *grading.Gradebook
}

// NewDeps loads the configuration and opens the gradebook stored at the configured paths.
// With `dryRun`, the stored documents are loaded into memory and nothing is written back.
func NewDeps(dryRun bool) (*Deps, error) {
	conf, err := core.NewConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	zl, err := logsvc.NewZap(conf)
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	if conf.TestMode {
		logger.Enable(false)
	}

	var repo grading.Repository = jsonfile.NewStore(conf.GradesPath(), conf.PolicyPath(), logger)
	if dryRun {
		if repo, err = inMemoryCopy(repo); err != nil {
			return nil, errors.Wrap(err, "loading gradebook")
		}
	}
	gb, err := grading.NewGradebook(repo, logger)
	if err != nil {
		return nil, errors.Wrap(err, "opening gradebook")
	}

	validate, translator := NewValidator()
	return &Deps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Gradebook:  gb,
	}, nil
}

func inMemoryCopy(repo grading.Repository) (*memstore.Store, error) {
	students, err := repo.ReadGrades()
	if err != nil {
		return nil, err
	}
	policy, err := repo.ReadPolicy()
	if err != nil {
		return nil, err
	}

	store := memstore.Open()
	if err := store.WriteGrades(students); err != nil {
		return nil, err
	}
	if policy != nil {
		if err := store.WritePolicy(*policy); err != nil {
			return nil, err
		}
	}
	return store, nil
}
