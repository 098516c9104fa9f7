package jsonfile

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

// Store keeps the grades & policy documents in two JSON files, each rewritten whole on every write.
type Store struct {
	gradesPath string
	policyPath string
	log        core.Logger
}

var _ grading.Repository = (*Store)(nil)

func NewStore(gradesPath, policyPath string, logger core.Logger) *Store {
	return &Store{
		gradesPath: gradesPath,
		policyPath: policyPath,
		log:        logger,
	}
}

// ReadGrades returns an empty mapping when the file is missing or cannot be decoded.
func (s *Store) ReadGrades() (map[int]grading.Student, error) {
	students := make(map[int]grading.Student)

	var doc map[string]grading.Student
	ok, err := s.read(s.gradesPath, &doc)
	if err != nil || !ok {
		return students, err
	}

	for key, stu := range doc {
		id, err := strconv.Atoi(key)
		if err != nil {
			s.log.Warn("invalid data format in "+s.gradesPath, errors.Wrapf(err, "student key %q", key))
			return make(map[int]grading.Student), nil
		}
		students[id] = stu
	}
	return students, nil
}

func (s *Store) WriteGrades(students map[int]grading.Student) error {
	doc := make(map[string]grading.Student, len(students))
	for id, stu := range students {
		doc[strconv.Itoa(id)] = stu
	}
	return write(s.gradesPath, doc)
}

// ReadPolicy returns nil when the file is missing or cannot be decoded.
func (s *Store) ReadPolicy() (*grading.Policy, error) {
	var policy grading.Policy
	ok, err := s.read(s.policyPath, &policy)
	if err != nil || !ok {
		return nil, err
	}
	return &policy, nil
}

func (s *Store) WritePolicy(policy grading.Policy) error {
	return write(s.policyPath, policy)
}

// read decodes the file into dest. ok is false when there is nothing usable to read.
func (s *Store) read(path string, dest interface{}) (ok bool, err error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info(path + " not found")
			return false, nil
		}
		return false, errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("invalid data format in "+path, err)
		return false, nil
	}
	return true, nil
}

// write replaces the file in one step: the document goes to a temporary file which is then renamed over `path`.
func write(path string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
