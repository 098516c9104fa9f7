package apps

import (
	"fmt"
	"strconv"

	"github.com/trezcool/gradebook/core"
)

// ArgumentError is returned when user input cannot be turned into an argument.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

// ParseInt parses the input of the named field.
func ParseInt(field, input string) (int, error) {
	n, err := strconv.Atoi(core.CleanString(input))
	if err != nil {
		return 0, NewArgumentError(fmt.Sprintf("invalid %s %q, please enter a number", field, input))
	}
	return n, nil
}
