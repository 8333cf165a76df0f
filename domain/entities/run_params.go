package entities

import (
	"errors"
	"strings"
)

// RunParams carries the externally supplied inputs for one run.
type RunParams struct {
	SearchName       string
	TargetDepartment string
	Headless         bool
}

// Validate checks the parameters before a run starts.
func (p RunParams) Validate() error {
	if strings.TrimSpace(p.SearchName) == "" {
		return errors.New("search name must not be empty")
	}
	return nil
}
