package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"judicial_scraper/domain/entities"
)

// TerminalInterface collects run parameters interactively, the way the
// tool originally worked before command-line flags existed.
type TerminalInterface struct {
	reader *bufio.Reader
}

// NewTerminalInterface - creates a prompt reader over r
func NewTerminalInterface(r io.Reader) *TerminalInterface {
	return &TerminalInterface{
		reader: bufio.NewReader(r),
	}
}

// CollectParams asks for the search name (required) and an optional
// target department, leaving Headless untouched.
func (t *TerminalInterface) CollectParams(params entities.RunParams) (entities.RunParams, error) {
	for strings.TrimSpace(params.SearchName) == "" {
		fmt.Print("Enter the name to search for: ")
		line, err := t.reader.ReadString('\n')
		params.SearchName = strings.TrimSpace(line)
		if err != nil {
			if err == io.EOF && params.SearchName != "" {
				break
			}
			return params, fmt.Errorf("failed to read search name: %w", err)
		}
	}

	if params.TargetDepartment == "" {
		fmt.Print("Enter target department (leave blank to scan all): ")
		line, err := t.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return params, fmt.Errorf("failed to read target department: %w", err)
		}
		params.TargetDepartment = strings.TrimSpace(line)
	}

	return params, nil
}
