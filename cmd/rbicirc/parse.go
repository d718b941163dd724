package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/circulars"
)

// Run executes the parse index command.
func (c *ParseIndexCmd) Run(deps *Dependencies) error {
	html, err := readFile(c.File)
	if err != nil {
		return err
	}
	result, err := deps.Index.ParseIndex(html)
	return printResult(deps.Stdout, result, err)
}

// Run executes the parse detail command.
func (c *ParseDetailCmd) Run(deps *Dependencies) error {
	html, err := readFile(c.File)
	if err != nil {
		return err
	}
	rec, err := deps.Details.ParseDetail(html)
	return printResult(deps.Stdout, rec, err)
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// printResult writes v as indented JSON, or the error object when err is set.
// The error is still returned so the exit status reflects it.
func printResult(w io.Writer, v any, err error) error {
	if err != nil {
		v = &circulars.ErrorResult{Error: circulars.ErrorMessage(err)}
	}
	b, merr := json.MarshalIndent(v, "", "  ")
	if merr != nil {
		return merr
	}
	fmt.Fprintln(w, string(b))
	return err
}
