package main

import (
	"encoding/json"
	"fmt"

	"github.com/ayumu-h/curio"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	meta, err := deps.Metadata.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	p, err := deps.Preview.Preview(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}
