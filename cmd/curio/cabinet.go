package main

import (
	"fmt"

	"github.com/ayumu-h/curio"
)

// Run executes the cabinet add command.
func (c *CabinetAddCmd) Run(deps *Dependencies) error {
	cabinet := &curio.Cabinet{
		Name:        c.Name,
		Description: c.Description,
	}
	if err := deps.Cabinets.CreateCabinet(deps.Ctx, cabinet); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "created cabinet %q (%s)\n", cabinet.Name, cabinet.ID)
	return nil
}

// Run executes the cabinet list command.
func (c *CabinetListCmd) Run(deps *Dependencies) error {
	cabinets, err := deps.Cabinets.FindCabinets(deps.Ctx, curio.CabinetFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	if len(cabinets) == 0 {
		fmt.Fprintln(deps.Stdout, "No cabinets found. Use 'curio cabinet add' to create one.")
		return nil
	}

	for _, cab := range cabinets {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", cab.ID, cab.Name, cab.Description)
	}

	return nil
}

// Run executes the cabinet rm command.
func (c *CabinetRmCmd) Run(deps *Dependencies) error {
	cabinet, err := findCabinetByName(deps, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	if !c.Force {
		return fmt.Errorf("deleting %q removes all its items and notes; re-run with --force to confirm", c.Name)
	}

	if err := deps.Cabinets.DeleteCabinet(deps.Ctx, cabinet.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "deleted cabinet %q\n", c.Name)
	return nil
}

// findCabinetByName resolves a cabinet by its exact name.
func findCabinetByName(deps *Dependencies, name string) (*curio.Cabinet, error) {
	cabinets, err := deps.Cabinets.FindCabinets(deps.Ctx, curio.CabinetFilter{Name: &name})
	if err != nil {
		return nil, err
	}
	if len(cabinets) == 0 {
		return nil, curio.Errorf(curio.ENOTFOUND, "cabinet %q not found", name)
	}
	return cabinets[0], nil
}
