package main

import (
	"fmt"

	"github.com/ayumu-h/curio"
)

// Run executes the item add command: extract the URL, then persist the
// result in the named cabinet.
func (c *ItemAddCmd) Run(deps *Dependencies) error {
	cabinet, err := findCabinetByName(deps, c.Cabinet)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	meta, err := deps.Metadata.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	item := curio.NewItemFromMetadata(c.URL, meta)
	item.CabinetID = cabinet.ID
	if c.Title != "" {
		item.Title = c.Title
	}
	if item.Title == "" {
		return fmt.Errorf("no title could be extracted from %s; pass one with --title", c.URL)
	}

	if err := deps.Items.CreateItem(deps.Ctx, item); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "added %q to %q (%s)\n", item.Title, cabinet.Name, item.ID)
	return nil
}

// Run executes the item list command.
func (c *ItemListCmd) Run(deps *Dependencies) error {
	filter := curio.ItemFilter{}
	if c.Cabinet != "" {
		cabinet, err := findCabinetByName(deps, c.Cabinet)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
			return err
		}
		filter.CabinetID = &cabinet.ID
	}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	items, err := deps.Items.FindItems(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No items found. Use 'curio item add' to catalogue one.")
		return nil
	}

	for _, item := range items {
		episode := item.Episode
		if episode == "" {
			episode = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", item.ID, item.Title, episode, item.URL)
	}

	return nil
}

// Run executes the item rm command.
func (c *ItemRmCmd) Run(deps *Dependencies) error {
	if err := deps.Items.DeleteItem(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", curio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "deleted item %s\n", c.ID)
	return nil
}
