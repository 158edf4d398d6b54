package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/fs"
)

// Run executes the contacts command.
func (c *ContactsCmd) Run(deps *Dependencies) error {
	filter := prospect.ContactFilter{
		HasEmail: c.HasEmail,
		HasPhone: c.HasPhone,
		Limit:    c.Limit,
		Offset:   c.Offset,
	}
	if c.Query != "" {
		filter.Query = &c.Query
	}
	if c.Company != "" {
		filter.Company = &c.Company
	}
	if c.Location != "" {
		filter.Location = &c.Location
	}
	if c.JobID != "" {
		filter.JobID = &c.JobID
	}

	contacts, total, err := deps.Contacts.FindContacts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prospect.ErrorMessage(err))
		return err
	}
	hasMore := c.Offset+len(contacts) < total

	if c.Export != "" {
		dir := filepath.Clean(c.Export)
		exporter := fs.NewExporter(filepath.Dir(dir), filepath.Base(dir))
		if err := exporter.Export(deps.Ctx, contacts); err != nil {
			fmt.Fprintf(deps.Stderr, "error: export failed: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d contacts to %s\n", len(contacts), exporter.Dir())
		return nil
	}

	if c.JSON {
		return writeJSON(deps.Stdout, map[string]any{
			"contacts": nonNil(contacts),
			"total":    total,
			"hasMore":  hasMore,
		})
	}

	if len(contacts) == 0 {
		fmt.Fprintln(deps.Stdout, "No contacts found.")
		return nil
	}

	for i, contact := range contacts {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		printContact(deps.Stdout, contact)
	}
	fmt.Fprintf(deps.Stdout, "\nShowing %d-%d of %d\n", c.Offset+1, c.Offset+len(contacts), total)
	if hasMore {
		fmt.Fprintf(deps.Stdout, "Use --offset=%d for more\n", c.Offset+len(contacts))
	}
	return nil
}

// Run executes the delete-contact command.
func (c *DeleteContactCmd) Run(deps *Dependencies) error {
	if err := deps.Contacts.DeleteContact(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prospect.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted contact %s\n", c.ID)
	return nil
}
