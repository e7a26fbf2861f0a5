package cli

import (
	"context"
	"fmt"
)

// ListCmd prints the collection in server order.
type ListCmd struct{}

func (c *ListCmd) Execute(_ []string) error {
	ctx := context.Background()
	board, cancel, err := loadBoard(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	st, err := board.Snapshot()
	if err != nil {
		return err
	}
	return printTable(stdout, st)
}

// CreateCmd submits a new record. Empty fields are sent as-is.
type CreateCmd struct {
	Name  string `short:"n" long:"name"  description:"record name"`
	Email string `short:"e" long:"email" description:"record email"`
}

func (c *CreateCmd) Execute(_ []string) error {
	ctx := context.Background()
	board, cancel, err := loadBoard(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := board.SetName(c.Name); err != nil {
		return err
	}
	if _, err := board.SetEmail(c.Email); err != nil {
		return err
	}
	st, err := board.Submit(ctx)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return printTable(stdout, st)
}

// UpdateCmd edits the listed record with the given id. Fields left empty keep the current value.
type UpdateCmd struct {
	ID    int    `long:"id" required:"true" description:"record id"`
	Name  string `short:"n" long:"name"  description:"new name"`
	Email string `short:"e" long:"email" description:"new email"`
}

func (c *UpdateCmd) Execute(_ []string) error {
	ctx := context.Background()
	board, cancel, err := loadBoard(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := board.EnterEditModeByID(c.ID); err != nil {
		return err
	}
	if c.Name != "" {
		if _, err := board.SetName(c.Name); err != nil {
			return err
		}
	}
	if c.Email != "" {
		if _, err := board.SetEmail(c.Email); err != nil {
			return err
		}
	}
	st, err := board.Submit(ctx)
	if err != nil {
		return fmt.Errorf("update %d: %w", c.ID, err)
	}
	return printTable(stdout, st)
}

// DeleteCmd removes the record with the given id.
type DeleteCmd struct {
	ID int `long:"id" required:"true" description:"record id"`
}

func (c *DeleteCmd) Execute(_ []string) error {
	ctx := context.Background()
	board, cancel, err := loadBoard(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	st, err := board.Delete(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("delete %d: %w", c.ID, err)
	}
	return printTable(stdout, st)
}
