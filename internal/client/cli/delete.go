package cli

import (
	"context"
	"fmt"
	"log"
)

// Delete removes one entry by id after a yes/no confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetInt(a.reader, "Enter entry id to delete", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	confirm, err := GetSimpleText(a.reader, fmt.Sprintf("Delete entry #%d? (y/n)", id), a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if confirm != "y" && confirm != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.assembler.Delete(ctx, int64(id)); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Deleted entry #%d.\n", id)
	if err := a.refresh(ctx); err != nil {
		log.Printf("warning: could not refresh garage: %v", err)
	}
	return nil
}
