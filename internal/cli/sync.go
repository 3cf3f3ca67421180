package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) Sync(ctx context.Context) error {
	if err := a.gateway.Sync(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sync finished.")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	fmt.Fprintln(a.out, "Mode:", a.Mode)

	at, ok, err := a.gateway.LastSyncedAt(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Last sync: never")
		return nil
	}
	fmt.Fprintln(a.out, "Last sync:", at.Format(time.RFC3339))
	return nil
}
