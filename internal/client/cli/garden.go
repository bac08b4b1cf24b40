package cli

import (
	"context"
	"fmt"
)

// Garden prints the current crop collection.
func (a *App) Garden(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You need to log in first")
		return nil
	}

	crops := a.garden.UserCrops()
	if len(crops) == 0 {
		printlnFn("Your garden is empty. Use 'add <crop name>' to plant something.")
		return nil
	}

	printlnFn("Your garden:")
	for i, name := range crops {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, name))
	}
	return nil
}

// AddCrop adds the named crop to the garden. Failures are already reported
// by the garden service's notifier.
func (a *App) AddCrop(ctx context.Context, name string) error {
	return a.garden.AddCrop(ctx, name)
}

// RemoveCrop removes the named crop from the garden.
func (a *App) RemoveCrop(ctx context.Context, name string) error {
	return a.garden.RemoveCrop(ctx, name)
}

// Sync re-fetches the garden from the server.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You need to log in first")
		return nil
	}
	if err := a.garden.Sync(ctx); err != nil {
		return err
	}
	printlnFn("Garden synced")
	return nil
}
