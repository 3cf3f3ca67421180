package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/services"
)

func (a *App) Categories(ctx context.Context) error {
	list, err := a.categories.List(ctx, a.config.UserID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No categories.")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%s  %-20s  %s\n", c.ID, c.Name, c.Color)
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter category name", a.out)
	if err != nil {
		return err
	}
	color, err := GetSimpleText(a.reader, "Enter color (e.g. #FF3B30)", a.out)
	if err != nil {
		return err
	}

	c, err := a.categories.Create(ctx, services.NewCategory{
		Name:   name,
		Color:  color,
		UserID: a.config.UserID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created: %s  %s  %s\n", c.ID, c.Name, c.Color)
	return nil
}

// EditCategory patches a category field by field; empty answers keep the
// current value.
func (a *App) EditCategory(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter category id", a.out)
	if err != nil {
		return err
	}

	var p models.CategoryPatch

	name, err := GetSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		p.Name = &name
	}

	color, err := GetSimpleText(a.reader, "New color (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if color != "" {
		p.Color = &color
	}

	c, err := a.categories.Update(ctx, id, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated: %s  %s  %s\n", c.ID, c.Name, c.Color)
	return nil
}

// DeleteCategory removes a category. The notes that referenced it are kept
// and become uncategorized.
func (a *App) DeleteCategory(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter category id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.categories.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted. Its notes are now uncategorized.")
	return nil
}
