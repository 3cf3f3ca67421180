package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/services"
)

func formatNote(n *models.Note) string {
	flags := ""
	if n.IsPinned {
		flags += " [pinned]"
	}
	if n.IsArchived {
		flags += " [archived]"
	}
	cat := "-"
	if n.CategoryID != nil {
		cat = *n.CategoryID
	}
	updated := time.UnixMilli(n.UpdatedAt).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s  %-30s  cat:%-8s  %s%s", n.ID, n.Title, cat, updated, flags)
}

// Add creates a note from interactive input. An empty category id leaves the
// note uncategorized.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}
	categoryID, err := GetSimpleText(a.reader, "Enter category id (empty for none)", a.out)
	if err != nil {
		return err
	}

	in := services.NewNote{Title: title, Content: content, UserID: a.config.UserID}
	if categoryID != "" {
		in.CategoryID = &categoryID
	}

	n, err := a.notes.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created:", formatNote(n))
	return nil
}

func (a *App) List(ctx context.Context, categoryID string) error {
	var filter *string
	if categoryID != "" {
		filter = &categoryID
	}

	list, err := a.notes.List(ctx, a.config.UserID, filter)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No notes.")
		return nil
	}
	for i := range list {
		fmt.Fprintln(a.out, formatNote(&list[i]))
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter note id", a.out)
	if err != nil {
		return err
	}

	n, err := a.notes.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, formatNote(n))
	if n.Deleted() {
		fmt.Fprintln(a.out, "(deleted)")
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, n.Content)
	return nil
}

// Edit patches a note field by field; empty answers keep the current value.
func (a *App) Edit(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter note id", a.out)
	if err != nil {
		return err
	}

	current, err := a.notes.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Editing:", formatNote(current))

	var p models.NotePatch

	title, err := GetSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		p.Title = &title
	}

	content, err := GetMultiline(a.reader, "New text (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		p.Content = &content
	}

	categoryID, err := GetSimpleText(a.reader, "New category id (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if categoryID != "" {
		p.CategoryID = &categoryID
	}

	if p.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	n, err := a.notes.Update(ctx, id, p)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated:", formatNote(n))
	return nil
}

// Pin toggles the pinned flag of a note.
func (a *App) Pin(ctx context.Context) error {
	return a.toggleFlag(ctx, "pin", func(n *models.Note, p *models.NotePatch) bool {
		v := !n.IsPinned
		p.IsPinned = &v
		return v
	})
}

// Archive toggles the archived flag of a note.
func (a *App) Archive(ctx context.Context) error {
	return a.toggleFlag(ctx, "archive", func(n *models.Note, p *models.NotePatch) bool {
		v := !n.IsArchived
		p.IsArchived = &v
		return v
	})
}

func (a *App) toggleFlag(ctx context.Context, name string, flip func(*models.Note, *models.NotePatch) bool) error {
	id, err := GetSimpleText(a.reader, "Enter note id to "+name, a.out)
	if err != nil {
		return err
	}

	current, err := a.notes.Get(ctx, id)
	if err != nil {
		return err
	}

	var p models.NotePatch
	on := flip(current, &p)

	n, err := a.notes.Update(ctx, id, p)
	if err != nil {
		return err
	}
	state := "off"
	if on {
		state = "on"
	}
	fmt.Fprintf(a.out, "%s %s: %s\n", name, state, formatNote(n))
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter note id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.notes.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	list, err := a.notes.Search(ctx, a.config.UserID, query)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	for i := range list {
		fmt.Fprintln(a.out, formatNote(&list[i]))
	}
	return nil
}
