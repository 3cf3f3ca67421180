package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	Add(ctx context.Context) error
	List(ctx context.Context, categoryID string) error
	Show(ctx context.Context) error
	Edit(ctx context.Context) error
	Pin(ctx context.Context) error
	Archive(ctx context.Context) error
	Delete(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpText = `Available commands:
  add              create a note
  list [category]  list notes, optionally filtered by category id
  show             show a note (interactive id prompt)
  edit             edit a note
  pin              toggle a note's pinned flag
  archive          toggle a note's archived flag
  delete           delete a note
  search <text>    search notes by title or content
  categories       list categories
  addcat           create a category
  editcat          edit a category
  delcat           delete a category (notes are kept, detached)
  sync             push pending changes to the server
  status           show connectivity and sync state
  exit | quit      leave the program`

// runREPL starts a read-eval-print loop. It reads a line from the scanner,
// parses the first token as the command, and dispatches to methods on a.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues;
// a broken command must not take down the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "nk %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "add":
			err = a.Add(ctx)

		case "l", "list":
			categoryID := ""
			if len(args) > 0 {
				categoryID = args[0]
			}
			err = a.List(ctx, categoryID)

		case "show":
			err = a.Show(ctx)

		case "edit":
			err = a.Edit(ctx)

		case "pin":
			err = a.Pin(ctx)

		case "archive":
			err = a.Archive(ctx)

		case "delete":
			err = a.Delete(ctx)

		case "search":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: search <text>")
				continue
			}
			err = a.Search(ctx, strings.Join(args, " "))

		case "categories":
			err = a.Categories(ctx)

		case "addcat":
			err = a.AddCategory(ctx)

		case "editcat":
			err = a.EditCategory(ctx)

		case "delcat":
			err = a.DeleteCategory(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
