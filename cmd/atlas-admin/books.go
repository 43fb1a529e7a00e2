// ABOUTME: Library commands - catalog CRUD plus borrow, return and loan views
// ABOUTME: Cover uploads switch the create request to multipart automatically

package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/atlasrobotics/atlas-console/internal/model"
)

func cmdBooks(c *console, args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return cmdBooksList(c, args)
	case "get", "show":
		return cmdBooksGet(c, args)
	case "create", "add":
		return cmdBooksCreate(c, args)
	case "update":
		return cmdBooksUpdate(c, args)
	case "delete", "rm", "remove":
		return cmdBooksDelete(c, args)
	case "borrow":
		return cmdBooksBorrow(c, args)
	case "return":
		return cmdBooksReturn(c, args)
	case "mine":
		return cmdBooksMine(c)
	case "loans":
		return cmdBooksLoans(c, args)
	default:
		return usagef("unknown books subcommand: %s (use list, get, create, update, delete, borrow, return, mine, loans)", subcmd)
	}
}

func cmdBooksList(c *console, args []string) error {
	query := url.Values{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--page", "-p":
			if i+1 < len(args) {
				query.Set("page", args[i+1])
				i++
			}
		case "--region", "-r":
			if i+1 < len(args) {
				query.Set("regionId", args[i+1])
				i++
			}
		case "--search", "-s":
			if i+1 < len(args) {
				query.Set("search", args[i+1])
				i++
			}
		}
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	books, err := c.app.Books.List(ctx, query)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Book Catalog")
	cyan.Println("  ------------")

	if len(books) == 0 {
		fmt.Println("  (no books)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tAUTHOR\tCATEGORY\tAVAIL\tQTY")
	fmt.Fprintln(w, "  --\t-----\t------\t--------\t-----\t---")
	for _, b := range books {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%d\t%d\n",
			truncate(b.ID, 12), truncate(b.Title, 32), truncate(b.Author, 24),
			truncate(b.Category, 16), b.Available, b.Quantity)
	}
	w.Flush()

	if page := c.app.Books.Store.State().Page; page.TotalPages > 0 {
		fmt.Printf("\n  page %d of %d (%d total)\n", page.Current, page.TotalPages, page.TotalItems)
	}
	fmt.Println()
	return nil
}

func cmdBooksGet(c *console, args []string) error {
	if len(args) < 1 {
		return usagef("usage: books get <book-id>")
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	b, err := c.app.Books.Get(ctx, args[0])
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  " + b.Title)
	fmt.Printf("  Author:     %s\n", b.Author)
	fmt.Printf("  Category:   %s\n", b.Category)
	fmt.Printf("  Available:  %d of %d\n", b.Available, b.Quantity)
	fmt.Printf("  Region:     %s\n", b.RegionID)
	fmt.Printf("  Added:      %s\n", fmtTime(b.CreatedAt))
	fmt.Println()
	return nil
}

// bookFlags parses the shared create/update flag set.
func bookFlags(args []string) (model.BookPayload, string, error) {
	var payload model.BookPayload
	var cover string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--title", "-t":
			if i+1 < len(args) {
				payload.Title = args[i+1]
				i++
			}
		case "--author", "-a":
			if i+1 < len(args) {
				payload.Author = args[i+1]
				i++
			}
		case "--category", "-c":
			if i+1 < len(args) {
				payload.Category = args[i+1]
				i++
			}
		case "--quantity", "-q":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					return payload, "", usagef("invalid quantity: %s", args[i+1])
				}
				payload.Quantity = n
				i++
			}
		case "--region", "-r":
			if i+1 < len(args) {
				payload.RegionID = args[i+1]
				i++
			}
		case "--cover":
			if i+1 < len(args) {
				cover = args[i+1]
				i++
			}
		}
	}
	return payload, cover, nil
}

func cmdBooksCreate(c *console, args []string) error {
	payload, cover, err := bookFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	if cover == "" {
		_, err = c.app.Books.Create(ctx, payload)
		return err
	}

	f, err := os.Open(cover)
	if err != nil {
		return usagef("opening cover image: %v", err)
	}
	defer f.Close()

	_, err = c.app.CreateBookWithCover(ctx, payload, filepath.Base(cover), f)
	return err
}

func cmdBooksUpdate(c *console, args []string) error {
	if len(args) < 1 {
		return usagef("usage: books update <book-id> --title ... --author ... --category ... --quantity ... --region ...")
	}
	id := args[0]

	payload, _, err := bookFlags(args[1:])
	if err != nil {
		return err
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	_, err = c.app.Books.Update(ctx, id, payload)
	return err
}

func cmdBooksDelete(c *console, args []string) error {
	if len(args) < 1 {
		return usagef("usage: books delete <book-id>")
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	return c.app.Books.Delete(ctx, args[0])
}

func cmdBooksBorrow(c *console, args []string) error {
	if len(args) < 1 {
		return usagef("usage: books borrow <book-id> --user <user-id> --due YYYY-MM-DD")
	}
	bookID := args[0]

	var payload model.BorrowPayload
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--user", "-u":
			if i+1 < len(rest) {
				payload.UserID = rest[i+1]
				i++
			}
		case "--due", "-d":
			if i+1 < len(rest) {
				payload.DueAt = rest[i+1]
				i++
			}
		}
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	return c.app.BorrowBook(ctx, bookID, payload)
}

func cmdBooksReturn(c *console, args []string) error {
	if len(args) < 1 {
		return usagef("usage: books return <book-id>")
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	return c.app.ReturnBook(ctx, args[0])
}

func cmdBooksMine(c *console) error {
	ctx, cancel := cmdCtx(c)
	defer cancel()

	loans, err := c.app.MyBorrowedBooks(ctx)
	if err != nil {
		return err
	}
	printLoans("My Borrowed Books", loans)
	return nil
}

func cmdBooksLoans(c *console, args []string) error {
	page := 1
	for i := 0; i < len(args); i++ {
		if args[i] == "--page" || args[i] == "-p" {
			if i+1 < len(args) {
				n, err := parseIntArg(args[i+1])
				if err != nil {
					return usagef("invalid page: %s", args[i+1])
				}
				page = n
				i++
			}
		}
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	loans, err := c.app.BookLoans(ctx, page)
	if err != nil {
		return err
	}
	printLoans("Book Loans", loans)
	return nil
}

func printLoans(title string, loans []model.BookLoan) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  " + title)
	cyan.Println("  " + dashes(len(title)))

	if len(loans) == 0 {
		fmt.Println("  (no loans)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tBOOK\tUSER\tBORROWED\tDUE\tSTATUS")
	fmt.Fprintln(w, "  --\t----\t----\t--------\t---\t------")
	for _, l := range loans {
		status := l.Status
		if l.Status == model.LoanOverdue {
			status = color.RedString(l.Status)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(l.ID, 12), truncate(l.BookID, 12), truncate(l.UserID, 12),
			fmtTime(l.BorrowedAt), l.DueAt.Format("2006-01-02"), status)
	}
	w.Flush()
	fmt.Println()
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
