// Command tracker is an interactive terminal client for the expense API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/app"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/cli"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/client"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/config"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/session"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()

	sessionPath := cfg.SessionPath
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot resolve session path:", err)
			os.Exit(1)
		}
	}
	store := session.NewFileStore(sessionPath)

	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	sess, err := store.Load()
	if err != nil {
		fmt.Println("No active session. Please log in.")
		sess, err = login(in, store)
		if err != nil {
			fmt.Fprintln(os.Stderr, "login failed:", err)
			os.Exit(1)
		}
	}

	api, err := client.New(cfg.APIBaseURL, sess.Owner())
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create API client:", err)
		os.Exit(1)
	}

	if err := api.Health(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "API is not reachable:", err)
		os.Exit(1)
	}

	a := app.New(api)
	if err := a.Refresh(ctx); err != nil {
		fmt.Println(a.Err())
	}

	fmt.Printf("Signed in as %s <%s>. Type 'help' for commands.\n", sess.Sub, sess.Email)

	for {
		printBanners(a)
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "list", "ls":
			if err := a.Refresh(ctx); err == nil {
				printList(a)
			}
		case "summary", "stats":
			if err := a.Refresh(ctx); err == nil {
				printSummary(a.Summary())
			}
		case "add":
			a.OpenAdd()
			a.SetForm(promptForm(in, a.FormValues()))
			_ = a.Submit(ctx)
		case "edit":
			if len(args) != 1 {
				fmt.Println("usage: edit <id>")
				continue
			}
			if !a.OpenEdit(args[0]) {
				continue
			}
			a.SetForm(promptForm(in, a.FormValues()))
			_ = a.Submit(ctx)
		case "delete", "rm":
			if len(args) != 1 {
				fmt.Println("usage: delete <id>")
				continue
			}
			fmt.Print("Delete this expense? [y/N] ")
			confirmed := in.Scan() && strings.EqualFold(strings.TrimSpace(in.Text()), "y")
			_ = a.DeleteExpense(ctx, args[0], confirmed)
		case "logout":
			if err := store.Clear(); err != nil {
				fmt.Fprintln(os.Stderr, "logout failed:", err)
				continue
			}
			fmt.Println("Logged out.")
			return
		case "help":
			printHelp()
		case "quit", "exit", "q":
			return
		default:
			fmt.Printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}

func login(in *bufio.Scanner, store *session.FileStore) (session.Session, error) {
	s := session.Session{
		Sub:   prompt(in, "User ID", ""),
		Email: prompt(in, "Email", ""),
		Name:  prompt(in, "Name (optional)", ""),
	}
	if err := store.Save(s); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func prompt(in *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		return current
	}
	text := strings.TrimSpace(in.Text())
	if text == "" {
		return current
	}
	return text
}

// promptForm asks for each field, keeping the current value on empty input.
func promptForm(in *bufio.Scanner, current app.Form) app.Form {
	cats := make([]string, 0)
	for _, c := range core.Categories() {
		cats = append(cats, string(c))
	}
	fmt.Println("Categories:", strings.Join(cats, ", "))

	return app.Form{
		Description: prompt(in, "Description", current.Description),
		Amount:      prompt(in, "Amount", current.Amount),
		Category:    prompt(in, "Category", current.Category),
		Date:        prompt(in, "Date (YYYY-MM-DD)", current.Date),
	}
}

func printBanners(a *app.App) {
	if msg := a.Success(); msg != "" {
		fmt.Println("✔", msg)
	}
	if msg := a.Err(); msg != "" {
		fmt.Println("✘", msg)
	}
}

func printList(a *app.App) {
	records := a.Records()
	if len(records) == 0 {
		fmt.Println("No expenses yet.")
		return
	}
	for _, rec := range records {
		fmt.Printf("%-36s  %s  %-13s  €%-9s  %s\n",
			rec.ID, rec.Date.Format("2006-01-02"), rec.Category, rec.Amount, rec.Description)
	}
}

func printSummary(s core.Summary) {
	if s.Count == 0 {
		fmt.Println("No expenses yet.")
		return
	}
	fmt.Printf("Total: €%s over %d expenses (average €%.2f)\n", s.Total, s.Count, s.Average)

	var max int64
	for _, c := range s.ByCategory {
		if c.Amount.Cents > max {
			max = c.Amount.Cents
		}
	}
	for _, c := range s.ByCategory {
		width := 0
		if max > 0 {
			width = int(c.Amount.Cents * 30 / max)
		}
		fmt.Printf("%-13s %-30s €%s\n", c.Category, strings.Repeat("█", width), c.Amount)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  list            reload and show your expenses
  summary         show totals and a per-category breakdown
  add             add an expense
  edit <id>       edit an expense
  delete <id>     delete an expense (asks for confirmation)
  logout          clear the stored session and exit
  quit            exit`)
}
