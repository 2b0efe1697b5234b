// Package renderer renders book state as markdown for the CLI.
//
// Everything here is presentation: functions read engine output and return
// strings, they never touch the book.
package renderer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/pocketbook"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx pocketbook.Transaction) string {
	switch tx.Type {
	case pocketbook.Credit:
		return fmt.Sprintf("Received %s via %s", tx.Amount, tx.Mode)
	case pocketbook.Debit:
		return fmt.Sprintf("Spent %s via %s", tx.Amount, tx.Mode)
	case pocketbook.Lend:
		if tx.Settled() {
			return fmt.Sprintf("Lent %s to %s (settled)", tx.Amount, tx.Person)
		}
		return fmt.Sprintf("Lent %s to %s", tx.Amount, tx.Person)
	case pocketbook.Borrow:
		if tx.Settled() {
			return fmt.Sprintf("Borrowed %s from %s (settled)", tx.Amount, tx.Person)
		}
		return fmt.Sprintf("Borrowed %s from %s", tx.Amount, tx.Person)
	default:
		return string(tx.Type)
	}
}

// Transactions renders a list of transactions as a markdown table.
func Transactions(txs []pocketbook.Transaction) string {
	var b strings.Builder
	b.WriteString("| Date | Type | Amount | Mode | Details | Status |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, tx := range txs {
		details := tx.Desc
		if tx.Person != "" {
			details = tx.Person
		}
		if tx.Tag != "" {
			details = fmt.Sprintf("%s `%s`", details, tx.Tag)
		}
		status := ""
		if tx.Type.IsLoan() {
			status = "open"
			if tx.Settled() {
				status = fmt.Sprintf("settled %s", tx.SettledOn)
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount, tx.Mode, details, status)
	}
	return b.String()
}

// Summary renders the balance pair.
func Summary(balance pocketbook.Balance) string {
	var b strings.Builder
	b.WriteString("# Balances\n\n")
	fmt.Fprintf(&b, "| Hand | Bank | Total |\n|---|---|---|\n| %s | %s | %s |\n",
		balance.Hand, balance.Bank, balance.Total())
	return b.String()
}

// Spending renders the per-tag spending map as a markdown table, largest
// first.
func Spending(spending map[string]pocketbook.Money) string {
	if len(spending) == 0 {
		return "No tagged spending yet.\n"
	}

	tags := slices.Collect(maps.Keys(spending))
	slices.SortFunc(tags, func(a, b string) int {
		// Largest spend first, ties by tag name for a stable table.
		if spending[a].LessThan(spending[b]) {
			return 1
		}
		if spending[b].LessThan(spending[a]) {
			return -1
		}
		return strings.Compare(a, b)
	})

	var b strings.Builder
	b.WriteString("# Spending by category\n\n")
	b.WriteString("| Tag | Total |\n|---|---|\n")
	for _, tag := range tags {
		fmt.Fprintf(&b, "| %s | %s |\n", tag, spending[tag])
	}
	return b.String()
}

// Reminder renders a single reminder the way the original app worded its
// toasts.
func Reminder(r pocketbook.Reminder) string {
	switch r.Kind {
	case pocketbook.Due:
		return fmt.Sprintf("Reminder: Collect %s from %s (Today)", r.Tx.Amount, r.Tx.Person)
	case pocketbook.Overdue:
		return fmt.Sprintf("Overdue: Collect %s from %s (%d days ago)", r.Tx.Amount, r.Tx.Person, r.Days)
	case pocketbook.Periodic:
		return fmt.Sprintf("Reminder: Collect %s from %s (%d days ago)", r.Tx.Amount, r.Tx.Person, r.Days)
	default:
		return ""
	}
}

// Reminders renders the reminder list as a markdown bullet list.
func Reminders(reminders []pocketbook.Reminder) string {
	if len(reminders) == 0 {
		return "Nothing to collect today.\n"
	}
	var b strings.Builder
	b.WriteString("# Reminders\n\n")
	for _, r := range reminders {
		fmt.Fprintf(&b, "* %s\n", Reminder(r))
	}
	return b.String()
}
