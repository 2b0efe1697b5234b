package pocketbook

// ReminderKind says why a loan surfaced.
type ReminderKind int

const (
	// Due means today is exactly the loan's follow-up day.
	Due ReminderKind = iota
	// Overdue means the follow-up day has passed and the loan is still open.
	Overdue
	// Periodic means the loan has no follow-up day and its age is a whole
	// multiple of a week.
	Periodic
)

func (k ReminderKind) String() string {
	switch k {
	case Due:
		return "due"
	case Overdue:
		return "overdue"
	case Periodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Reminder is a notification derived from an open lend transaction.
type Reminder struct {
	Tx   Transaction
	Kind ReminderKind
	Days int // days past the follow-up day (Overdue) or since the lend (Periodic)
}

// Reminders scans the open lend transactions of the book and derives the
// notifications to surface on the given day.
//
// Only lends are evaluated: the book tracks money owed to its owner, repaying
// what was borrowed is left to the counterparty's conscience. The evaluation
// is stateless and idempotent; calling it twice on the same day with the same
// book yields the same reminders, there is no shown-once suppression.
func Reminders(b *Book, today Date) []Reminder {
	var reminders []Reminder
	for tx := range b.Transactions(ByType(Lend)) {
		if tx.Settled() {
			continue
		}
		if !tx.ReminderDate.IsZero() {
			switch {
			case today == tx.ReminderDate:
				reminders = append(reminders, Reminder{Tx: tx, Kind: Due})
			case today.After(tx.ReminderDate):
				reminders = append(reminders, Reminder{Tx: tx, Kind: Overdue, Days: today.Sub(tx.ReminderDate)})
			}
			continue
		}
		// No explicit follow-up day: fall back to a weekly nag.
		days := today.Sub(DateOf(tx.Date))
		if days > 0 && days%7 == 0 {
			reminders = append(reminders, Reminder{Tx: tx, Kind: Periodic, Days: days})
		}
	}
	return reminders
}
