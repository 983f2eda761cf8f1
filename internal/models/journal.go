package models

import "time"

// Entry is a row of the entries table. Details are stored in entry_details.
type Entry struct {
	EntryUUID   string    `db:"entry_uuid"`
	Currency    string    `db:"currency"`
	Description string    `db:"description"`
	Language    string    `db:"language"`
	Arguments   []string  `db:"arguments"`
	TransDate   time.Time `db:"trans_date"`
	DomainUUID  string    `db:"domain_uuid"`
	JournalUUID string    `db:"journal_uuid"` // Nullable
	Posted      bool      `db:"posted"`
	Reviewed    bool      `db:"reviewed"`
	Extra       string    `db:"extra"`
	Revision    string    `db:"revision"`
	AuditFields
	Details []EntryDetail `db:"-"`
}
