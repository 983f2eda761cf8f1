package models

// LedgerDomain is a row of ledger_domains.
type LedgerDomain struct {
	DomainUUID   string `db:"domain_uuid"`
	Code         string `db:"code"`
	Names        []Name `db:"names"`
	CurrencyCode string `db:"currency_code"`
	Revision     string `db:"revision"`
	AuditFields
}

// SubJournal is a row of sub_journals.
type SubJournal struct {
	JournalUUID string `db:"journal_uuid"`
	Code        string `db:"code"`
	DomainUUID  string `db:"domain_uuid"`
	Names       []Name `db:"names"`
	Revision    string `db:"revision"`
	AuditFields
}
