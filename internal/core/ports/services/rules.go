package services

// Rule keys understood by RulesResolver.Lookup.
const (
	RuleDomainDefault        = "domain.default"
	RuleLanguageDefault      = "language.default"
	RuleCurrencyDefault      = "currency.default"
	RuleCurrencyDecimals     = "currency.decimals"
	RuleEntryReviewedDefault = "entry.reviewed.default"
)

// RulesResolver supplies the defaults applied when optional input fields are omitted.
// Implementations are read-only.
type RulesResolver interface {
	// Lookup returns the raw value of a rule key.
	Lookup(key string) (string, bool)

	DefaultDomain() string
	DefaultLanguage() string
	DefaultCurrency() string
	CurrencyDecimals() int32
	EntryReviewedDefault() bool
}
