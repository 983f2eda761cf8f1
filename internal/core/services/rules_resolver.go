package services

import (
	"strconv"

	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
)

// rulesResolver serves ledger defaults from configuration. It is immutable after construction.
type rulesResolver struct {
	rules map[string]string
	cfg   config.LedgerConfig
}

// NewRulesResolver creates a RulesResolver over the ledger section of the configuration.
func NewRulesResolver(cfg config.LedgerConfig) portssvc.RulesResolver {
	return &rulesResolver{
		cfg: cfg,
		rules: map[string]string{
			portssvc.RuleDomainDefault:        cfg.DefaultDomain,
			portssvc.RuleLanguageDefault:      cfg.DefaultLanguage,
			portssvc.RuleCurrencyDefault:      cfg.DefaultCurrency,
			portssvc.RuleCurrencyDecimals:     strconv.Itoa(int(cfg.CurrencyDecimals)),
			portssvc.RuleEntryReviewedDefault: strconv.FormatBool(cfg.ReviewedDefault),
		},
	}
}

var _ portssvc.RulesResolver = (*rulesResolver)(nil)

func (r *rulesResolver) Lookup(key string) (string, bool) {
	v, ok := r.rules[key]
	return v, ok
}

func (r *rulesResolver) DefaultDomain() string { return r.cfg.DefaultDomain }
func (r *rulesResolver) DefaultLanguage() string { return r.cfg.DefaultLanguage }
func (r *rulesResolver) DefaultCurrency() string { return r.cfg.DefaultCurrency }
func (r *rulesResolver) CurrencyDecimals() int32 { return r.cfg.CurrencyDecimals }
func (r *rulesResolver) EntryReviewedDefault() bool { return r.cfg.ReviewedDefault }
