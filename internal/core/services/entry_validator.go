package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// EntryOperation selects the required-field set applied by Validate.
type EntryOperation int

const (
	OpAdd EntryOperation = iota
	OpUpdate
)

func (op EntryOperation) String() string {
	if op == OpUpdate {
		return "update"
	}
	return "add"
}

// Balance messages reported by Validate.
const (
	MsgNoDetails          = "Entry has no details."
	MsgNeedDebitAndCredit = "Entry must have at least one debit and credit."
	MsgManyToMany         = "Entry can't have multiple debits and multiple credits."
	MsgOutOfBalance       = "Entry amounts are out of balance by %s."
)

// EntryValidator builds entries from raw input and checks them. It only reads from its
// collaborators.
type EntryValidator struct {
	accounts portsrepo.AccountReader
	scopes   portsrepo.ScopeReader
	rules    portssvc.RulesResolver
}

// NewEntryValidator creates a validator that resolves references through the given readers.
func NewEntryValidator(accounts portsrepo.AccountReader, scopes portsrepo.ScopeReader, rules portssvc.RulesResolver) *EntryValidator {
	return &EntryValidator{accounts: accounts, scopes: scopes, rules: rules}
}

// BuildAdd constructs a new entry, applying defaults for omitted domain, language, currency
// and reviewed flag. Every problem found is returned in one ValidationErrors.
func (v *EntryValidator) BuildAdd(ctx context.Context, in domain.AddEntryInput) (*domain.Entry, error) {
	errs := &apperrors.ValidationErrors{}
	entry := &domain.Entry{
		Description: strings.TrimSpace(in.Description),
		Arguments:   append([]string(nil), in.Arguments...),
		Posted:      in.Posted,
		Extra:       in.Extra,
		Language:    v.rules.DefaultLanguage(),
		Reviewed:    v.rules.EntryReviewedDefault(),
	}
	if in.Language != nil && *in.Language != "" {
		entry.Language = *in.Language
	}
	if in.Reviewed != nil {
		entry.Reviewed = *in.Reviewed
	}
	if in.TransDate != nil {
		entry.TransDate = in.TransDate.UTC()
	}

	domainRef := domain.EntityRef{Code: v.rules.DefaultDomain()}
	if in.Domain != nil && !in.Domain.Empty() {
		domainRef = *in.Domain
	}
	ledgerDomain, err := v.resolveDomain(ctx, domainRef, errs)
	if err != nil {
		return nil, err
	}
	if ledgerDomain != nil {
		entry.DomainUUID = ledgerDomain.UUID
	}

	if in.Journal != nil && !in.Journal.Empty() {
		if err := v.resolveJournal(ctx, entry, *in.Journal, errs); err != nil {
			return nil, err
		}
	}

	entry.Currency = v.resolveCurrency(in.Currency, ledgerDomain, errs)

	details, err := v.buildDetails(ctx, in.Details, errs)
	if err != nil {
		return nil, err
	}
	entry.Details = details

	errs.Merge(Validate(entry, OpAdd))
	if !errs.Empty() {
		return nil, errs
	}
	return entry, nil
}

// BuildUpdate merges in over current. Only supplied fields overwrite; supplied details
// replace the whole set. The returned entry carries the caller's revision for checking.
func (v *EntryValidator) BuildUpdate(ctx context.Context, current *domain.Entry, in domain.UpdateEntryInput) (*domain.Entry, error) {
	errs := &apperrors.ValidationErrors{}
	merged := current.Clone()
	merged.ID = in.ID
	merged.Revision = in.Revision

	if in.Description != nil {
		merged.Description = strings.TrimSpace(*in.Description)
	}
	if in.Language != nil {
		merged.Language = *in.Language
	}
	if in.Arguments != nil {
		merged.Arguments = append([]string(nil), (*in.Arguments)...)
	}
	if in.TransDate != nil {
		merged.TransDate = in.TransDate.UTC()
	}
	if in.Posted != nil {
		merged.Posted = *in.Posted
	}
	if in.Reviewed != nil {
		merged.Reviewed = *in.Reviewed
	}
	if in.Extra != nil {
		merged.Extra = *in.Extra
	}

	var ledgerDomain *domain.LedgerDomain
	if in.Domain != nil {
		d, err := v.resolveDomain(ctx, *in.Domain, errs)
		if err != nil {
			return nil, err
		}
		if d != nil {
			ledgerDomain = d
			merged.DomainUUID = d.UUID
		}
	}

	switch {
	case in.Journal != nil && in.Journal.Empty():
		merged.JournalUUID = ""
	case in.Journal != nil:
		if err := v.resolveJournal(ctx, &merged, *in.Journal, errs); err != nil {
			return nil, err
		}
	case in.Domain != nil && merged.JournalUUID != "":
		// Moving domains keeps the journal only if it belongs to the new domain.
		if err := v.resolveJournal(ctx, &merged, domain.EntityRef{UUID: merged.JournalUUID}, errs); err != nil {
			return nil, err
		}
	}

	if in.Currency != nil {
		merged.Currency = v.resolveCurrency(*in.Currency, ledgerDomain, errs)
	}

	if in.Details != nil {
		details, err := v.buildDetails(ctx, *in.Details, errs)
		if err != nil {
			return nil, err
		}
		merged.Details = details
	}

	errs.Merge(Validate(&merged, OpUpdate))
	if !errs.Empty() {
		return nil, errs
	}
	return &merged, nil
}

// Validate checks required fields and the balancing rules of an entry. Detail lines are
// classified by sign: positive is a debit, anything else a credit.
func Validate(entry *domain.Entry, op EntryOperation) *apperrors.ValidationErrors {
	errs := &apperrors.ValidationErrors{}

	if op == OpAdd && len(entry.Details) == 0 {
		errs.Add(MsgNoDetails)
	}

	switch op {
	case OpAdd:
		if entry.Description == "" {
			errs.Add("Description is required.")
		}
		if entry.DomainUUID == "" {
			errs.Add("Domain is required.")
		}
		if entry.Language == "" {
			errs.Add("Language is required.")
		}
		if entry.TransDate.IsZero() {
			errs.Add("Transaction date is required.")
		}
	case OpUpdate:
		if entry.ID == "" {
			errs.Add("Entry id is required.")
		}
		if entry.Revision.IsZero() {
			errs.Add("Revision is required.")
		}
		if entry.Description == "" {
			errs.Add("Description is required.")
		}
	}

	var debitCount, creditCount int
	for _, d := range entry.Details {
		if d.SignTest() > 0 {
			debitCount++
		} else {
			creditCount++
		}
	}

	if creditCount == 0 || debitCount == 0 {
		errs.Add(MsgNeedDebitAndCredit)
	}
	if creditCount > 1 && debitCount > 1 {
		errs.Add(MsgManyToMany)
	}
	if debitCount > 0 && creditCount > 0 {
		if gap := accounting.Imbalance(entry.Details); !gap.IsZero() {
			errs.Add(MsgOutOfBalance, gap.String())
		}
	}

	return errs
}

// resolveDomain returns nil with a violation recorded when the reference does not resolve.
// Only storage failures are returned as errors.
func (v *EntryValidator) resolveDomain(ctx context.Context, ref domain.EntityRef, errs *apperrors.ValidationErrors) (*domain.LedgerDomain, error) {
	d, err := findDomain(ctx, v.scopes, ref)
	if err == nil {
		return d, nil
	}
	if recordRefViolation(errs, err, "Domain", ref) {
		return nil, nil
	}
	return nil, err
}

func (v *EntryValidator) resolveJournal(ctx context.Context, entry *domain.Entry, ref domain.EntityRef, errs *apperrors.ValidationErrors) error {
	j, err := findJournal(ctx, v.scopes, ref)
	if err != nil {
		if recordRefViolation(errs, err, "Journal", ref) {
			return nil
		}
		return err
	}
	if entry.DomainUUID != "" && j.DomainUUID != entry.DomainUUID {
		errs.Add("Journal %s does not belong to the entry's domain.", j.Code)
		return nil
	}
	entry.JournalUUID = j.UUID
	return nil
}

func (v *EntryValidator) resolveCurrency(code string, ledgerDomain *domain.LedgerDomain, errs *apperrors.ValidationErrors) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" && ledgerDomain != nil {
		code = ledgerDomain.CurrencyCode
	}
	if code == "" {
		code = v.rules.DefaultCurrency()
	}
	if _, err := currency.ParseISO(code); err != nil {
		errs.Add("Currency %s is not a valid ISO 4217 code.", code)
	}
	return code
}

// buildDetails resolves each raw line. Lines that fail are reported and left out.
func (v *EntryValidator) buildDetails(ctx context.Context, inputs []domain.DetailInput, errs *apperrors.ValidationErrors) ([]domain.Detail, error) {
	details := make([]domain.Detail, 0, len(inputs))
	for i, in := range inputs {
		line := i + 1
		amount, ok := v.parseAmount(line, in, errs)

		var account *domain.Account
		if in.Account.Empty() {
			errs.Add("Detail %d has no account.", line)
		} else {
			a, err := findAccount(ctx, v.accounts, in.Account)
			switch {
			case err == nil:
				account = a
			case errors.Is(err, apperrors.ErrNotFound):
				errs.Add("Detail %d account %s not found.", line, in.Account.String())
			case errors.Is(err, apperrors.ErrInvalidIdentifier):
				errs.Add("Detail %d account identifier %s is invalid.", line, in.Account.String())
			case errors.Is(err, apperrors.ErrIdentifierMismatch):
				errs.Add("Detail %d account code and uuid refer to different accounts.", line)
			default:
				return nil, fmt.Errorf("failed to resolve account for detail %d: %w", line, err)
			}
		}
		if account != nil {
			if account.IsRoot() {
				errs.Add("Detail %d cannot post to the root account.", line)
				account = nil
			} else if account.Closed {
				errs.Add("Detail %d account %s is closed.", line, account.Code)
				account = nil
			}
		}

		if !ok || account == nil {
			continue
		}
		details = append(details, domain.Detail{
			AccountUUID: account.UUID,
			AccountCode: account.Code,
			Amount:      amount,
			Memo:        in.Memo,
		})
	}
	return details, nil
}

// parseAmount turns the debit, credit or signed amount of a line into a signed decimal.
func (v *EntryValidator) parseAmount(line int, in domain.DetailInput, errs *apperrors.ValidationErrors) (decimal.Decimal, bool) {
	var raw string
	var sign int32 = 1
	supplied := 0
	if in.Debit != "" {
		supplied++
		raw = in.Debit
	}
	if in.Credit != "" {
		supplied++
		raw, sign = in.Credit, -1
	}
	if in.Amount != "" {
		supplied++
		raw, sign = in.Amount, 0
	}

	switch supplied {
	case 0:
		errs.Add("Detail %d has no amount.", line)
		return decimal.Zero, false
	case 1:
	default:
		errs.Add("Detail %d must have exactly one of debit, credit or amount.", line)
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		errs.Add("Detail %d amount %s is not a number.", line, raw)
		return decimal.Zero, false
	}
	if amount.IsZero() {
		errs.Add("Detail %d amount must not be zero.", line)
		return decimal.Zero, false
	}
	if sign != 0 {
		if amount.IsNegative() {
			errs.Add("Detail %d debit and credit amounts must be positive.", line)
			return decimal.Zero, false
		}
		amount = amount.Mul(decimal.NewFromInt32(sign))
	}
	if !withinRange(amount) {
		errs.Add("Detail %d amount %s is out of range.", line, strings.TrimSpace(raw))
		return decimal.Zero, false
	}
	if places := v.rules.CurrencyDecimals(); !withinScale(amount, places) {
		errs.Add("Detail %d amount %s has more than %d decimal places.", line, strings.TrimPrefix(strings.TrimSpace(raw), "-"), places)
		return decimal.Zero, false
	}
	return amount, true
}

// Amounts are bounded before any arithmetic. Rescaling a value such as 1e2000000000 would
// materialize every digit.
const (
	maxAmountDigits        = 40
	maxAmountIntegerDigits = 24
)

// withinRange reports whether amount has at most maxAmountDigits significant digits and
// maxAmountIntegerDigits digits before the point. Exponents are widened so that extreme
// values cannot overflow.
func withinRange(amount decimal.Decimal) bool {
	digits, exp := int64(amount.NumDigits()), int64(amount.Exponent())
	return digits <= maxAmountDigits && digits+exp <= maxAmountIntegerDigits
}

// withinScale reports whether amount has no non-zero digit past places decimals. Trailing
// zeros do not count, so 10.500 fits two decimals.
func withinScale(amount decimal.Decimal, places int32) bool {
	digits, exp := int64(amount.NumDigits()), int64(amount.Exponent())
	if exp >= -int64(places) {
		return true
	}
	// The lowest non-zero digit sits at or above exp; when even the highest digit is past
	// places, rounding is not needed to know the answer.
	if digits+exp <= -int64(places) {
		return false
	}
	return amount.Equal(amount.Round(places))
}

// recordRefViolation adds a violation for an unresolvable reference and reports whether err
// was of that kind.
func recordRefViolation(errs *apperrors.ValidationErrors, err error, kind string, ref domain.EntityRef) bool {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		errs.Add("%s %s not found.", kind, ref.String())
	case errors.Is(err, apperrors.ErrInvalidIdentifier):
		errs.Add("%s identifier %s is invalid.", kind, ref.String())
	case errors.Is(err, apperrors.ErrIdentifierMismatch):
		errs.Add("%s code and uuid refer to different records.", kind)
	default:
		return false
	}
	return true
}
