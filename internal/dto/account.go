package dto

import (
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
)

// CreateRootRequest defines the data needed to create the root of the chart of accounts.
type CreateRootRequest struct {
	Names []Name `json:"names"`
	Extra string `json:"extra"`
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code       string                 `json:"code" example:"1010"`
	ParentCode string                 `json:"parentCode" example:"1000"` // Empty attaches to the root
	Names      []Name                 `json:"names"`
	Category   domain.AccountCategory `json:"category" example:"ASSET"`
	Debit      *bool                  `json:"debit"`  // Optional, inherited when omitted
	Credit     *bool                  `json:"credit"` // Optional, inherited when omitted
	Closed     bool                   `json:"closed"`
	Extra      string                 `json:"extra"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Revision   string                  `json:"revision"`
	Code       *string                 `json:"code"`
	ParentCode *string                 `json:"parentCode"`
	Names      *[]Name                 `json:"names"`
	Category   *domain.AccountCategory `json:"category"`
	Debit      *bool                   `json:"debit"`
	Credit     *bool                   `json:"credit"`
	Closed     *bool                   `json:"closed"`
	Extra      *string                 `json:"extra"`
}

// DeleteAccountParams defines the query parameters of an account delete.
type DeleteAccountParams struct {
	Cascade  bool   `form:"cascade"`
	Revision string `form:"revision"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	UUID       string                 `json:"uuid"`
	Code       string                 `json:"code"`
	ParentUUID string                 `json:"parentUuid,omitempty"`
	Category   domain.AccountCategory `json:"category,omitempty"`
	Debit      bool                   `json:"debit"`
	Credit     bool                   `json:"credit"`
	Closed     bool                   `json:"closed"`
	Names      []Name                 `json:"names"`
	Extra      string                 `json:"extra,omitempty"`
	Revision   string                 `json:"revision"`
	AuditResponse
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToCreateRootInput converts the request to the core input.
func (r CreateRootRequest) ToCreateRootInput() domain.CreateRootInput {
	return domain.CreateRootInput{Names: toDomainNames(r.Names), Extra: r.Extra}
}

// ToAddAccountInput converts the request to the core input.
func (r CreateAccountRequest) ToAddAccountInput() domain.AddAccountInput {
	return domain.AddAccountInput{
		Code:       r.Code,
		ParentCode: r.ParentCode,
		Names:      toDomainNames(r.Names),
		Category:   r.Category,
		Debit:      r.Debit,
		Credit:     r.Credit,
		Closed:     r.Closed,
		Extra:      r.Extra,
	}
}

// ToUpdateAccountInput converts the request to the core input for the referenced account.
func (r UpdateAccountRequest) ToUpdateAccountInput(ref domain.EntityRef) domain.UpdateAccountInput {
	in := domain.UpdateAccountInput{
		Ref:        ref,
		Revision:   revision.Token(r.Revision),
		Code:       r.Code,
		ParentCode: r.ParentCode,
		Category:   r.Category,
		Debit:      r.Debit,
		Credit:     r.Credit,
		Closed:     r.Closed,
		Extra:      r.Extra,
	}
	if r.Names != nil {
		names := toDomainNames(*r.Names)
		in.Names = &names
	}
	return in
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		UUID:          acc.UUID,
		Code:          acc.Code,
		ParentUUID:    acc.ParentUUID,
		Category:      acc.Category,
		Debit:         acc.Debit,
		Credit:        acc.Credit,
		Closed:        acc.Closed,
		Names:         toNames(acc.Names),
		Extra:         acc.Extra,
		Revision:      acc.Revision.String(),
		AuditResponse: toAuditResponse(acc.AuditFields),
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc) // Reuse the single converter
	}
	return res
}
