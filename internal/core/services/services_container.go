package services

import (
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share one revision controller so tokens never repeat within the process.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	rules := NewRulesResolver(cfg.Ledger)
	shared := append([]ServiceOption{WithRevisionController(revision.NewController())}, options...)

	return &portssvc.ServiceContainer{
		Rules:   rules,
		Account: NewAccountService(repos, rules, shared...),
		Journal: NewJournalService(repos, rules, shared...),
		Scope:   NewScopeService(repos, rules, shared...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ScopeSvcFacade   = (*scopeService)(nil)
)
