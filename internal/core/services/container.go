package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	resolver, err := NewAccountResolverService(repos.AccountMasters)
	if err != nil {
		return nil, fmt.Errorf("failed to build account resolver: %w", err)
	}

	conversion := NewConversionService(repos.CurrencyRepo)
	numbering := NewNumberingService(repos.Sequences)

	return &portssvc.ServiceContainer{
		Accounts:       resolver,
		Numbering:      numbering,
		Conversion:     conversion,
		Voucher:        NewVoucherService(repos.VoucherRepo, resolver, conversion, numbering, repos.Attachments),
		Reconciliation: NewReconciliationService(conversion, repos.StatementParser),
	}, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountResolverSvc = (*accountResolverService)(nil)
	_ portssvc.NumberingSvc       = (*numberingService)(nil)
	_ portssvc.ConversionSvc      = (*conversionService)(nil)
	_ portssvc.ReconciliationSvc  = (*reconciliationService)(nil)
)
