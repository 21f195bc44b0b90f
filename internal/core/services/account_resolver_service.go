package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the number of account master queries per ResolveAll.
const maxConcurrentLookups = 4

type accountResolverService struct {
	BaseService
	masters portsrepo.AccountMasters
}

// NewAccountResolverService builds the resolver. Every AccountModel must have
// a reader; a missing one is a wiring error reported here rather than at lookup.
func NewAccountResolverService(masters portsrepo.AccountMasters) (portssvc.AccountResolverSvc, error) {
	for _, model := range domain.AllAccountModels() {
		if masters[model] == nil {
			return nil, fmt.Errorf("no account master reader registered for %s", model)
		}
	}
	return &accountResolverService{masters: masters}, nil
}

func (s *accountResolverService) Resolve(ctx context.Context, ref domain.AccountRef) (domain.ResolvedAccount, error) {
	if err := ref.Validate(); err != nil {
		return domain.ResolvedAccount{Ref: ref}, err
	}

	name, found, err := s.masters[ref.Model].FindAccountName(ctx, ref.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up account", slog.String("account", ref.String()))
		return domain.ResolvedAccount{Ref: ref}, fmt.Errorf("looking up %s: %w", ref, err)
	}
	if !found {
		return domain.ResolvedAccount{Ref: ref}, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, ref)
	}

	return domain.ResolvedAccount{Ref: ref, AccountName: name, Exists: true}, nil
}

func (s *accountResolverService) ResolveAll(ctx context.Context, refs []domain.AccountRef) (map[domain.AccountRef]domain.ResolvedAccount, error) {
	distinct := make([]domain.AccountRef, 0, len(refs))
	seen := make(map[domain.AccountRef]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		distinct = append(distinct, ref)
	}

	var mu sync.Mutex
	resolved := make(map[domain.AccountRef]domain.ResolvedAccount, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, ref := range distinct {
		g.Go(func() error {
			acc, err := s.Resolve(gctx, ref)
			if err != nil {
				return err
			}
			mu.Lock()
			resolved[ref] = acc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
