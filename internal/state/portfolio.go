package state

import (
	"context"
	"fmt"
	"sort"

	"github.com/epeers/fundsight/internal/fundapi"
	"github.com/epeers/fundsight/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FetchInvestments replaces the investment list with a fresh copy from the
// API. A failed fetch keeps the previous list and records the error.
// Responses that arrive after a newer fetch was already applied are dropped.
func (s *Store) FetchInvestments(ctx context.Context) error {
	var seq uint64
	s.update(func(st *State) {
		seq = s.invSeq.next()
		st.Portfolio = investmentsPending(st.Portfolio)
	})

	investments, err := s.client().GetInvestments(ctx)
	if err == nil {
		investments = normalizeInvestments(investments)
	}

	applied := false
	s.update(func(st *State) {
		ok, latest := s.invSeq.accept(seq)
		if !ok {
			return
		}
		applied = true
		if err != nil {
			st.Portfolio = investmentsRejected(st.Portfolio, fundapi.UserMessage(err), latest)
			return
		}
		st.Portfolio = investmentsFulfilled(st.Portfolio, investments, latest)
	})

	if !applied {
		log.Debugf("Discarded stale investments response #%d", seq)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch investments: %w", err)
	}
	return nil
}

// FetchFunds replaces the fund list; same contract as FetchInvestments
func (s *Store) FetchFunds(ctx context.Context) error {
	var seq uint64
	s.update(func(st *State) {
		seq = s.fundSeq.next()
		st.Portfolio = fundsPending(st.Portfolio)
	})

	funds, err := s.client().GetFunds(ctx)

	applied := false
	s.update(func(st *State) {
		ok, latest := s.fundSeq.accept(seq)
		if !ok {
			return
		}
		applied = true
		if err != nil {
			st.Portfolio = fundsRejected(st.Portfolio, fundapi.UserMessage(err), latest)
			return
		}
		st.Portfolio = fundsFulfilled(st.Portfolio, funds, latest)
	})

	if !applied {
		log.Debugf("Discarded stale funds response #%d", seq)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch funds: %w", err)
	}
	return nil
}

// LoadAll fetches investments and funds concurrently. Both fetches always
// run to completion; the first error is returned.
func (s *Store) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.FetchInvestments(ctx) })
	g.Go(func() error { return s.FetchFunds(ctx) })
	return g.Wait()
}

// EnsureLoaded runs the fetches whose status is idle or failed. Reloading
// a page is how a user retries after an error.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	snap := s.Snapshot().Portfolio

	var g errgroup.Group
	if needsFetch(snap.InvestmentsFetch.Status) {
		g.Go(func() error { return s.FetchInvestments(ctx) })
	}
	if needsFetch(snap.FundsFetch.Status) {
		g.Go(func() error { return s.FetchFunds(ctx) })
	}
	return g.Wait()
}

func needsFetch(status models.FetchStatus) bool {
	return status == models.StatusIdle || status == models.StatusFailed
}

// SetSelectedUser changes which investment is viewed. The name is not
// checked against the loaded list.
func (s *Store) SetSelectedUser(userName string) {
	s.update(func(st *State) { st.Portfolio = userSelected(st.Portfolio, userName) })
}

// normalizeInvestments puts every performance history in chronological
// order. Already ordered histories are left untouched.
func normalizeInvestments(investments []models.Investment) []models.Investment {
	for i := range investments {
		history := investments[i].PerformanceHistory
		ordered := sort.SliceIsSorted(history, func(a, b int) bool {
			return history[a].Date.Before(history[b].Date.Time)
		})
		if ordered {
			continue
		}
		log.Warnf("Performance history for %s was out of order, sorting", investments[i].UserName)
		sorted := make([]models.PerformancePoint, len(history))
		copy(sorted, history)
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].Date.Before(sorted[b].Date.Time)
		})
		investments[i].PerformanceHistory = sorted
	}
	return investments
}
