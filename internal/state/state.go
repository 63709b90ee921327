// Package state is the application state of FundSight: the session and
// the fetched portfolio data. State values are changed only by the pure
// reducers in this file; Store applies them under a lock and runs the
// remote calls that feed them.
package state

import (
	"github.com/epeers/fundsight/internal/models"
)

// SessionState is the authenticated-user context.
// Authenticated is true exactly when Token is non-empty.
type SessionState struct {
	Token         string
	User          *models.User
	Authenticated bool
	Loading       bool
	Error         string
}

// FetchState tracks one remote list independently of the other
type FetchState struct {
	Status models.FetchStatus
	Error  string
}

// PortfolioState holds the fetched lists and the viewed investment owner.
// Slices are replaced wholesale on every successful fetch and must be
// treated as read-only by readers.
type PortfolioState struct {
	Investments      []models.Investment
	Funds            []models.Fund
	SelectedUser     string
	InvestmentsFetch FetchState
	FundsFetch       FetchState
}

// State is a snapshot of the whole application state
type State struct {
	Session   SessionState
	Portfolio PortfolioState
}

func initialState() State {
	return State{
		Portfolio: PortfolioState{
			Investments:      []models.Investment{},
			Funds:            []models.Fund{},
			InvestmentsFetch: FetchState{Status: models.StatusIdle},
			FundsFetch:       FetchState{Status: models.StatusIdle},
		},
	}
}

// SelectedInvestment returns the investment owned by SelectedUser, if loaded
func (p PortfolioState) SelectedInvestment() (models.Investment, bool) {
	for _, inv := range p.Investments {
		if inv.UserName == p.SelectedUser {
			return inv, true
		}
	}
	return models.Investment{}, false
}

// ---- session reducers ----

func sessionRestored(s SessionState, token string, user *models.User) SessionState {
	s.Token = token
	s.User = user
	s.Authenticated = token != ""
	return s
}

func loginPending(s SessionState) SessionState {
	s.Loading = true
	s.Error = ""
	return s
}

func loginFulfilled(s SessionState, resp *models.LoginResponse) SessionState {
	s.Loading = false
	s.Token = resp.Token
	s.User = resp.User
	s.Authenticated = resp.Token != ""
	s.Error = ""
	return s
}

func loginRejected(s SessionState, msg string) SessionState {
	s.Loading = false
	s.Error = msg
	return s
}

func loggedOut(SessionState) SessionState {
	return SessionState{}
}

func errorCleared(s SessionState) SessionState {
	s.Error = ""
	return s
}

// ---- portfolio reducers ----

func fetchPending(f FetchState) FetchState {
	f.Status = models.StatusLoading
	return f
}

// fetchFulfilled marks success unless a newer request of the same kind is
// still in flight, in which case the field stays loading.
func fetchFulfilled(f FetchState, latest bool) FetchState {
	if latest {
		f.Status = models.StatusSucceeded
		f.Error = ""
	}
	return f
}

func fetchRejected(f FetchState, msg string, latest bool) FetchState {
	if msg == "" {
		msg = "Unknown error occurred"
	}
	f.Error = msg
	if latest {
		f.Status = models.StatusFailed
	}
	return f
}

func investmentsPending(p PortfolioState) PortfolioState {
	p.InvestmentsFetch = fetchPending(p.InvestmentsFetch)
	return p
}

func investmentsFulfilled(p PortfolioState, investments []models.Investment, latest bool) PortfolioState {
	p.Investments = investments
	p.InvestmentsFetch = fetchFulfilled(p.InvestmentsFetch, latest)
	if len(investments) > 0 && p.SelectedUser == "" {
		p.SelectedUser = investments[0].UserName
	}
	return p
}

func investmentsRejected(p PortfolioState, msg string, latest bool) PortfolioState {
	p.InvestmentsFetch = fetchRejected(p.InvestmentsFetch, msg, latest)
	return p
}

func fundsPending(p PortfolioState) PortfolioState {
	p.FundsFetch = fetchPending(p.FundsFetch)
	return p
}

func fundsFulfilled(p PortfolioState, funds []models.Fund, latest bool) PortfolioState {
	p.Funds = funds
	p.FundsFetch = fetchFulfilled(p.FundsFetch, latest)
	return p
}

func fundsRejected(p PortfolioState, msg string, latest bool) PortfolioState {
	p.FundsFetch = fetchRejected(p.FundsFetch, msg, latest)
	return p
}

// portfolioReset returns the portfolio to its initial idle state, so the
// next page load fetches with the current session.
func portfolioReset(PortfolioState) PortfolioState {
	return initialState().Portfolio
}

func userSelected(p PortfolioState, userName string) PortfolioState {
	p.SelectedUser = userName
	return p
}
