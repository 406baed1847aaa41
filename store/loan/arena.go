package loan

import (
	"context"
	"sync"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
)

// arena keeps loans in a slice indexed by id - 1, ids are never reused
type arena struct {
	mux         sync.RWMutex
	loans       []*core.Loan
	byBorrower  map[string][]uint64
	events      map[uint64][]*core.LoanEvent
	lastEventID uint64
}

// Arena in memory loan store
func Arena() core.LoanStore {
	return &arena{
		byBorrower: make(map[string][]uint64),
		events:     make(map[uint64][]*core.LoanEvent),
	}
}

func (s *arena) Create(ctx context.Context, loan *core.Loan, event *core.LoanEvent) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	loan.ID = uint64(len(s.loans)) + 1
	s.loans = append(s.loans, loan.Clone())
	s.byBorrower[loan.Borrower] = append(s.byBorrower[loan.Borrower], loan.ID)

	event.LoanID = loan.ID
	s.appendEvent(event)
	return nil
}

func (s *arena) Transition(ctx context.Context, loan *core.Loan, events ...*core.LoanEvent) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	stored, ok := s.get(loan.ID)
	if !ok {
		return core.ErrLoanNotFound
	}

	if stored.Version != loan.Version {
		return db.ErrOptimisticLock
	}

	loan.Version++
	s.loans[loan.ID-1] = loan.Clone()

	for _, event := range events {
		event.LoanID = loan.ID
		s.appendEvent(event)
	}

	return nil
}

func (s *arena) appendEvent(event *core.LoanEvent) {
	s.lastEventID++
	event.ID = s.lastEventID
	e := *event
	s.events[event.LoanID] = append(s.events[event.LoanID], &e)
}

func (s *arena) get(id uint64) (*core.Loan, bool) {
	if id == 0 || id > uint64(len(s.loans)) {
		return nil, false
	}

	return s.loans[id-1], true
}

func (s *arena) Find(ctx context.Context, id uint64) (*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	loan, ok := s.get(id)
	if !ok {
		return nil, core.ErrLoanNotFound
	}

	return loan.Clone(), nil
}

func (s *arena) List(ctx context.Context) ([]*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	loans := make([]*core.Loan, 0, len(s.loans))
	for _, loan := range s.loans {
		loans = append(loans, loan.Clone())
	}

	return loans, nil
}

func (s *arena) ListByBorrower(ctx context.Context, borrower string) ([]*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	ids := s.byBorrower[borrower]
	loans := make([]*core.Loan, 0, len(ids))
	for _, id := range ids {
		loan, _ := s.get(id)
		loans = append(loans, loan.Clone())
	}

	return loans, nil
}

func (s *arena) ListByStatus(ctx context.Context, status core.LoanStatus) ([]*core.Loan, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	var loans []*core.Loan
	for _, loan := range s.loans {
		if loan.Status == status {
			loans = append(loans, loan.Clone())
		}
	}

	return loans, nil
}

func (s *arena) Events(ctx context.Context, loanID uint64) ([]*core.LoanEvent, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	events := make([]*core.LoanEvent, 0, len(s.events[loanID]))
	for _, event := range s.events[loanID] {
		e := *event
		events = append(events, &e)
	}

	return events, nil
}
