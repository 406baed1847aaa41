package loan

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.LoanStore {
	return &loanStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Loan{})
		if err := tx.AutoMigrate(core.Loan{}).Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.LoanEvent{})
		if err := tx.AutoMigrate(core.LoanEvent{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Create(ctx context.Context, loan *core.Loan, event *core.LoanEvent) error {
	return s.db.Tx(func(tx *db.DB) error {
		if err := tx.Update().Create(loan).Error; err != nil {
			return err
		}

		event.LoanID = loan.ID
		return tx.Update().Create(event).Error
	})
}

func toUpdateParams(loan *core.Loan) map[string]interface{} {
	return map[string]interface{}{
		"lender":          loan.Lender,
		"liquidator":      loan.Liquidator,
		"status":          loan.Status,
		"origination_fee": loan.OriginationFee,
		"settlement_fee":  loan.SettlementFee,
		"repaid_amount":   loan.RepaidAmount,
		"funded_at":       loan.FundedAt,
		"closed_at":       loan.ClosedAt,
		"updated_at":      loan.UpdatedAt,
	}
}

func (s *loanStore) Transition(ctx context.Context, loan *core.Loan, events ...*core.LoanEvent) error {
	version := loan.Version
	err := s.db.Tx(func(tx *db.DB) error {
		updates := toUpdateParams(loan)
		updates["version"] = version + 1

		update := tx.Update().Model(core.Loan{}).Where("id = ? AND version = ?", loan.ID, version).Updates(updates)
		if update.Error != nil {
			return update.Error
		}

		if update.RowsAffected == 0 {
			return db.ErrOptimisticLock
		}

		for _, event := range events {
			event.LoanID = loan.ID
			if err := tx.Update().Create(event).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	loan.Version = version + 1
	return nil
}

func (s *loanStore) Find(ctx context.Context, id uint64) (*core.Loan, error) {
	var loan core.Loan
	if err := s.db.View().Where("id = ?", id).First(&loan).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrLoanNotFound
		}

		return nil, err
	}

	return &loan, nil
}

func (s *loanStore) List(ctx context.Context) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Order("id").Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) ListByBorrower(ctx context.Context, borrower string) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("borrower = ?", borrower).Order("id").Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) ListByStatus(ctx context.Context, status core.LoanStatus) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("status = ?", status).Order("id").Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) Events(ctx context.Context, loanID uint64) ([]*core.LoanEvent, error) {
	var events []*core.LoanEvent
	if err := s.db.View().Where("loan_id = ?", loanID).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
