package fee

import (
	"lending/core"
	"lending/pkg/lending"

	"github.com/shopspring/decimal"
)

type feeService struct {
	origination int64
	settlement  int64
}

// New new fee calculator
func New(cfg core.RiskConfig) core.IFeeService {
	return &feeService{
		origination: cfg.LoanRequestFeePercentage,
		settlement:  cfg.SettlementFeePercentage,
	}
}

func (s *feeService) Fee(amount decimal.Decimal, percentage int64) decimal.Decimal {
	return lending.Fee(amount, percentage)
}

// OriginationFee charged on the principal when the loan is funded
func (s *feeService) OriginationFee(amount decimal.Decimal) decimal.Decimal {
	return s.Fee(amount, s.origination)
}

// SettlementFee charged on top of the owed amount at settlement
func (s *feeService) SettlementFee(amount decimal.Decimal) decimal.Decimal {
	return s.Fee(amount, s.settlement)
}
