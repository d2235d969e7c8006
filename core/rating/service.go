package rating

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Breakdown lists the factors a premium was computed from.
// BaseRate and StateMultiplier are the same state rate under two names.
type Breakdown struct {
	BaseRate           decimal.Decimal
	StateMultiplier    decimal.Decimal
	BusinessMultiplier decimal.Decimal
	Revenue            decimal.Decimal
}

// Resolution records how the request's codes were matched against the table.
type Resolution struct {
	StateKey         string
	BusinessKey      string
	StateFallback    bool
	BusinessFallback bool
}

// Result is the outcome of a successful rating.
type Result struct {
	Premium    decimal.Decimal
	Breakdown  Breakdown
	Resolution Resolution
}

// Service rates requests against a fixed table. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	table  *Table
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for diagnostic output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a service over table. A nil table means DefaultTable.
func NewService(table *Table, opts ...Option) *Service {
	if table == nil {
		table = DefaultTable()
	}
	s := &Service{
		table:  table,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the table the service rates against.
func (s *Service) Table() *Table {
	return s.table
}

// Rate validates req and computes its premium:
// round2(revenue / 1000 * stateRate * businessMultiplier).
func (s *Service) Rate(req Request) (*Result, error) {
	s.logger.Debug("Rating request received",
		zap.Any("revenue", req.Revenue),
		zap.String("state", req.State),
		zap.String("business", req.Business))

	if err := req.Validate(); err != nil {
		return nil, err
	}

	value, _ := req.Revenue.Value()
	revenue := decimal.NewFromFloat(value)

	stateRate, stateKey, stateFallback := s.table.StateRate(req.State)
	multiplier, businessKey, businessFallback := s.table.BusinessMultiplier(req.Business)

	premium := premiumOf(value, stateRate, multiplier)

	s.logger.Info("Premium calculated",
		zap.String("premium", premium.StringFixed(2)),
		zap.String("state", stateKey),
		zap.String("business", businessKey))

	return &Result{
		Premium: premium,
		Breakdown: Breakdown{
			BaseRate:           stateRate,
			StateMultiplier:    stateRate,
			BusinessMultiplier: multiplier,
			Revenue:            revenue,
		},
		Resolution: Resolution{
			StateKey:         stateKey,
			BusinessKey:      businessKey,
			StateFallback:    stateFallback,
			BusinessFallback: businessFallback,
		},
	}, nil
}
