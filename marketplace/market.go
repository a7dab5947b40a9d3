package marketplace

// MarketType - The kind of market being created.
type MarketType int

const (
	// Normal - A market whose price is adjusted by the solver until supply
	// meets demand.
	Normal MarketType = iota
	// Calibration - A market whose price vector is fixed by input data and
	// never solved.
	Calibration
)

// String - Returns the market type name.
func (T MarketType) String() string {
	switch T {
	case Normal:
		return "normal"
	case Calibration:
		return "calibration"
	default:
		return "unknown"
	}
}

// Market - One good traded in one market region over all model periods.
// The marketplace owns all markets; model components address them through
// the Marketplace API only.
type Market struct {
	good       string
	marketName string
	marketType MarketType
	prices     []float64
	supplies   []float64
	demands    []float64
	toSolve    []bool
	infos      []*Info
}

// newMarket - Returns a new market with all period vectors allocated.
func newMarket(good, marketName string, marketType MarketType, maxPeriods int) *Market {
	return &Market{
		good:       good,
		marketName: marketName,
		marketType: marketType,
		prices:     make([]float64, maxPeriods),
		supplies:   make([]float64, maxPeriods),
		demands:    make([]float64, maxPeriods),
		toSolve:    make([]bool, maxPeriods),
		infos:      make([]*Info, maxPeriods),
	}
}

// Good - Returns the name of the traded good.
func (M *Market) Good() string {
	return M.good
}

// MarketName - Returns the name of the market region the good trades in.
func (M *Market) MarketName() string {
	return M.marketName
}

// Type - Returns the market type.
func (M *Market) Type() MarketType {
	return M.marketType
}

// info - Returns the Info for a period, creating it on first use.
func (M *Market) info(period int) *Info {
	if M.infos[period] == nil {
		M.infos[period] = NewInfo()
	}
	return M.infos[period]
}
