package model

// Range is a [worst, best] pair. The two ends are kept in scenario order,
// so a Range is not guaranteed to be ascending.
type Range [2]float64

// Worst returns the minimum-hours end of the range.
func (r Range) Worst() float64 { return r[0] }

// Best returns the maximum-hours end of the range.
func (r Range) Best() float64 { return r[1] }

// Add returns the element-wise sum of r and o.
func (r Range) Add(o Range) Range {
	return Range{r[0] + o[0], r[1] + o[1]}
}

// Sub returns the element-wise difference r - o.
func (r Range) Sub(o Range) Range {
	return Range{r[0] - o[0], r[1] - o[1]}
}

// Scale multiplies both ends by f.
func (r Range) Scale(f float64) Range {
	return Range{r[0] * f, r[1] * f}
}

// CaseFigures holds the yearly headline numbers for one scenario end.
type CaseFigures struct {
	YearlyOperatingProfit float64 `json:"yearlyOperatingProfit"`
	YearlyOperatingMargin float64 `json:"yearlyOperatingMargin"`
	YearlyGrossRevenue    float64 `json:"yearlyGrossRevenue"`
}

// Summary is the aggregate projection for a view.
type Summary struct {
	WorstCase           CaseFigures `json:"worstCase"`
	BestCase            CaseFigures `json:"bestCase"`
	YearlyRevenueRange  Range       `json:"yearlyRevenueRange"`
	YearlyOpProfitRange Range       `json:"yearlyOpProfitRange"`
	YearlyOpMarginRange Range       `json:"yearlyOpMarginRange"`
}

// RoleBreakdown is the yearly contribution of one role summed across clients.
type RoleBreakdown struct {
	Role         string `json:"role"`
	GrossRevenue Range  `json:"grossRevenue"`
	BurdenedCost Range  `json:"burdenedCost"`
	GrossProfit  Range  `json:"grossProfit"`
	GrossMargin  Range  `json:"grossMargin"`
}

// Breakdown is the per-role projection for a view plus its totals.
type Breakdown struct {
	Roles                    []RoleBreakdown `json:"roles"`
	TotalGrossRevenue        Range           `json:"totalGrossRevenue"`
	TotalBurdenedCost        Range           `json:"totalBurdenedCost"`
	TotalGrossProfit         Range           `json:"totalGrossProfit"`
	TotalGrossMargin         Range           `json:"totalGrossMargin"`
	EstimatedOverhead        Range           `json:"estimatedOverhead"`
	EstimatedOperatingProfit Range           `json:"estimatedOperatingProfit"`
	EstimatedOperatingMargin Range           `json:"estimatedOperatingMargin"`
}

// Issue is an advisory finding about a projection input.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Projection bundles both engine outputs for one view.
type Projection struct {
	View      string    `json:"view"`
	Summary   Summary   `json:"summary"`
	Breakdown Breakdown `json:"breakdown"`
	Issues    []Issue   `json:"issues,omitempty"`
}
