package strategy

// Status tells whether an entry still sits below the liquidation price
type Status int

const (
	StatusSafe Status = iota
	StatusUnsafe
)

func (s Status) String() string {
	if s == StatusSafe {
		return "SAFE"
	}
	return "UNSAFE"
}

// Step is one user-editable row of the averaging ladder
type Step struct {
	Index       int     `json:"index"`        // 1-based, reassigned on every structural edit
	EntryPrice  float64 `json:"entry_price"`  // Price at which VolumeAdded is filled
	VolumeAdded float64 `json:"volume_added"` // Asset quantity added at this step
	Leverage    float64 `json:"leverage"`     // Multiplier applied to this step only
}

// DerivedStep is a Step plus every figure computed from the steps up to it
type DerivedStep struct {
	Step

	AddedNotional      float64 `json:"added_notional"`
	AddedMargin        float64 `json:"added_margin"`
	CumulativeMargin   float64 `json:"cumulative_margin"`
	CumulativeVolume   float64 `json:"cumulative_volume"`
	CumulativeNotional float64 `json:"cumulative_notional"`
	AverageEntryPrice  float64 `json:"average_entry_price"`
	EffectiveLeverage  float64 `json:"effective_leverage"` // 0 while no margin is deployed
	LiquidationPrice   float64 `json:"liquidation_price"`  // +Inf while no margin is deployed
	Status             Status  `json:"status"`

	// Only populated when Extended is true
	Extended           bool    `json:"extended"`
	SafetyMarginPct    float64 `json:"safety_margin_pct,omitempty"`
	TotalProtectionPct float64 `json:"total_protection_pct,omitempty"`
}
