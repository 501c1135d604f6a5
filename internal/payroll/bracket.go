package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContributionBracket is one row of a statutory contribution schedule.
// A nil RangeHigh marks the final, unbounded bracket.
type ContributionBracket struct {
	RangeLow      decimal.Decimal  `json:"range_low"`
	RangeHigh     *decimal.Decimal `json:"range_high"`
	EmployeeShare decimal.Decimal  `json:"employee_share"`
	EmployerShare decimal.Decimal  `json:"employer_share"`
	Total         decimal.Decimal  `json:"total"`
}

// TaxBracket is one row of a progressive withholding schedule: the tax
// due is BaseTax plus Rate applied to the excess over RangeLow.
type TaxBracket struct {
	RangeLow  decimal.Decimal  `json:"range_low"`
	RangeHigh *decimal.Decimal `json:"range_high"`
	BaseTax   decimal.Decimal  `json:"base_tax"`
	Rate      decimal.Decimal  `json:"rate"`
}

type ContributionTable []ContributionBracket

type TaxTable []TaxBracket

// Resolve returns the bracket covering amount, or nil when the amount is
// negative or the table is empty. Both bracket ends are inclusive; the
// table's contiguity invariant (checked at load time) guarantees at most
// one match, so the first hit is the only hit.
func (t ContributionTable) Resolve(amount decimal.Decimal) *ContributionBracket {
	for i := range t {
		if matches(amount, t[i].RangeLow, t[i].RangeHigh) {
			return &t[i]
		}
	}
	return nil
}

func (t TaxTable) Resolve(amount decimal.Decimal) *TaxBracket {
	for i := range t {
		if matches(amount, t[i].RangeLow, t[i].RangeHigh) {
			return &t[i]
		}
	}
	return nil
}

func matches(amount, low decimal.Decimal, high *decimal.Decimal) bool {
	if amount.LessThan(low) || amount.IsNegative() {
		return false
	}
	if high != nil && amount.GreaterThan(*high) {
		return false
	}
	return true
}

// Validate enforces the authoring invariant: brackets sorted ascending
// by range_low, non-overlapping, with no gap between one bracket's
// range_high and the next bracket's range_low, and only the final
// bracket unbounded. Runs once at settings load, never per lookup.
func (t ContributionTable) Validate() error {
	ranges := make([]bracketRange, len(t))
	for i, b := range t {
		ranges[i] = bracketRange{low: b.RangeLow, high: b.RangeHigh}
		if b.EmployeeShare.IsNegative() || b.EmployerShare.IsNegative() {
			return fmt.Errorf("contribution bracket %d: shares cannot be negative", i)
		}
	}
	return validateRanges(ranges)
}

func (t TaxTable) Validate() error {
	one := decimal.NewFromInt(1)
	ranges := make([]bracketRange, len(t))
	for i, b := range t {
		ranges[i] = bracketRange{low: b.RangeLow, high: b.RangeHigh}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("tax bracket %d: rate must be within [0,1]", i)
		}
		if b.BaseTax.IsNegative() {
			return fmt.Errorf("tax bracket %d: base tax cannot be negative", i)
		}
	}
	return validateRanges(ranges)
}

type bracketRange struct {
	low  decimal.Decimal
	high *decimal.Decimal
}

func validateRanges(ranges []bracketRange) error {
	for i, r := range ranges {
		if r.low.IsNegative() {
			return fmt.Errorf("bracket %d: range_low cannot be negative", i)
		}
		if r.high == nil {
			if i != len(ranges)-1 {
				return fmt.Errorf("bracket %d: only the final bracket may be unbounded", i)
			}
			continue
		}
		if r.high.LessThan(r.low) {
			return fmt.Errorf("bracket %d: range_high below range_low", i)
		}
		if i == len(ranges)-1 {
			continue
		}
		next := ranges[i+1]
		// Boundaries are inclusive on both ends, so the next bracket
		// must start strictly above this one's high with no gap in
		// between (anything in (high, next_low) would resolve to none).
		if !next.low.GreaterThan(*r.high) {
			return fmt.Errorf("bracket %d: overlaps bracket %d", i, i+1)
		}
		if next.low.Sub(*r.high).GreaterThan(decimal.New(1, -2)) {
			return fmt.Errorf("bracket %d: gap before bracket %d", i, i+1)
		}
	}
	return nil
}
