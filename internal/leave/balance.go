package leave

import "time"

// Policy carries the leave entitlement figures. The annual allowance is
// configuration, not a property of the employee.
type Policy struct {
	AnnualAllowance int
}

// Balance is the yearly paid-leave account of one employee.
type Balance struct {
	Allowance int `json:"allowance"`
	Taken     int `json:"taken"`
	Pending   int `json:"pending"`
	Balance   int `json:"balance"`
}

// Available is what a new paid request may still draw on: the remaining
// balance minus days already committed to undecided requests.
func (b Balance) Available() int {
	return b.Balance - b.Pending
}

// BalanceCalculator sums paid-leave days per calendar year. A request is
// attributed entirely to the year of its start date, so a leave spanning New
// Year's Eve counts against the start year only.
type BalanceCalculator struct {
	policy Policy
}

func NewBalanceCalculator(policy Policy) *BalanceCalculator {
	return &BalanceCalculator{policy: policy}
}

// Compute derives the balance from the employee's allowance-counting
// requests of one year. Non-paid types must already be excluded by the
// caller; approved days are taken, pending and manager_approved days are
// pending, rejected days count nowhere.
func (c *BalanceCalculator) Compute(records []Leave, year int) Balance {
	b := Balance{Allowance: c.policy.AnnualAllowance}
	for i := range records {
		r := &records[i]
		if !r.Type.CountsAgainstAllowance() || r.StartDate.Year() != year {
			continue
		}
		switch r.Status {
		case StatusApproved:
			b.Taken += r.DaysCount()
		case StatusPending, StatusManagerApproved:
			b.Pending += r.DaysCount()
		}
	}
	b.Balance = b.Allowance - b.Taken
	return b
}

// CurrentYear is a convenience for callers working in wall-clock time.
func CurrentYear(now time.Time) int {
	return now.Year()
}
