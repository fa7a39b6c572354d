package core

// MonthOverview compares a month's budget with what was spent in it.
type MonthOverview struct {
	Month     Month
	Budget    Money
	HasBudget bool
	Spent     Money
}

// Remaining is budget minus spend; negative means the budget was exceeded.
func (o MonthOverview) Remaining() Money {
	return o.Budget.Sub(o.Spent)
}

func (o MonthOverview) Exceeded() bool {
	return o.HasBudget && o.Remaining().IsNegative()
}
