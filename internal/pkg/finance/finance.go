// Package finance holds the settings-derived calculations used across the
// ledger and loan services. All functions are pure.
package finance

import "math"

// ShareValue returns the monetary value of a member's shares at the
// current share price.
func ShareValue(shares int, sharePrice float64) float64 {
	return float64(shares) * sharePrice
}

// AnnualInterest returns the yearly interest earned on savings at the given
// percentage rate, rounded to the nearest unit.
func AnnualInterest(savings, interestRate float64) float64 {
	return math.Round(savings * interestRate / 100)
}

// EstimatedInstallment returns the monthly installment for a loan of the
// given amount over durationMonths at the given percentage interest rate,
// rounded up. A non-positive duration yields 0.
func EstimatedInstallment(amount, loanInterestRate float64, durationMonths int) float64 {
	if durationMonths <= 0 {
		return 0
	}
	total := amount * (1 + loanInterestRate/100)
	return math.Ceil(total / float64(durationMonths))
}

// SharesPurchased returns how many whole shares an amount buys at the given
// share price. A non-positive share price yields 0.
func SharesPurchased(amount, sharePrice float64) int {
	if sharePrice <= 0 {
		return 0
	}
	return int(math.Floor(amount / sharePrice))
}
