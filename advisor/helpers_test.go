package advisor

import (
	"fintrack/models"

	"github.com/shopspring/decimal"
)

func expense(category string, amount float64) models.Expense {
	return models.Expense{Category: category, Amount: decimal.NewFromFloat(amount)}
}

func income(amount float64) models.Income {
	return models.Income{Source: "Salary", Amount: decimal.NewFromFloat(amount)}
}

func budget(category string, amount float64) models.Budget {
	return models.Budget{Category: category, Amount: decimal.NewFromFloat(amount), Month: "2024-01"}
}

func titles(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}
