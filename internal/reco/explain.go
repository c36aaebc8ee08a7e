package reco

import (
	"fmt"
	"strings"
)

const maxReasons = 3

// Explain returns up to three reasons in fixed priority: taste, time, price, missing.
func Explain(user UserProfile, c Candidate, _ Subscores, missing []MissingIngredient) []Reason {
	flavors := strings.Join(c.Cuisines, ", ")
	if flavors == "" {
		flavors = "flavors"
	}
	reasons := []Reason{{Key: "taste", Label: flavors + " you like"}}

	if user.MinutesMax != nil {
		reasons = append(reasons, Reason{Key: "time", Label: fmt.Sprintf("%d min", c.MinutesTotal)})
	}
	if user.PriceSensitivity >= 0.5 {
		reasons = append(reasons, Reason{Key: "price", Label: fmt.Sprintf("%s est.", dollars(c.EstimatedCostCents))})
	}
	if len(missing) > 0 {
		m := missing[0]
		reasons = append(reasons, Reason{Key: "missing", Label: fmt.Sprintf("missing %s (+%s)", m.Name, dollars(m.EstimatedCostCents))})
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

func dollars(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
