package reco

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DiversityReport describes cuisine repetition across accepted picks.
// It is a diagnostic only: selection order never depends on it.
type DiversityReport struct {
	// CuisineTally counts accepted picks per lowercase cuisine.
	CuisineTally map[string]int
	// Repeats holds, for each accepted pick, how many earlier picks shared one of its cuisines.
	Repeats []int
}

// planAccumulator is the state threaded through the greedy walk.
type planAccumulator struct {
	picked  []RankItem
	total   int
	tally   map[string]int
	repeats []int
}

func newPlanAccumulator(days int) planAccumulator {
	return planAccumulator{
		picked: make([]RankItem, 0, days),
		tally:  map[string]int{},
	}
}

// repetition counts how often the given cuisines were already picked.
func (a planAccumulator) repetition(cuisines []string) int {
	n := 0
	for _, c := range cuisines {
		n += a.tally[c]
	}
	return n
}

// overBudget is the soft budget gate: a pick that would push the total past
// the weekly budget is skipped while the plan still has open days.
func (a planAccumulator) overBudget(cost, budgetWeekCents, days int) bool {
	return a.total+cost > budgetWeekCents && len(a.picked) < days
}

func (a planAccumulator) accept(item RankItem, cuisines []string, repeats int) planAccumulator {
	a.picked = append(a.picked, item)
	a.total += item.EstimatedCostCents
	a.repeats = append(a.repeats, repeats)
	for _, c := range cuisines {
		a.tally[c]++
	}
	return a
}

// Plan greedily assigns one ranked candidate per day under a weekly budget.
// The result always has exactly max(1,days) entries; unfilled days have a nil dinner.
func Plan(user UserProfile, pantry Pantry, startDate string, days, budgetWeekCents int, candidates []Candidate, taste Embedding) PlanOut {
	days = max(1, days)
	acc := newPlanAccumulator(days)

	budgetDayCents := budgetWeekCents / days
	ranked := Rank(user, pantry, &budgetDayCents, candidates, len(candidates), taste)
	cuisinesByID := indexCuisines(candidates)

	for _, item := range ranked.Items {
		cuisines := cuisinesByID[item.RecipeID]
		repeats := acc.repetition(cuisines)
		if acc.overBudget(item.EstimatedCostCents, budgetWeekCents, days) {
			continue
		}
		acc = acc.accept(item, cuisines, repeats)
		if len(acc.picked) >= days {
			break
		}
	}

	out := buildPlanOut(startDate, days, acc)
	out.Excluded = ranked.Excluded
	return out
}

// Run assembles the plan for the request, using def when days is unset.
func (r PlanRequest) Run(def int) PlanOut {
	days := r.DayCount(def)
	if !r.dinnerEnabled() {
		return buildPlanOut(r.StartDate, max(1, days), newPlanAccumulator(0))
	}
	return Plan(r.User, NewPantry(r.Pantry), r.StartDate, days, r.BudgetWeekCents, r.Candidates, r.TasteEmbedding)
}

func buildPlanOut(startDate string, days int, acc planAccumulator) PlanOut {
	start, err := time.Parse(dateLayout, startDate)
	hasDate := err == nil

	out := PlanOut{
		StartDate:           startDate,
		Days:                make([]PlanDay, days),
		EstimatedTotalCents: acc.total,
		Diversity: DiversityReport{
			CuisineTally: acc.tally,
			Repeats:      acc.repeats,
		},
	}
	for i := range out.Days {
		day := PlanDay{Index: i}
		if hasDate {
			day.Date = start.AddDate(0, 0, i).Format(dateLayout)
		}
		if i < len(acc.picked) {
			item := acc.picked[i]
			day.Dinner = &item
		}
		out.Days[i] = day
	}
	return out
}

// indexCuisines maps candidate id to its lowercase cuisines. The first candidate wins on duplicate ids.
func indexCuisines(candidates []Candidate) map[string][]string {
	idx := make(map[string][]string, len(candidates))
	for _, c := range candidates {
		if _, seen := idx[c.ID]; seen {
			continue
		}
		cuisines := make([]string, len(c.Cuisines))
		for i, cu := range c.Cuisines {
			cuisines[i] = strings.ToLower(cu)
		}
		idx[c.ID] = cuisines
	}
	return idx
}
