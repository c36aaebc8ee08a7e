package reco

import (
	"cmp"
	"slices"
)

// Result is a ranking together with how many candidates the diet filter dropped.
type Result struct {
	Items    []RankItem
	Excluded int
}

// Rank filters, scores and sorts candidates, keeping at most max(1,k) items.
// Equal scores keep their input order.
func Rank(user UserProfile, pantry Pantry, budgetDayCents *int, candidates []Candidate, k int, taste Embedding) Result {
	items := make([]RankItem, 0, len(candidates))
	excluded := 0
	for _, c := range candidates {
		item, ok := Score(user, pantry, budgetDayCents, c, taste)
		if !ok {
			excluded++
			continue
		}
		items = append(items, item)
	}

	slices.SortStableFunc(items, func(a, b RankItem) int {
		return cmp.Compare(b.Score01, a.Score01)
	})

	if limit := max(1, k); len(items) > limit {
		items = items[:limit]
	}
	return Result{Items: items, Excluded: excluded}
}

// Run ranks the request, using def when k is unset.
func (r RankRequest) Run(def int) Result {
	return Rank(r.User, NewPantry(r.Pantry), r.BudgetDayCents, r.Candidates, r.Limit(def), r.TasteEmbedding)
}
