package reco

import (
	"math"
	"strings"
)

// neutralFit is used for price and time fit when the user gave no target.
const neutralFit = 0.6

const (
	dislikePenalty    = 0.3
	difficultyPenalty = 0.2
)

// Subscores are the four bounded fitness components of a candidate.
type Subscores struct {
	Taste  float64
	Price  float64
	Time   float64
	Pantry float64
}

// Weights are the per-user weights of the four subscores. They sum to 1.
type Weights struct {
	Taste  float64
	Price  float64
	Time   float64
	Pantry float64
}

// BuildWeights derives normalized weights from the user profile.
func BuildWeights(user UserProfile) Weights {
	sens := clamp01(user.PriceSensitivity)
	w := Weights{
		Taste:  0.6,
		Price:  0.2 + 0.6*sens,
		Pantry: 0.2 + 0.3*sens,
		Time:   0.15,
	}
	if user.MinutesMax != nil && *user.MinutesMax <= 30 {
		w.Time = 0.3
	}

	sum := w.Taste + w.Price + w.Time + w.Pantry
	return Weights{
		Taste:  w.Taste / sum,
		Price:  w.Price / sum,
		Time:   w.Time / sum,
		Pantry: w.Pantry / sum,
	}
}

// TasteScore blends liked-cuisine overlap with embedding similarity.
func TasteScore(user UserProfile, c Candidate, taste Embedding) float64 {
	liked := lowerSet(user.LikedCuisines)
	overlap := 0
	for cuisine := range lowerSet(c.Cuisines) {
		if _, ok := liked[cuisine]; ok {
			overlap++
		}
	}
	cuisineTerm := float64(overlap) / float64(max(1, len(liked)))

	return clamp01(0.6*cuisineTerm + 0.4*Cosine(taste, c.Embedding))
}

// PriceFit is 1 within target and decays linearly to 0 at twice the target.
func PriceFit(costCents int, targetCents *int) float64 {
	return linearFit(costCents, targetCents)
}

// TimeFit has the same shape as PriceFit over minutes.
func TimeFit(minutes int, minutesMax *int) float64 {
	return linearFit(minutes, minutesMax)
}

func linearFit(value int, target *int) float64 {
	if target == nil || *target == 0 {
		return neutralFit
	}
	t := *target
	if value <= t {
		return 1
	}
	return clamp01(1 - float64(value-t)/float64(max(t, 1)))
}

// PantryScore is the share of the candidate cost already covered by the pantry.
// Priced lines that are not covered are returned as missing, in ingredient order.
func PantryScore(pantry Pantry, c Candidate) (float64, []MissingIngredient) {
	covered := 0
	missing := []MissingIngredient{}
	for _, ing := range c.Ingredients {
		price := ing.price()
		if price == 0 {
			continue
		}
		if pantry.Has(ing.ID) || pantry.Has(ing.Name) {
			covered += price
			continue
		}
		missing = append(missing, MissingIngredient{
			IngredientID:       ing.ID,
			Name:               ing.Name,
			EstimatedCostCents: price,
		})
	}
	return clamp01(float64(covered) / float64(max(1, c.EstimatedCostCents))), missing
}

// Penalty sums the dislike and difficulty penalties for a candidate.
func Penalty(user UserProfile, c Candidate) float64 {
	penalty := 0.0
	disliked := lowerSet(user.DislikedIngredients)
	for _, ing := range c.Ingredients {
		if ing.Name == "" {
			continue
		}
		if _, ok := disliked[strings.ToLower(ing.Name)]; ok {
			penalty += dislikePenalty
			break
		}
	}
	return penalty + DifficultyPenalty(user, c)
}

// DifficultyPenalty penalizes advanced recipes for beginners.
func DifficultyPenalty(user UserProfile, c Candidate) float64 {
	if user.Difficulty != DifficultyBeginner {
		return 0
	}
	for _, tag := range c.Tags {
		if tag == "advanced" {
			return difficultyPenalty
		}
	}
	return stepCountPenalty(user, c)
}

// stepCountPenalty is where a maxSteps check belongs once candidates carry a
// step count. Until then it contributes nothing.
func stepCountPenalty(UserProfile, Candidate) float64 {
	return 0
}

// Score evaluates one candidate. The second result is false when the candidate
// is excluded by the diet filter.
func Score(user UserProfile, pantry Pantry, budgetDayCents *int, c Candidate, taste Embedding) (RankItem, bool) {
	if Violates(user, c) {
		return RankItem{}, false
	}

	w := BuildWeights(user)
	pantryScore, missing := PantryScore(pantry, c)
	sub := Subscores{
		Taste:  TasteScore(user, c, taste),
		Price:  PriceFit(c.EstimatedCostCents, budgetDayCents),
		Time:   TimeFit(c.MinutesTotal, user.MinutesMax),
		Pantry: pantryScore,
	}

	base := w.Taste*sub.Taste + w.Price*sub.Price + w.Time*sub.Time + w.Pantry*sub.Pantry
	score01 := clamp01(base - Penalty(user, c))

	return RankItem{
		RecipeID:           c.ID,
		Title:              c.Title,
		Score01:            score01,
		Score10:            round1(10 * score01),
		EstimatedCostCents: c.EstimatedCostCents,
		MinutesTotal:       c.MinutesTotal,
		Reasons:            Explain(user, c, sub, missing),
		Missing:            missing,
	}, true
}

// round1 rounds half away from zero, so exact .x5 ties go up rather than to even.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.ToLower(it)] = struct{}{}
	}
	return set
}
