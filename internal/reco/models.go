package reco

import "strings"

// Difficulty is the self-declared cooking skill of a user.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// UserProfile holds the preferences a request is ranked against.
type UserProfile struct {
	// PriceSensitivity is clamped to [0,1] when weights are built.
	PriceSensitivity    float64    `json:"priceSensitivity"`
	Diet                []string   `json:"diet"`
	DislikedIngredients []string   `json:"dislikedIngredients"`
	LikedCuisines       []string   `json:"likedCuisines"`
	MinutesMax          *int       `json:"minutesMax,omitempty" validate:"omitempty,gt=0"`
	HouseholdSize       int        `json:"householdSize" validate:"gte=0"`
	Difficulty          Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	MaxSteps            *int       `json:"maxSteps,omitempty" validate:"omitempty,gte=0"`
}

// IngredientLine is a single ingredient of a candidate recipe.
type IngredientLine struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name" validate:"required"`
	Qty        *float64 `json:"qty,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	PriceCents *int     `json:"priceCents,omitempty" validate:"omitempty,gte=0"`
}

// price returns the line price, 0 when unknown.
func (l IngredientLine) price() int {
	if l.PriceCents == nil {
		return 0
	}
	return *l.PriceCents
}

// Embedding is an optional dense vector. A nil Embedding means "not produced upstream".
type Embedding []float32

// Candidate is a fully materialised recipe under evaluation.
type Candidate struct {
	ID                 string           `json:"id" validate:"required"`
	Title              string           `json:"title" validate:"required"`
	MinutesTotal       int              `json:"minutesTotal" validate:"gt=0"`
	Servings           int              `json:"servings" validate:"gte=0"`
	EstimatedCostCents int              `json:"estimatedCostCents" validate:"gte=0"`
	Cuisines           []string         `json:"cuisines"`
	Tags               []string         `json:"tags"`
	Ingredients        []IngredientLine `json:"ingredients" validate:"dive"`
	Embedding          Embedding        `json:"embedding,omitempty"`
}

// Reason is one short justification shown next to a ranked recipe.
type Reason struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MissingIngredient is a priced ingredient the user does not have.
type MissingIngredient struct {
	IngredientID       string `json:"ingredientId"`
	Name               string `json:"name"`
	EstimatedCostCents int    `json:"estimatedCostCents,string"`
}

// RankItem is the scored view of a candidate.
type RankItem struct {
	RecipeID           string              `json:"recipeId"`
	Title              string              `json:"title"`
	Score01            float64             `json:"score01"`
	Score10            float64             `json:"score10"`
	EstimatedCostCents int                 `json:"estimatedCostCents"`
	MinutesTotal       int                 `json:"minutesTotal"`
	Reasons            []Reason            `json:"reasons"`
	Missing            []MissingIngredient `json:"missing"`
}

// PlanDay is a single day of a plan. Only the dinner slot is filled today.
type PlanDay struct {
	Index  int       `json:"index"`
	Date   string    `json:"date,omitempty"`
	Dinner *RankItem `json:"dinner"`
}

// PlanOut is a multi-day plan.
type PlanOut struct {
	StartDate           string    `json:"startDate"`
	Days                []PlanDay `json:"days"`
	EstimatedTotalCents int       `json:"estimatedTotalCents"`

	// Diversity is computed while assembling but does not influence selection.
	Diversity DiversityReport `json:"-"`
	// Excluded counts candidates dropped by the diet filter.
	Excluded int `json:"-"`
}

// Pantry is a lowercase set of ingredient ids and names the user has on hand.
type Pantry map[string]struct{}

// NewPantry builds a Pantry from ids or names, matching case-insensitively.
func NewPantry(items []string) Pantry {
	p := make(Pantry, len(items))
	for _, it := range items {
		p[strings.ToLower(it)] = struct{}{}
	}
	return p
}

// Has reports whether the lowercase form of key is in the pantry.
func (p Pantry) Has(key string) bool {
	if key == "" {
		return false
	}
	_, ok := p[strings.ToLower(key)]
	return ok
}

// RankRequest is the input of Rank.
type RankRequest struct {
	User           UserProfile `json:"user"`
	Pantry         []string    `json:"pantry"`
	BudgetDayCents *int        `json:"budgetDayCents,omitempty" validate:"omitempty,gte=0"`
	K              *int        `json:"k,omitempty"`
	Candidates     []Candidate `json:"candidates" validate:"required,dive"`

	// TasteEmbedding is the optional user taste vector compared against candidate embeddings.
	TasteEmbedding Embedding `json:"tasteEmbedding,omitempty"`
	// TasteProfile is free text the boundary may embed when TasteEmbedding is absent.
	TasteProfile string `json:"tasteProfile,omitempty"`
}

// PlanRequest is the input of Plan.
type PlanRequest struct {
	User            UserProfile     `json:"user"`
	Pantry          []string        `json:"pantry"`
	StartDate       string          `json:"startDate" validate:"required"`
	Days            *int            `json:"days,omitempty"`
	Slots           map[string]bool `json:"slots,omitempty"`
	BudgetWeekCents int             `json:"budgetWeekCents" validate:"gte=0"`
	Candidates      []Candidate     `json:"candidates" validate:"required,dive"`

	TasteEmbedding Embedding `json:"tasteEmbedding,omitempty"`
	TasteProfile   string    `json:"tasteProfile,omitempty"`
}

// Defaults applied when a request leaves k or days unset.
const (
	DefaultK    = 40
	DefaultDays = 7
)

// Limit returns the requested k, or def when unset.
func (r RankRequest) Limit(def int) int {
	if r.K == nil {
		return def
	}
	return *r.K
}

// DayCount returns the requested number of days, or def when unset.
func (r PlanRequest) DayCount(def int) int {
	if r.Days == nil {
		return def
	}
	return *r.Days
}

// SlotDinner is the only slot the assembler fills.
const SlotDinner = "dinner"

// dinnerEnabled reports whether the dinner slot is requested. Missing slots default to dinner only.
func (r PlanRequest) dinnerEnabled() bool {
	if len(r.Slots) == 0 {
		return true
	}
	on, ok := r.Slots[SlotDinner]
	return !ok || on
}
