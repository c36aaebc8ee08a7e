package reco

import "testing"

func TestExplain(t *testing.T) {
	c := Candidate{MinutesTotal: 25, EstimatedCostCents: 1250, Cuisines: []string{"Mexican", "Tex-Mex"}}
	missing := []MissingIngredient{{Name: "avocado", EstimatedCostCents: 199}, {Name: "lime", EstimatedCostCents: 40}}

	t.Run("TasteOnly", func(t *testing.T) {
		got := Explain(UserProfile{}, Candidate{}, Subscores{}, nil)
		if len(got) != 1 {
			t.Fatalf("Expected 1 reason, got %d", len(got))
		}
		if got[0].Key != "taste" || got[0].Label != "flavors you like" {
			t.Errorf("Expected taste/flavors reason, got %+v", got[0])
		}
	})

	t.Run("CappedAtThree", func(t *testing.T) {
		user := UserProfile{MinutesMax: intPtr(30), PriceSensitivity: 0.7}
		got := Explain(user, c, Subscores{}, missing)
		want := []Reason{
			{Key: "taste", Label: "Mexican, Tex-Mex you like"},
			{Key: "time", Label: "25 min"},
			{Key: "price", Label: "$12.50 est."},
		}
		if len(got) != len(want) {
			t.Fatalf("Expected %d reasons, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Reason %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})

	t.Run("MissingFillsFreeSlot", func(t *testing.T) {
		user := UserProfile{PriceSensitivity: 0.2, MinutesMax: intPtr(30)}
		got := Explain(user, c, Subscores{}, missing)
		if len(got) != 3 {
			t.Fatalf("Expected 3 reasons, got %d", len(got))
		}
		if got[2].Key != "missing" || got[2].Label != "missing avocado (+$1.99)" {
			t.Errorf("Expected missing avocado reason, got %+v", got[2])
		}
	})

	t.Run("PriceShownAtHalfSensitivity", func(t *testing.T) {
		got := Explain(UserProfile{PriceSensitivity: 0.5}, c, Subscores{}, nil)
		if len(got) != 2 || got[1].Key != "price" {
			t.Errorf("Expected taste and price reasons, got %+v", got)
		}
	})
}
