package catalog

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }

func TestPagination_Normalise(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{
			name: "zero values get defaults",
			in:   Pagination{},
			want: Pagination{PageNumber: 1, PageSize: 10},
		},
		{
			name: "valid values pass through",
			in:   Pagination{PageNumber: 3, PageSize: 25},
			want: Pagination{PageNumber: 3, PageSize: 25},
		},
		{
			name: "negative page number clamped",
			in:   Pagination{PageNumber: -1, PageSize: 10},
			want: Pagination{PageNumber: 1, PageSize: 10},
		},
		{
			name: "oversized page clamped to max",
			in:   Pagination{PageNumber: 1, PageSize: 500},
			want: Pagination{PageNumber: 1, PageSize: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalise(); got != tt.want {
				t.Errorf("Normalise() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpiritsSearch_Filter(t *testing.T) {
	t.Run("empty search yields empty filter", func(t *testing.T) {
		filter := SpiritsSearch{}.Filter()
		if len(filter) != 0 {
			t.Errorf("expected empty filter, got %v", filter)
		}
	})

	t.Run("name is partial case-insensitive", func(t *testing.T) {
		filter := SpiritsSearch{Name: "glen"}.Filter()

		regex, ok := filter["name"].(bson.M)["$regex"].(primitive.Regex)
		if !ok {
			t.Fatalf("expected regex match, got %v", filter["name"])
		}
		if regex.Pattern != "glen" || regex.Options != "i" {
			t.Errorf("regex = %+v, want pattern glen options i", regex)
		}
	})

	t.Run("tasting lists use $all", func(t *testing.T) {
		filter := SpiritsSearch{Aroma: []string{"peat", "smoke"}}.Filter()

		all, ok := filter["aroma"].(bson.M)
		if !ok {
			t.Fatalf("expected $all match, got %v", filter["aroma"])
		}
		values, ok := all["$all"].([]string)
		if !ok || len(values) != 2 {
			t.Errorf("$all = %v, want [peat smoke]", all["$all"])
		}
	})

	t.Run("kind is exact match", func(t *testing.T) {
		filter := SpiritsSearch{Kind: "whisky", SubKind: "single malt"}.Filter()

		if filter["kind"] != "whisky" {
			t.Errorf("kind = %v, want whisky", filter["kind"])
		}
		if filter["sub_kind"] != "single malt" {
			t.Errorf("sub_kind = %v, want single malt", filter["sub_kind"])
		}
	})

	t.Run("alcohol range", func(t *testing.T) {
		filter := SpiritsSearch{MinAlcohol: floatPtr(40), MaxAlcohol: floatPtr(60)}.Filter()

		alcohol, ok := filter["alcohol"].(bson.M)
		if !ok {
			t.Fatalf("expected range match, got %v", filter["alcohol"])
		}
		if alcohol["$gte"] != 40.0 || alcohol["$lte"] != 60.0 {
			t.Errorf("range = %v, want $gte 40 $lte 60", alcohol)
		}
	})

	t.Run("half-open range", func(t *testing.T) {
		filter := SpiritsSearch{MinAlcohol: floatPtr(40)}.Filter()

		alcohol := filter["alcohol"].(bson.M)
		if alcohol["$gte"] != 40.0 {
			t.Errorf("$gte = %v, want 40", alcohol["$gte"])
		}
		if _, present := alcohol["$lte"]; present {
			t.Error("expected no $lte for unset maximum")
		}
	})
}

func TestLiqueurSearch_Filter(t *testing.T) {
	filter := LiqueurSearch{
		Name:            "orange",
		Brand:           "Cointreau",
		Taste:           []string{"sweet"},
		MainIngredients: []string{"orange peel"},
		MinVolume:       floatPtr(500),
		MaxABV:          floatPtr(45),
		OriginNation:    "France",
		Description:     "triple sec",
	}.Filter()

	if filter["brand"] != "Cointreau" {
		t.Errorf("brand = %v, want exact Cointreau", filter["brand"])
	}
	if _, ok := filter["name"].(bson.M); !ok {
		t.Error("expected partial match for name")
	}
	if _, ok := filter["description"].(bson.M); !ok {
		t.Error("expected partial match for description")
	}
	if _, ok := filter["taste"].(bson.M)["$all"]; !ok {
		t.Error("expected $all for taste")
	}
	if _, ok := filter["main_ingredients"].(bson.M)["$all"]; !ok {
		t.Error("expected $all for main_ingredients")
	}
	if filter["volume"].(bson.M)["$gte"] != 500.0 {
		t.Error("expected $gte 500 for volume")
	}
	if filter["abv"].(bson.M)["$lte"] != 45.0 {
		t.Error("expected $lte 45 for abv")
	}
	if filter["origin_nation"] != "France" {
		t.Errorf("origin_nation = %v, want exact France", filter["origin_nation"])
	}
}

func TestIngredientSearch_Filter(t *testing.T) {
	filter := IngredientSearch{
		Name:  "lime",
		Brand: []string{"Fever-Tree"},
		Kind:  "citrus",
	}.Filter()

	if _, ok := filter["name"].(bson.M); !ok {
		t.Error("expected partial match for name")
	}
	if _, ok := filter["brand"].(bson.M)["$all"]; !ok {
		t.Error("expected $all for brand")
	}
	if filter["kind"] != "citrus" {
		t.Errorf("kind = %v, want exact citrus", filter["kind"])
	}
	if _, present := filter["description"]; present {
		t.Error("unset description must not contribute to filter")
	}
}

func TestCocktailSearch_Filter(t *testing.T) {
	filter := CocktailSearch{
		Name:   "negroni",
		Finish: []string{"bitter"},
		Glass:  "rocks",
	}.Filter()

	if _, ok := filter["name"].(bson.M); !ok {
		t.Error("expected partial match for name")
	}
	if _, ok := filter["finish"].(bson.M)["$all"]; !ok {
		t.Error("expected $all for finish")
	}
	if filter["glass"] != "rocks" {
		t.Errorf("glass = %v, want exact rocks", filter["glass"])
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"spirits", "liqueur", "ingredient", "cocktail"} {
		if _, err := ParseKind(valid); err != nil {
			t.Errorf("ParseKind(%q) error = %v", valid, err)
		}
	}

	if _, err := ParseKind("wine"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestParseMetadataCategory(t *testing.T) {
	for _, valid := range []string{"aroma", "taste", "finish"} {
		if _, err := ParseMetadataCategory(valid); err != nil {
			t.Errorf("ParseMetadataCategory(%q) error = %v", valid, err)
		}
	}

	if _, err := ParseMetadataCategory("colour"); err == nil {
		t.Error("expected error for unknown category")
	}
}
