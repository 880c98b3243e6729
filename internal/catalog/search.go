package catalog

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pagination bounds for search queries.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Pagination holds page selection for a search. Zero values are
// normalised to the first page with the default size.
type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Normalise clamps pagination to valid bounds: page number at least 1,
// page size between 1 and 100 (default 10).
func (p Pagination) Normalise() Pagination {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// partialMatch builds a case-insensitive substring match.
func partialMatch(value string) bson.M {
	return bson.M{"$regex": primitive.Regex{Pattern: value, Options: "i"}}
}

// rangeMatch builds a $gte/$lte range from optional bounds.
// Returns nil when neither bound is set.
func rangeMatch(minimum, maximum *float64) bson.M {
	r := bson.M{}
	if minimum != nil {
		r["$gte"] = *minimum
	}
	if maximum != nil {
		r["$lte"] = *maximum
	}
	if len(r) == 0 {
		return nil
	}
	return r
}

// SpiritsSearch holds the optional filters for a spirits search.
// Only fields the caller sets contribute to the query.
type SpiritsSearch struct {
	Name           string
	Aroma          []string
	Taste          []string
	Finish         []string
	Kind           string
	SubKind        string
	MinAlcohol     *float64
	MaxAlcohol     *float64
	OriginNation   string
	OriginLocation string
	Pagination
}

// Filter converts the search parameters to a MongoDB query.
func (s SpiritsSearch) Filter() bson.M {
	query := bson.M{}

	if s.Name != "" {
		query["name"] = partialMatch(s.Name)
	}
	if len(s.Aroma) > 0 {
		query["aroma"] = bson.M{"$all": s.Aroma}
	}
	if len(s.Taste) > 0 {
		query["taste"] = bson.M{"$all": s.Taste}
	}
	if len(s.Finish) > 0 {
		query["finish"] = bson.M{"$all": s.Finish}
	}
	if s.Kind != "" {
		query["kind"] = s.Kind
	}
	if s.SubKind != "" {
		query["sub_kind"] = s.SubKind
	}
	if alcohol := rangeMatch(s.MinAlcohol, s.MaxAlcohol); alcohol != nil {
		query["alcohol"] = alcohol
	}
	if s.OriginNation != "" {
		query["origin_nation"] = s.OriginNation
	}
	if s.OriginLocation != "" {
		query["origin_location"] = partialMatch(s.OriginLocation)
	}

	return query
}

// LiqueurSearch holds the optional filters for a liqueur search.
type LiqueurSearch struct {
	Name            string
	Brand           string
	Taste           []string
	Kind            string
	SubKind         string
	MainIngredients []string
	MinVolume       *float64
	MaxVolume       *float64
	MinABV          *float64
	MaxABV          *float64
	OriginNation    string
	OriginLocation  string
	Description     string
	Pagination
}

// Filter converts the search parameters to a MongoDB query.
func (s LiqueurSearch) Filter() bson.M {
	query := bson.M{}

	if s.Name != "" {
		query["name"] = partialMatch(s.Name)
	}
	if s.Brand != "" {
		query["brand"] = s.Brand
	}
	if len(s.Taste) > 0 {
		query["taste"] = bson.M{"$all": s.Taste}
	}
	if s.Kind != "" {
		query["kind"] = s.Kind
	}
	if s.SubKind != "" {
		query["sub_kind"] = s.SubKind
	}
	if len(s.MainIngredients) > 0 {
		query["main_ingredients"] = bson.M{"$all": s.MainIngredients}
	}
	if volume := rangeMatch(s.MinVolume, s.MaxVolume); volume != nil {
		query["volume"] = volume
	}
	if abv := rangeMatch(s.MinABV, s.MaxABV); abv != nil {
		query["abv"] = abv
	}
	if s.OriginNation != "" {
		query["origin_nation"] = s.OriginNation
	}
	if s.OriginLocation != "" {
		query["origin_location"] = partialMatch(s.OriginLocation)
	}
	if s.Description != "" {
		query["description"] = partialMatch(s.Description)
	}

	return query
}

// IngredientSearch holds the optional filters for an ingredient search.
type IngredientSearch struct {
	Name        string
	Brand       []string
	Kind        string
	Description string
	Pagination
}

// Filter converts the search parameters to a MongoDB query.
func (s IngredientSearch) Filter() bson.M {
	query := bson.M{}

	if s.Name != "" {
		query["name"] = partialMatch(s.Name)
	}
	if len(s.Brand) > 0 {
		query["brand"] = bson.M{"$all": s.Brand}
	}
	if s.Kind != "" {
		query["kind"] = s.Kind
	}
	if s.Description != "" {
		query["description"] = partialMatch(s.Description)
	}

	return query
}

// CocktailSearch holds the optional filters for a cocktail search.
type CocktailSearch struct {
	Name         string
	Aroma        []string
	Taste        []string
	Finish       []string
	Glass        string
	OriginNation string
	Description  string
	Pagination
}

// Filter converts the search parameters to a MongoDB query.
func (s CocktailSearch) Filter() bson.M {
	query := bson.M{}

	if s.Name != "" {
		query["name"] = partialMatch(s.Name)
	}
	if len(s.Aroma) > 0 {
		query["aroma"] = bson.M{"$all": s.Aroma}
	}
	if len(s.Taste) > 0 {
		query["taste"] = bson.M{"$all": s.Taste}
	}
	if len(s.Finish) > 0 {
		query["finish"] = bson.M{"$all": s.Finish}
	}
	if s.Glass != "" {
		query["glass"] = s.Glass
	}
	if s.OriginNation != "" {
		query["origin_nation"] = s.OriginNation
	}
	if s.Description != "" {
		query["description"] = partialMatch(s.Description)
	}

	return query
}
