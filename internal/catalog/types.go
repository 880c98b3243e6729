package catalog

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind identifies a catalog document family. Each kind maps to its own
// MongoDB collection and image subdirectory.
type Kind string

const (
	KindSpirits    Kind = "spirits"
	KindLiqueur    Kind = "liqueur"
	KindIngredient Kind = "ingredient"
	KindCocktail   Kind = "cocktail"
)

// ParseKind validates a kind string from a URL path.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSpirits, KindLiqueur, KindIngredient, KindCocktail:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown catalog kind: %q", s)
	}
}

// Sentinel errors for catalog operations.
var (
	ErrNotFound         = errors.New("document not found")
	ErrInvalidID        = errors.New("invalid document id")
	ErrMetadataNotFound = errors.New("metadata not found")
	ErrInvalidMetadata  = errors.New("invalid metadata values provided")
)

// Spirits is a distilled spirit document.
type Spirits struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Aroma          []string           `bson:"aroma" json:"aroma"`
	Taste          []string           `bson:"taste" json:"taste"`
	Finish         []string           `bson:"finish" json:"finish"`
	Kind           string             `bson:"kind" json:"kind"`
	SubKind        string             `bson:"sub_kind" json:"subKind"`
	Amount         float64            `bson:"amount" json:"amount"`
	Alcohol        float64            `bson:"alcohol" json:"alcohol"`
	OriginNation   string             `bson:"origin_nation" json:"origin_nation"`
	OriginLocation string             `bson:"origin_location" json:"origin_location"`
	Description    string             `bson:"description" json:"description"`
	MainImage      string             `bson:"main_image,omitempty" json:"main_image,omitempty"`
	SubImage1      string             `bson:"sub_image_1,omitempty" json:"sub_image_1,omitempty"`
	SubImage2      string             `bson:"sub_image_2,omitempty" json:"sub_image_2,omitempty"`
	SubImage3      string             `bson:"sub_image_3,omitempty" json:"sub_image_3,omitempty"`
	SubImage4      string             `bson:"sub_image_4,omitempty" json:"sub_image_4,omitempty"`
	CreatedAt      time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt      *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Liqueur is a liqueur document.
type Liqueur struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Brand           string             `bson:"brand" json:"brand"`
	Taste           []string           `bson:"taste" json:"taste"`
	Kind            string             `bson:"kind" json:"kind"`
	SubKind         string             `bson:"sub_kind" json:"subKind"`
	MainIngredients []string           `bson:"main_ingredients" json:"main_ingredients"`
	Volume          float64            `bson:"volume" json:"volume"`
	ABV             float64            `bson:"abv" json:"abv"`
	OriginNation    string             `bson:"origin_nation" json:"origin_nation"`
	Description     string             `bson:"description" json:"description"`
	MainImage       string             `bson:"main_image,omitempty" json:"main_image,omitempty"`
	CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Ingredient is a non-alcoholic (or miscellaneous) ingredient document.
type Ingredient struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Brand       []string           `bson:"brand,omitempty" json:"brand,omitempty"`
	Kind        string             `bson:"kind" json:"kind"`
	Description string             `bson:"description" json:"description"`
	MainImage   string             `bson:"main_image,omitempty" json:"main_image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Recipe references a registered catalog item used by a cocktail.
type Recipe struct {
	ID     string `bson:"id" json:"id"`
	Type   string `bson:"type" json:"type"`
	Amount int    `bson:"amount" json:"amount"`
	Unit   string `bson:"unit" json:"unit"`
}

// RecipeStep is one ordered instruction in a cocktail recipe.
type RecipeStep struct {
	Step        int    `bson:"step" json:"step"`
	Description string `bson:"description" json:"description"`
}

// Cocktail is a cocktail recipe document.
type Cocktail struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Aroma        []string           `bson:"aroma" json:"aroma"`
	Taste        []string           `bson:"taste" json:"taste"`
	Finish       []string           `bson:"finish" json:"finish"`
	Ingredients  []Recipe           `bson:"ingredients" json:"ingredients"`
	Steps        []RecipeStep       `bson:"steps" json:"steps"`
	Glass        string             `bson:"glass" json:"glass"`
	Description  string             `bson:"description" json:"description"`
	OriginNation string             `bson:"origin_nation" json:"origin_nation"`
	MainImage    string             `bson:"main_image,omitempty" json:"main_image,omitempty"`
	SubImage1    string             `bson:"sub_image_1,omitempty" json:"sub_image_1,omitempty"`
	SubImage2    string             `bson:"sub_image_2,omitempty" json:"sub_image_2,omitempty"`
	SubImage3    string             `bson:"sub_image_3,omitempty" json:"sub_image_3,omitempty"`
	SubImage4    string             `bson:"sub_image_4,omitempty" json:"sub_image_4,omitempty"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt    *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SearchResponse is the pagination envelope returned by searches.
type SearchResponse struct {
	TotalPage       int      `json:"totalPage"`
	CurrentPage     int      `json:"currentPage"`
	TotalSize       int      `json:"totalSize"`
	CurrentPageSize int      `json:"currentPageSize"`
	Items           []bson.M `json:"items"`
}
