// Package store provides the in-memory catalog for the catalog server.
package store

import "github.com/grovetools/catalogd/pkg/models"

// UpdateType defines what kind of change happened.
type UpdateType string

const (
	UpdateCatAdded UpdateType = "cat_added"
)

// Update represents a change to the catalog.
type Update struct {
	Type UpdateType
	Cat  models.Cat
	Len  int // Catalog length after the change
}

// SampleCats returns the fixed entries the catalog is seeded with at start.
func SampleCats() []models.Cat {
	return []models.Cat{
		models.NewCat("Crookshanks", models.ColourGinger, "", "Crooks"),
		models.NewCat("Salem", models.ColourBlack, "https://example.com/cats/salem.png", "Mr. Saberhagen"),
		models.NewCat("Snowball", models.ColourWhite, ""),
	}
}
