package models

import "gorm.io/datatypes"

// Project categories shown as portfolio filters. "All" on the site is a
// pseudo-category, not a stored value.
const (
	CategorySocialMedia       = "Social Media"
	CategoryContentCreator    = "Content Creator"
	CategoryContentProduction = "Content Production"
	CategoryCreativeCampaign  = "Creative Campaign"
)

// ProjectCategories lists the valid values of Project.Category.
var ProjectCategories = []string{
	CategorySocialMedia,
	CategoryContentCreator,
	CategoryContentProduction,
	CategoryCreativeCampaign,
}

// ValidCategory reports whether category is one of the four portfolio
// categories.
func ValidCategory(category string) bool {
	for _, c := range ProjectCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Project represents one portfolio entry. Image is stored as JSON because
// historical rows hold either a bare URL string or a single-element array of
// URLs; readers normalize through ImageURL.
type Project struct {
	ID              int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string         `json:"title" gorm:"type:text;not null"`
	Category        string         `json:"category" gorm:"type:text;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	FullDescription string         `json:"full_description" gorm:"type:text"`
	Image           datatypes.JSON `json:"image,omitempty" gorm:"type:jsonb"`
	Link            string         `json:"link" gorm:"type:text"`
	Date            string         `json:"date" gorm:"type:text"`
}

func (Project) TableName() string {
	return string(CollectionProjects)
}

// ImageURL resolves the display URL of the project's polymorphic image value.
func (p Project) ImageURL() string {
	return ImageURL([]byte(p.Image))
}
