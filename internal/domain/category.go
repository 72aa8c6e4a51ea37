package domain

// Difficulty is the effort level of an experience.
type Difficulty string

const (
	DifficultyEasy         Difficulty = "Easy"
	DifficultyModerate     Difficulty = "Moderate"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyChallenging  Difficulty = "Challenging"
)

// Difficulties lists the difficulty levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyIntermediate, DifficultyChallenging}

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// Categories shared by destinations and experiences.
var Categories = []string{
	"Beach",
	"Cultural",
	"Adventure",
	"Nature",
	"Wildlife",
	"Water Sports",
	"Culinary",
}

// GalleryCategories is the smaller set used by gallery items.
var GalleryCategories = []string{"Nature", "Cultural", "Wildlife", "Adventure"}

// CategoryAll matches every category in filters.
const CategoryAll = "All"

// IsCategory reports whether c is a destination/experience category.
func IsCategory(c string) bool { return contains(Categories, c) }

// IsGalleryCategory reports whether c is a gallery category.
func IsGalleryCategory(c string) bool { return contains(GalleryCategories, c) }

// MatchesCategory reports whether an entity category passes a filter.
// An empty filter or CategoryAll matches everything.
func MatchesCategory(filter, category string) bool {
	return filter == "" || filter == CategoryAll || filter == category
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
