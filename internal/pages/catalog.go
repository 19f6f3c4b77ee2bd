package pages

import (
	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/content"
)

// CatalogEntry declares one page document and the typed default it is
// bootstrapped with when absent.
type CatalogEntry struct {
	Name    string
	Default any
}

// DefaultCultureVideo is the culture page's video card until editors replace it.
var DefaultCultureVideo = content.VideoContent{
	Title:    "Code, Laugh, Conquer: The GDG Way",
	ImgURL:   "https://storage.googleapis.com/gdg-fisk-assets/images/culture-video-img.png",
	VideoURL: "/",
	Genres:   []string{"SARCASM", "COLLABORATIVE LEARNING", "PASSION"},
}

// DefaultHomeVideoURL is the home page video placeholder.
const DefaultHomeVideoURL = "/"

// DefaultCatalog returns the fixed set of page documents the public site
// reads. Order matters only for bootstrap logging; the catalog is read-only
// after construction.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Name: constants.ProjectsPageDoc, Default: content.ProjectsPage{Projects: []content.Project{}}},
		{Name: constants.CodelabsPageDoc, Default: content.CodelabsPage{Codelabs: []content.Codelab{}}},
		{Name: constants.CulturePageDoc, Default: content.CulturePage{
			CulturePageVideo: DefaultCultureVideo,
			Testimonials:     []content.Testimonial{},
			Metrics:          []content.Metric{},
		}},
		{Name: constants.HomePageDoc, Default: content.HomePage{
			HomeVideoURL:     DefaultHomeVideoURL,
			ProjectSummaries: []content.ProjectSummary{},
			Testimonials:     []content.Testimonial{},
		}},
	}
}
