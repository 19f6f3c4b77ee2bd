package constants

// Page document names in the content collection. The public site reads these
// documents verbatim, so the names are part of the external contract.
const (
	ProjectsPageDoc = "ProjectsPageResponse"
	CodelabsPageDoc = "CodelabsPageResponse"
	CulturePageDoc  = "CulturePageResponse"
	HomePageDoc     = "HomePageResponse"
)

// List-valued fields inside the page documents.
const (
	ProjectsField     = "projects"
	CodelabsField     = "codelabs"
	TestimonialsField = "testimonials"
	MetricsField      = "metrics"
	SummariesField    = "projectSummaries"
)

// LastUpdatedField is stamped by the document store on every write.
const LastUpdatedField = "last_updated"
