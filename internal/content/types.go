package content

// Record types mirror the documents the public site renders. Field names (via
// JSON tags) are part of the site contract and must not change casing.

// TextContent is one content block, optionally image-bearing.
type TextContent struct {
	Content string `json:"content"`
	ImgURL  string `json:"imgUrl,omitempty"`
}

// VideoContent describes an embedded video with its poster image.
type VideoContent struct {
	Title    string   `json:"title"`
	ImgURL   string   `json:"imgUrl"`
	VideoURL string   `json:"videoUrl"`
	Genres   []string `json:"genres"`
}

// Section is an ordered list of content blocks.
type Section struct {
	TextContents []TextContent `json:"textContents"`
}

// Testimonial is a quote attributed to a team member.
type Testimonial struct {
	ID             string `json:"id"`
	Content        string `json:"content"`
	Classification string `json:"classification"`
	TeamDomain     string `json:"teamDomain"`
	AuthorImgURL   string `json:"authorImgUrl,omitempty"`
	Author         string `json:"author,omitempty"`
}

// NumericalStat is a value that may be rendered as a percentage.
type NumericalStat struct {
	Value     float64 `json:"value"`
	IsPercent bool    `json:"isPercent"`
}

// Goal pairs a heading with a target stat.
type Goal struct {
	Heading string        `json:"heading"`
	Stat    NumericalStat `json:"stat"`
}

// Metric is a headline stat with its supporting goals.
type Metric struct {
	MetricHeading    string        `json:"metricHeading"`
	Stat             NumericalStat `json:"stat"`
	MetricSubHeading string        `json:"metricSubHeading"`
	Goals            []Goal        `json:"goals"`
}

// ProjectSummary is the condensed project card shown on the home page.
type ProjectSummary struct {
	ID             string  `json:"id"`
	ProjectHeroImg string  `json:"projectHeroImg"`
	ProjectTitle   string  `json:"projectTitle"`
	Overview       Section `json:"overview"`
}

// KeyLearning is one takeaway from a codelab.
type KeyLearning struct {
	Content string `json:"content"`
	Icon    string `json:"icon,omitempty"`
}

// Project is the full project record extracted from a design document.
type Project struct {
	ID               string       `json:"id"`
	ProjectHeroImg   string       `json:"projectHeroImg"`
	ProjectTitle     string       `json:"projectTitle"`
	ReadTimeInMins   int          `json:"readTimeInMins"`
	Overview         Section      `json:"overview"`
	ProblemStatement string       `json:"problemStatement"`
	Features         Section      `json:"features"`
	Demo             VideoContent `json:"demo"`
	RelevantLinks    []string     `json:"relevantLinks"`
	Author           string       `json:"author,omitempty"`
}

// Codelab is the codelab record extracted from a codelab write-up.
type Codelab struct {
	ID            string        `json:"id"`
	ScreenshotURL string        `json:"screenshotUrl"`
	GCSURL        string        `json:"gcsUrl"`
	Title         string        `json:"title"`
	KeyLearnings  []KeyLearning `json:"keyLearnings"`
	ReleasedDate  string        `json:"releasedDate"`
	Author        string        `json:"author,omitempty"`
}

// ProjectsPage is the aggregate document backing the projects page.
type ProjectsPage struct {
	Projects []Project `json:"projects"`
}

// CodelabsPage is the aggregate document backing the codelabs page.
type CodelabsPage struct {
	Codelabs []Codelab `json:"codelabs"`
}

// CulturePage is the aggregate document backing the culture page.
type CulturePage struct {
	CulturePageVideo VideoContent  `json:"culturePageVideo"`
	Testimonials     []Testimonial `json:"testimonials"`
	Metrics          []Metric      `json:"metrics"`
}

// HomePage is the aggregate document backing the home page.
type HomePage struct {
	HomeVideoURL     string           `json:"homeVideoUrl"`
	ProjectSummaries []ProjectSummary `json:"projectSummaries"`
	Testimonials     []Testimonial    `json:"testimonials"`
}
