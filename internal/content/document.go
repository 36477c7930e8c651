package content

import (
	"path"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Image is a picture reference with an optional caption.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Link is a titled URL.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// File is a downloadable asset such as a CV.
type File struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// Social holds profile links shown on the home page.
type Social struct {
	GitHub        string `json:"github,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	Twitter       string `json:"twitter,omitempty"`
	ResearchGate  string `json:"researchgate,omitempty"`
	GoogleScholar string `json:"googleScholar,omitempty"`
	ORCID         string `json:"orcid,omitempty"`
}

// Education is one entry of the education history.
type Education struct {
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// Experience is one entry of the work history.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// About is the single mandatory home page document.
type About struct {
	Name         string       `json:"name"`
	MainRole     string       `json:"main role"`
	Roles        []string     `json:"roles"`
	Bio          string       `json:"bio"`
	Image        string       `json:"image"`
	Location     string       `json:"location"`
	Email        string       `json:"email"`
	Social       Social       `json:"social"`
	CV           File         `json:"cv"`
	Resume       File         `json:"resume"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Slogan       string       `json:"slogan"`
	SloganFooter string       `json:"slogan_footer"`
}

func (a About) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
	)
}

// Project is a portfolio entry. Its narrative is split into named sections,
// each a content tree.
type Project struct {
	ID          string   `json:"id"`
	Author      []string `json:"author"`
	Highlight   bool     `json:"highlight"`
	Date        string   `json:"date,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MainImage   *Image   `json:"main_image,omitempty"`

	ProblemStatement          []Node `json:"problem_statement,omitempty"`
	MyRole                    []Node `json:"my_role,omitempty"`
	TechnicalSolution         []Node `json:"technical_solution,omitempty"`
	MeasurementImprovement    []Node `json:"measurement_improvement,omitempty"`
	ImplementationIntegration []Node `json:"implementation_integration,omitempty"`
	RealWorldImpact           []Node `json:"real_world_impact,omitempty"`
	CompanyAlignment          []Node `json:"company_alignment,omitempty"`

	Technologies []string `json:"technologies"`
	Topics       []string `json:"topics"`
}

// NamedSection pairs a project narrative section with its display title.
type NamedSection struct {
	Title string
	Nodes []Node
}

// Sections returns the non-empty narrative sections in display order.
func (p Project) Sections() []NamedSection {
	all := []NamedSection{
		{"Problem Statement", p.ProblemStatement},
		{"My Role", p.MyRole},
		{"Technical Solution", p.TechnicalSolution},
		{"Measurement & Improvement", p.MeasurementImprovement},
		{"Implementation & Integration", p.ImplementationIntegration},
		{"Real World Impact", p.RealWorldImpact},
		{"Company Alignment", p.CompanyAlignment},
	}
	out := all[:0]
	for _, s := range all {
		if s.Nodes != nil {
			out = append(out, s)
		}
	}
	return out
}

func (p Project) Slug() string { return p.ID }

// SortDate is the date used to order projects, newest first.
func (p Project) SortDate() time.Time {
	return sortDate(p.StartDate, p.Date)
}

// DisplayDate is the date string shown on cards.
func (p Project) DisplayDate() string {
	if p.Date != "" {
		return p.Date
	}
	return p.StartDate
}

func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Match(slugPattern)),
		validation.Field(&p.Title, validation.Required),
	)
}

// Post is a blog article or a publication; both share one shape.
type Post struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Author       string     `json:"author"`
	Date         string     `json:"date,omitempty"`
	StartDate    string     `json:"start_date,omitempty"`
	EndDate      string     `json:"end_date,omitempty"`
	Content      []Node     `json:"content"`
	Topics       []string   `json:"topics"`
	Technologies []string   `json:"technologies"`
	ReadingTime  string     `json:"readingTime,omitempty"`
	VideoURL     string     `json:"videoUrl,omitempty"`
	GitHubURL    string     `json:"githubUrl,omitempty"`
	MainImage    *Image     `json:"main_image,omitempty"`
	Images       []Image    `json:"images,omitempty"`
	Related      []Link     `json:"related,omitempty"`
	References   References `json:"references,omitempty"`
}

func (p Post) Slug() string { return p.ID }

// SortDate is the date used to order posts, newest first.
func (p Post) SortDate() time.Time {
	return sortDate(p.StartDate, p.Date)
}

// DateRange formats the period a post covers: a single date when start and
// end agree, "start - end" otherwise, and "start - Present" when no end is
// set. Posts with only a plain date show that date.
func (p Post) DateRange() string {
	start := p.StartDate
	if start == "" {
		return p.Date
	}
	switch {
	case p.EndDate == "":
		return start + " - Present"
	case p.EndDate == start:
		return start
	default:
		return start + " - " + p.EndDate
	}
}

func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Match(slugPattern)),
		validation.Field(&p.Title, validation.Required),
	)
}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses the date formats accepted in content files. It returns
// the zero time when s is empty or matches no layout.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sortDate(start, date string) time.Time {
	if start != "" {
		return ParseDate(start)
	}
	return ParseDate(date)
}

// TitleFromFilename derives a display title from a content file name:
// "my-first_post.json" becomes "My First Post".
func TitleFromFilename(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
