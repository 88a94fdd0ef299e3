package sitemap

import "encoding/xml"

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StarsPerPage caps the stars section; larger catalogs spill into ?p=2...
const StarsPerPage = 1000

const (
	SectionStars      = "stars"
	SectionCountries  = "countries"
	SectionCategories = "categories"
	SectionBirthdays  = "birthdays"
	SectionStatic     = "static"
	SectionNames      = "names"
)

// Sections in index order.
var Sections = []string{
	SectionStars, SectionCountries, SectionCategories,
	SectionBirthdays, SectionStatic, SectionNames,
}

type URL struct {
	Loc        string `xml:"loc" json:"loc"`
	LastMod    string `xml:"lastmod,omitempty" json:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty" json:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty" json:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset" json:"-"`
	Xmlns   string   `xml:"xmlns,attr" json:"xmlns"`
	URLs    []URL    `xml:"url" json:"urls"`
}

type Entry struct {
	Loc string `xml:"loc" json:"loc"`
}

type Index struct {
	XMLName  xml.Name `xml:"sitemapindex" json:"-"`
	Xmlns    string   `xml:"xmlns,attr" json:"xmlns"`
	Sitemaps []Entry  `xml:"sitemap" json:"sitemaps"`
}
