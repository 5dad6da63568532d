package entity

// Page is the readable part of a fetched web page.
type Page struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	SiteName string `json:"siteName,omitempty"`
	Text     string `json:"-"`
}
