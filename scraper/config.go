package scraper

// Config defines how to pull article entries out of an inbox page.
// LinkSelectors is an ordered list of extraction strategies: selectors
// are probed in order and the first one that yields an href wins. The
// defaults match the source site's markup, which renders a styled link
// class on most cards and a plain permalink anchor on the rest.
type Config struct {
	ItemSelector      string   `yaml:"item_selector" json:"item_selector"`
	LinkSelectors     []string `yaml:"link_selectors" json:"link_selectors"`
	TitleSelector     string   `yaml:"title_selector" json:"title_selector"`
	DateSelector      string   `yaml:"date_selector" json:"date_selector"`
	PublisherSelector string   `yaml:"publisher_selector" json:"publisher_selector"`
	PathMarker        string   `yaml:"path_marker" json:"path_marker"`
}

// DefaultConfig returns the selector set for the source site's inbox
// markup.
func DefaultConfig() Config {
	return Config{
		ItemSelector: "div.reader2-post-container",
		LinkSelectors: []string{
			"a.linkRowA-pQXF7n",
			"a[href*='/p/']",
		},
		TitleSelector:     "div.reader2-post-title",
		DateSelector:      "div.inbox-item-timestamp",
		PublisherSelector: "div.pub-name a",
		PathMarker:        "/p/",
	}
}

// WithDefaults fills any unset field from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.ItemSelector == "" {
		c.ItemSelector = def.ItemSelector
	}
	if len(c.LinkSelectors) == 0 {
		c.LinkSelectors = def.LinkSelectors
	}
	if c.TitleSelector == "" {
		c.TitleSelector = def.TitleSelector
	}
	if c.DateSelector == "" {
		c.DateSelector = def.DateSelector
	}
	if c.PublisherSelector == "" {
		c.PublisherSelector = def.PublisherSelector
	}
	if c.PathMarker == "" {
		c.PathMarker = def.PathMarker
	}
	return c
}
