package site

// Tab is one entry in the top navigation.
type Tab struct {
	Key   string
	Label string
	Path  string
}

// Tab keys.
const (
	TabHome      = "home"
	TabServices  = "services"
	TabPortfolio = "portfolio"
	TabBlog      = "blog"
	TabFAQ       = "faq"
	TabContact   = "contact"
)

// Tabs is the navigation in display order.
var Tabs = []Tab{
	{Key: TabHome, Label: "Home", Path: "/"},
	{Key: TabServices, Label: "Services", Path: "/services"},
	{Key: TabPortfolio, Label: "Portfolio", Path: "/portfolio"},
	{Key: TabBlog, Label: "Blog", Path: "/blog"},
	{Key: TabFAQ, Label: "FAQ", Path: "/faq"},
	{Key: TabContact, Label: "Contact", Path: "/contact"},
}

// HasPromotion reports whether the tab shows the promotional block.
func HasPromotion(tab string) bool {
	return tab == TabHome || tab == TabServices
}

// TabFor returns the tab whose path is path, or the home tab.
func TabFor(path string) Tab {
	for _, t := range Tabs {
		if t.Path == path {
			return t
		}
	}
	return Tabs[0]
}
