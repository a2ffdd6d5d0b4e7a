package handler

// Route patterns registered by the server.
const (
	RouteRoot        = "/"
	RouteServices    = "/services"
	RoutePortfolio   = "/portfolio"
	RouteBlog        = "/blog"
	RouteBlogPost    = "/blog/{id}"
	RouteFAQ         = "/faq"
	RouteContact     = "/contact"
	RouteChat        = "/chat"
	RouteChatReset   = "/chat/reset"
	RouteAPIChat     = "/api/chat"
	RouteThumbs      = "/thumbs/{size}/{name}"
	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
	RouteSitemap     = "/sitemap.xml"
	RouteRobots      = "/robots.txt"
	RouteSecurityTxt = "/.well-known/security.txt"
	RouteMetrics     = "/metrics"
)

// Session keys.
const (
	SessionKeyContactForm = "contact_form"
)

// Query parameters carrying view state.
const (
	QueryChat     = "chat"
	QueryChatOpen = "open"
	QueryOpen     = "open"
	QueryDemo     = "demo"
	QueryCategory = "category"
)

// Flash copy for the contact form.
const (
	FlashSentTitle    = "Message sent successfully!"
	FlashSentDetail   = "We'll get back to you within 24 hours."
	FlashFailedTitle  = "Submission failed"
	FlashFailedDetail = "There was an error submitting your form. Please try again."
)
