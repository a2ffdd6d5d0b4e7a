package handler

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/acucogn/site/internal/blog"
	"github.com/acucogn/site/internal/chat"
	"github.com/acucogn/site/internal/leads"
	"github.com/acucogn/site/internal/model"
	"github.com/acucogn/site/internal/render"
	"github.com/acucogn/site/internal/seo"
	_ "github.com/acucogn/site/internal/session" // registers leads.Form with gob, as in production
	"github.com/acucogn/site/internal/site"
	"github.com/acucogn/site/web"
)

const (
	idAgents   = "0b4b3e8e-6f1a-4a52-9d55-0d6c7d3b9a01"
	idRAG      = "5f0e2c7a-1b8d-4c3e-a0f9-7e6d5c4b3a02"
	idDraft    = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c03"
	idNotThere = "11111111-2222-4333-8444-555555555555"
)

type stubSource struct {
	articles []model.Article
	err      error
}

func (s *stubSource) ListPublished(context.Context) ([]model.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

func (s *stubSource) GetPublished(_ context.Context, id string) (*model.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.articles {
		if s.articles[i].ID == id {
			a := s.articles[i]
			return &a, nil
		}
	}
	return nil, model.ErrNotFound
}

type stubSink struct {
	mu    sync.Mutex
	leads []*model.LeadSubmission
	err   error
}

func (s *stubSink) Insert(_ context.Context, lead *model.LeadSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.leads = append(s.leads, lead)
	return nil
}

type stubTransport struct {
	reply string
	err   error
	got   []string
	ips   []string
}

func (s *stubTransport) Send(ctx context.Context, _ []model.ChatMessage, text string) (string, error) {
	s.got = append(s.got, text)
	s.ips = append(s.ips, chat.VisitorIP(ctx))
	return s.reply, s.err
}

func testArticles() []model.Article {
	return []model.Article{
		{
			ID: idAgents, Title: "Agents in Production", Excerpt: "Shipping agents.",
			Content: "## Why\n**Speed**: fast", Category: "GenAI", Author: "sam",
			Published: true, CreatedAt: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: idRAG, Title: "RAG Basics", Excerpt: "Retrieval first.",
			Content: "Plain text", Category: "Chatbots", Author: "lee",
			Published: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: idDraft, Title: "Draft", Category: "GenAI", Author: "sam",
			Published: false, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

type testEnv struct {
	router    http.Handler
	sm        *scs.SessionManager
	source    *stubSource
	sink      *stubSink
	transport *stubTransport
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	content, err := site.Default()
	require.NoError(t, err)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)

	sm := scs.New()
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm, Site: content})
	require.NoError(t, err)

	env := &testEnv{
		sm:        sm,
		source:    &stubSource{articles: testArticles()},
		sink:      &stubSink{},
		transport: &stubTransport{reply: "Happy to help."},
	}

	views := &Views{
		Renderer: renderer,
		Site:     content,
		Chat:     chat.NewSessionStore(sm),
		SEO:      &seo.SiteConfig{SiteName: "ACUCOGN", SiteURL: "https://acucogn.test"},
	}
	blogSvc := blog.NewService(env.source)

	pages := NewPagesHandler(views)
	blogH := NewBlogHandler(views, blogSvc)
	contact := NewContactHandler(views, leads.NewClient(env.sink, nil), sm, nil)
	chatH := NewChatHandler(views, chat.NewService(env.transport, nil))

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.NotFound(views.NotFound)
	r.Get(RouteRoot, pages.Home)
	r.Get(RouteServices, pages.Services)
	r.Get(RoutePortfolio, pages.Portfolio)
	r.Get(RouteFAQ, pages.FAQ)
	r.Get(RouteBlog, blogH.List)
	r.Get(RouteBlogPost, blogH.Show)
	r.Get(RouteContact, contact.Show)
	r.Post(RouteContact, contact.Submit)
	r.Get(RouteChat, chatH.Show)
	r.Post(RouteChat, chatH.Send)
	r.Post(RouteChatReset, chatH.Reset)

	env.router = r
	return env
}

// do serves req, carrying the session cookies over from earlier responses.
func (e *testEnv) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, target string, cookies []*http.Cookie) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	w := e.do(httptest.NewRequest(http.MethodGet, target, nil), cookies)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return w, doc
}

func postForm(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// cookies merges the cookies set by w into prev.
func cookies(prev []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	set := w.Result().Cookies()
	if len(set) == 0 {
		return prev
	}
	return set
}

var errBackend = errors.New("backend unavailable")

func mustDoc(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}
