package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/mileusna/useragent"

	"github.com/acucogn/site/internal/geoip"
	"github.com/acucogn/site/internal/leads"
	"github.com/acucogn/site/internal/model"
	"github.com/acucogn/site/internal/render"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/site"
	"github.com/acucogn/site/internal/util"
)

// ContactHandler serves the lead contact form.
type ContactHandler struct {
	*Views
	leads *leads.Client
	sm    *scs.SessionManager
	geo   *geoip.Locator
}

// NewContactHandler creates a ContactHandler. geo may be nil.
func NewContactHandler(v *Views, client *leads.Client, sm *scs.SessionManager, geo *geoip.Locator) *ContactHandler {
	return &ContactHandler{Views: v, leads: client, sm: sm, geo: geo}
}

// ContactData is the view data of the contact page.
type ContactData struct {
	Form      leads.Form
	Errors    map[string]string
	Countries []leads.Country
	Services  []model.ServiceInterest
	Budgets   []model.BudgetBracket
}

func (h *ContactHandler) meta() *seo.Meta {
	return seo.ForPage(h.SEO, RouteContact, "Contact",
		"Ready to transform your business with AI? Let's discuss your project.")
}

func (h *ContactHandler) data(form leads.Form, errs map[string]string) ContactData {
	return ContactData{
		Form:      form,
		Errors:    errs,
		Countries: leads.Countries,
		Services:  model.Services(),
		Budgets:   model.Budgets(),
	}
}

// Show handles GET /contact. A form kept from a failed submission is
// restored; otherwise the phone prefix defaults to the visitor's country.
func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	form, ok := h.sm.Pop(r.Context(), SessionKeyContactForm).(leads.Form)
	if !ok {
		form = leads.Form{CountryCode: h.defaultDialCode(r)}
	}
	h.render(w, r, http.StatusOK, "contact", h.page(r, site.TabContact, h.meta(), h.data(form, nil)))
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := leads.Form{
		Name:        r.PostFormValue(leads.FieldName),
		Email:       r.PostFormValue(leads.FieldEmail),
		Company:     r.PostFormValue(leads.FieldCompany),
		CountryCode: r.PostFormValue(leads.FieldCountryCode),
		Phone:       r.PostFormValue(leads.FieldPhone),
		Service:     r.PostFormValue(leads.FieldService),
		Budget:      r.PostFormValue(leads.FieldBudget),
		Message:     r.PostFormValue(leads.FieldMessage),
	}

	_, err := h.leads.Submit(r.Context(), form)

	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		h.render(w, r, http.StatusUnprocessableEntity, "contact",
			h.page(r, site.TabContact, h.meta(), h.data(form, ve.Fields)))
		return
	case err != nil:
		h.sm.Put(r.Context(), SessionKeyContactForm, form)
		h.Renderer.SetFlash(r, FlashFailedTitle, FlashFailedDetail, render.FlashError)
		http.Redirect(w, r, RouteContact, http.StatusSeeOther)
		return
	}

	ua := useragent.Parse(r.UserAgent())
	slog.InfoContext(r.Context(), "lead received",
		"service", form.Service,
		"browser", ua.Name,
		"os", ua.OS,
		"mobile", ua.Mobile,
	)

	h.Renderer.SetFlash(r, FlashSentTitle, FlashSentDetail, render.FlashSuccess)
	http.Redirect(w, r, RouteContact, http.StatusSeeOther)
}

func (h *ContactHandler) defaultDialCode(r *http.Request) string {
	if h.geo == nil {
		return geoip.DefaultDialCode
	}
	return h.geo.DialCode(util.ClientIP(r))
}
