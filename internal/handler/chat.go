package handler

import (
	"net/http"

	"github.com/acucogn/site/internal/chat"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/util"
)

// ChatHandler serves the chat widget form posts. The widget is rendered on
// every page; these routes only change the conversation and redirect back.
type ChatHandler struct {
	*Views
	service *chat.Service
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(v *Views, svc *chat.Service) *ChatHandler {
	return &ChatHandler{Views: v, service: svc}
}

// Show handles GET /chat, a standalone page with the panel open.
func (h *ChatHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "", seo.NoIndex(h.SEO, "Chat"), nil)
	data.Chat.Open = true
	data.Chat.ReturnTo = RouteChat
	data.Chat.CloseURL = RouteRoot
	h.render(w, r, http.StatusOK, "chat", data)
}

// Send handles POST /chat. The reply, or the fallback message when the
// endpoint fails, is stored before redirecting back to the page the visitor
// was on with the panel open. Blank messages change nothing.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	conv := h.Chat.Load(ctx)
	h.service.Send(chat.WithVisitorIP(ctx, util.ClientIP(r)), conv, r.PostFormValue("message"))
	h.Chat.Save(ctx, conv)

	http.Redirect(w, r, withChatOpen(safeReturnPath(r.PostFormValue("return_to"))), http.StatusSeeOther)
}

// Reset handles POST /chat/reset.
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	h.Chat.Reset(r.Context())
	http.Redirect(w, r, withChatOpen(safeReturnPath(r.PostFormValue("return_to"))), http.StatusSeeOther)
}
