package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"medtrack/web/domain"
)

//go:embed templates
var templatesFS embed.FS

// pageSet maps a page name to its template parsed together with the layout.
type pageSet map[string]*template.Template

var tmplFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
}

// parsePages loads every page template against the shared layout.
func parsePages() pageSet {
	pages := pageSet{}
	entries, err := fs.ReadDir(templatesFS, "templates/pages")
	if err != nil {
		log.Fatalf("unable to read templates: %v", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".html")
		tmpl, err := template.New("layout.html").Funcs(tmplFuncs).ParseFS(templatesFS,
			"templates/layout.html", path.Join("templates/pages", entry.Name()))
		if err != nil {
			log.Fatalf("unable to parse template %s: %v", entry.Name(), err)
		}
		pages[name] = tmpl
	}
	return pages
}

// Flash messages: one-shot notifications carried across a redirect.

const (
	flashCookie  = "medtrack_flash"
	flashError   = "error"
	flashSuccess = "success"
)

type flash struct {
	Kind    string
	Message string
}

func (h *Handler) setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) takeFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &flash{Kind: kind, Message: message}
}

// viewData is the envelope every template receives.
type viewData struct {
	Title     string
	Path      string
	Principal *domain.Principal
	IsStaff   bool
	Flash     *flash
	Banner    string
	Data      any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	h.renderBanner(w, r, page, title, "", data)
}

// renderBanner renders a page with an optional same-request error banner
// (used when a list fetch failed but the view must still come up).
func (h *Handler) renderBanner(w http.ResponseWriter, r *http.Request, page, title, banner string, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.log.WithField("page", page).Error("unknown template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	p := principal(r)
	vd := viewData{
		Title:     title,
		Path:      r.URL.Path,
		Principal: p,
		IsStaff:   domain.IsPharmacyStaff(p),
		Flash:     h.takeFlash(w, r),
		Banner:    banner,
		Data:      data,
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", vd); err != nil {
		h.log.WithField("page", page).WithError(err).Error("template execution failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// staticPage serves a marketing/info page.
func (h *Handler) staticPage(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, page, title, nil)
	}
}
