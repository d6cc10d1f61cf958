package listings

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dryice-locator/locator/internal/platform/httpx"
	"github.com/dryice-locator/locator/internal/view"
)

const pageTitle = "Dry Ice Locator"

// Handler serves the directory page, the data file and the JSON API.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	submitURL string
}

// NewHandler constructs a Handler. submitURL is the external endpoint the
// submission form posts to; empty disables the form.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, submitURL string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, submitURL: submitURL}
}

type indexPage struct {
	Filter      Filter
	Cards       []Card
	Count       int
	Total       int
	TypeOptions []string
	FormOptions []string
	FeaturedURL string
	SourceName  string
	LoadedAt    time.Time
}

type formPage struct {
	SubmitURL     string
	SupplierTypes []string
	Forms         []string
}

// Index renders the directory with the filters from the query string.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	filter := FilterFromQuery(r.URL.Query())
	result, err := h.service.Search(r.Context(), filter)
	status := httpx.StatusFor(err)
	errMsg := ""
	if err != nil {
		h.logger.Warn("search listings", slog.Any("error", err), slog.String("query", r.URL.RawQuery))
		errMsg = "That filter is not available. Showing no results."
		if status == http.StatusInternalServerError {
			errMsg = "Something went wrong loading suppliers."
		}
	}

	display := filter
	if isAll(display.Type) {
		display.Type = OptionAll
	}
	if isAll(display.Form) {
		display.Form = OptionAll
	}
	toggled := filter
	toggled.FeaturedOnly = !filter.FeaturedOnly

	page := indexPage{
		Filter:      display,
		Cards:       NewCards(result.Results),
		Count:       result.Count,
		Total:       result.Total,
		TypeOptions: TypeOptions(),
		FormOptions: FormOptions(),
		FeaturedURL: pageURL(toggled),
		SourceName:  filepath.Base(result.Source),
		LoadedAt:    result.LoadedAt,
	}
	h.render(w, r, status, "pages/index.html", errMsg, page)
}

// Form renders the listing submission page.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/form.html", "", formPage{
		SubmitURL:     h.submitURL,
		SupplierTypes: SupplierTypes,
		Forms:         Forms,
	})
}

// Data serves the loaded collection as a JSON array.
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.All(r.Context()))
}

// APIList serves filtered results as JSON.
func (h *Handler) APIList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), FilterFromQuery(r.URL.Query()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// APIFacets serves selector options with counts.
func (h *Handler) APIFacets(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Facets(r.Context()))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, errMsg string, data any) {
	viewData := view.TemplateData{
		Title:       pageTitle,
		CurrentPath: r.URL.Path,
		Error:       errMsg,
		Data:        data,
	}
	if err := h.templates.Render(w, status, name, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func pageURL(f Filter) string {
	if encoded := f.Values().Encode(); encoded != "" {
		return "/?" + encoded
	}
	return "/"
}
