package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

func (s *Server) page(title, active string) *pageData {
	return &pageData{
		Title: title,
		Nav:   buildNav(s.ports.Browse.Datasets(), active),
	}
}

// datasetOrZero returns the named profile, or a zero profile when unknown.
func (s *Server) datasetOrZero(name string) domain.Dataset {
	ds, err := s.ports.Browse.Dataset(name)
	if err != nil {
		return domain.Dataset{Name: name}
	}
	return ds
}

// errorStatus maps a service error to a status and the message shown in
// place of content.
func errorStatus(err error, ds domain.Dataset) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownDataset), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidExpression),
		errors.Is(err, domain.ErrPredicateUnavailable),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrLoad):
		return http.StatusBadGateway, domain.UserMessage(err, ds)
	default:
		return http.StatusInternalServerError, domain.MsgLoadFailed
	}
}

// parseFilter reads the filter and page state from query parameters:
// category, q, field (repeatable), where and page. The search form also
// sends fields=1 so that unchecking every field selects full-record
// matching instead of falling back to the defaults.
func parseFilter(q url.Values, ds domain.Dataset) (domain.FilterState, domain.PageState) {
	f := ds.InitialFilter()
	if c := q.Get("category"); c != "" {
		f = f.WithCategory(c)
	}
	f = f.WithQuery(q.Get("q"))
	if fields, ok := q["field"]; ok || q.Get("fields") == "1" {
		f = f.WithFields(fields...)
	}
	f = f.WithWhere(q.Get("where"))

	var p domain.PageState
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p = ds.InitialPage().WithPage(n)
	}
	return f, p
}

func (s *Server) handleBrowse(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, err := s.ports.Browse.Dataset(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		data := s.page(ds.Title, name)

		filter, page := parseFilter(r.URL.Query(), ds)
		res, err := s.ports.Browse.Browse(r.Context(), name, filter, page)
		if err != nil {
			status, msg := errorStatus(err, ds)
			s.log.Warnw("browse failed", "dataset", name, "error", err)
			data.Message = msg
			s.render(w, status, pageBrowse, data)
			return
		}

		data.Browse = newBrowseView(res, r.URL.Path, r.URL.Query())
		if res.Empty() {
			data.Message = domain.MsgNoResults
		}
		s.render(w, http.StatusOK, pageBrowse, data)
	}
}

func (s *Server) handleVOC(w http.ResponseWriter, r *http.Request) {
	ds := s.datasetOrZero(domain.DatasetVOC)
	data := s.page(ds.Title, domain.DatasetVOC)

	if s.ports.VOC == nil {
		data.Message = domain.UserMessage(domain.ErrLoad, ds)
		s.render(w, http.StatusServiceUnavailable, pageVOC, data)
		return
	}

	months, err := s.ports.VOC.Months(r.Context())
	if err != nil {
		status, msg := errorStatus(err, ds)
		s.log.Warnw("voc failed", "error", err)
		data.Message = msg
		s.render(w, status, pageVOC, data)
		return
	}
	data.VOC = newVOCView(months, r.URL.Query().Get("month"))
	if len(months) == 0 {
		data.Message = domain.MsgNoResults
	}
	s.render(w, http.StatusOK, pageVOC, data)
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	ds := s.datasetOrZero(domain.DatasetIssues)
	data := s.page(ds.Title, domain.DatasetIssues)

	if s.ports.Issues == nil {
		data.Message = domain.UserMessage(domain.ErrLoad, ds)
		s.render(w, http.StatusServiceUnavailable, pageIssues, data)
		return
	}

	feed, err := s.ports.Issues.Feed(r.Context(), s.now())
	if err != nil {
		status, msg := errorStatus(err, ds)
		s.log.Warnw("issues failed", "error", err)
		data.Message = msg
		s.render(w, status, pageIssues, data)
		return
	}

	slide, _ := strconv.Atoi(r.URL.Query().Get("slide"))
	data.Issues = newIssuesView(feed, slide, s.cfg.CarouselInterval.Milliseconds())
	if feed.Empty() {
		data.Message = domain.MsgNoIssues
	}
	s.render(w, http.StatusOK, pageIssues, data)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	data := s.page("상세 정보", domain.DatasetGuide)

	d, err := s.ports.Detail.Detail(r.Context(), SessionID(r.Context()))
	if err != nil {
		msg := domain.UserMessage(err, domain.Dataset{})
		if msg == "" {
			s.log.Errorw("detail failed", "error", err)
			msg = domain.MsgCorruptDetail
		}
		data.Message = msg
		s.render(w, http.StatusOK, pageDetail, data)
		return
	}

	data.Detail = newDetailView(d)
	s.render(w, http.StatusOK, pageDetail, data)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	dataset := r.PostFormValue("dataset")
	if dataset == "" {
		dataset = domain.DatasetGuide
	}
	index, err := strconv.Atoi(r.PostFormValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	if _, err := s.ports.Detail.Select(r.Context(), SessionID(r.Context()), dataset, index); err != nil {
		status, msg := errorStatus(err, s.datasetOrZero(dataset))
		http.Error(w, msg, status)
		return
	}
	http.Redirect(w, r, "/detail", http.StatusSeeOther)
}

type datasetJSON struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	PageSize int    `json:"page_size"`
}

type rowJSON struct {
	Index  int           `json:"index"`
	Record domain.Record `json:"record"`
}

type browseJSON struct {
	Dataset    string    `json:"dataset"`
	Category   string    `json:"category"`
	Query      string    `json:"query,omitempty"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	Rows       []rowJSON `json:"rows"`
}

func (s *Server) handleAPIDatasets(w http.ResponseWriter, _ *http.Request) {
	datasets := s.ports.Browse.Datasets()
	out := make([]datasetJSON, len(datasets))
	for i, d := range datasets {
		out[i] = datasetJSON{Name: d.Name, Title: d.Title, URL: d.Source.URL, PageSize: d.PageSize}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIBrowse(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ds, err := s.ports.Browse.Dataset(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	filter, page := parseFilter(r.URL.Query(), ds)
	res, err := s.ports.Browse.Browse(r.Context(), name, filter, page)
	if err != nil {
		status, msg := errorStatus(err, ds)
		writeError(w, status, msg)
		return
	}

	out := browseJSON{
		Dataset:    name,
		Category:   res.Filter.Category,
		Query:      res.Filter.Query,
		Page:       res.Page.Page,
		PageSize:   res.Page.Size,
		TotalPages: res.TotalPages,
		Total:      res.Total,
		Rows:       make([]rowJSON, len(res.Rows)),
	}
	for i, row := range res.Rows {
		out.Rows[i] = rowJSON{Index: row.Index, Record: row.Record}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cats, err := s.ports.Browse.Categories(r.Context(), name)
	if err != nil {
		status, msg := errorStatus(err, s.datasetOrZero(name))
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
