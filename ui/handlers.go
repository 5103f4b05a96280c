package ui

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"datacheck/adapters/excel"
	"datacheck/domain/core"
	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/ports"
)

// reportPayload is the JSON rendering of one evaluation.
type reportPayload struct {
	RunID       string           `json:"run_id,omitempty"`
	DatasetName string           `json:"dataset_name"`
	Extended    bool             `json:"extended"`
	Sections    []report.Section `json:"sections"`
}

// handleEvaluate accepts a multipart upload: a "dataset" file (xlsx or csv),
// an optional "dictionary" workbook, and form fields name, extended and
// id_column. The report is returned as JSON and persisted when a store is
// configured.
func (a *App) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload: %w", err))
		return
	}

	extended := a.cfg.Extended
	if v := r.FormValue("extended"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, &core.ArgumentError{Name: "extended", Reason: "must be a boolean"})
			return
		}
		extended = parsed
	}
	name := r.FormValue("name")
	idColumn := r.FormValue("id_column")

	datasetPath, cleanupDataset, err := a.saveUpload(r, "dataset")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanupDataset()

	ds, err := excel.NewDataReader(datasetPath).ReadDataset(idColumn)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if name == "" {
		name = "dataset"
	}

	var dd *dictionary.DataDict
	if dictPath, cleanupDict, err := a.saveUpload(r, "dictionary"); err == nil {
		defer cleanupDict()
		dd, err = excel.NewDataReader(dictPath).ReadDataDict()
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	rep, err := a.evaluator.Dataset(ds, dd, nil, name, extended)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	payload := reportPayload{DatasetName: name, Extended: extended, Sections: rep.Sections()}
	if a.store != nil {
		summary, err := a.store.Save(r.Context(), name, extended, rep)
		if err != nil {
			a.log.Error("failed to persist run for %q: %v", name, err)
		} else {
			payload.RunID = summary.ID.String()
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

// saveUpload spools one uploaded file to disk, preserving its extension so the
// reader dispatches on it.
func (a *App) saveUpload(r *http.Request, field string) (string, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing %q upload: %w", field, err)
	}
	defer file.Close()
	return spoolFile(file, filepath.Ext(header.Filename))
}

func spoolFile(src multipart.File, ext string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "datacheck-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		writeError(w, http.StatusNotFound, core.ErrRunNotFound)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, &core.ArgumentError{Name: "limit", Reason: "must be a positive integer"})
			return
		}
		limit = parsed
	}
	runs, err := a.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	summary, rep, ok := a.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, reportPayload{
		RunID:       summary.ID.String(),
		DatasetName: summary.DatasetName,
		Extended:    summary.Extended,
		Sections:    rep.Sections(),
	})
}

// handleRunHTML renders a stored report as HTML via its markdown form.
func (a *App) handleRunHTML(w http.ResponseWriter, r *http.Request) {
	summary, rep, ok := a.loadRun(w, r)
	if !ok {
		return
	}
	md := fmt.Sprintf("# %s\n\n%s", summary.DatasetName, rep.Markdown())
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	html := markdown.ToHTML([]byte(md), p, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func (a *App) loadRun(w http.ResponseWriter, r *http.Request) (*ports.RunSummary, *report.Report, bool) {
	if a.store == nil {
		writeError(w, http.StatusNotFound, core.ErrRunNotFound)
		return nil, nil, false
	}
	id := core.ID(chi.URLParam(r, "id"))
	summary, rep, err := a.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, nil, false
	}
	return summary, rep, true
}

// statusFor maps the error taxonomy to HTTP statuses: shape and argument
// failures are the caller's fault, everything else is internal.
func statusFor(err error) int {
	switch {
	case core.IsShapeError(err), errors.Is(err, core.ErrInvalidArgument),
		errors.Is(err, core.ErrEmptyInput), errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
