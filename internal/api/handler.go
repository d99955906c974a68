// Package api implements the HTTP handlers of the service: the free-text
// query endpoint and the two workbook-upload ingestion endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictorOli23/Consultas-SPI/internal/ingest"
)

// Answerer resolves a question to a formatted answer.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Ingester runs workbook ingestions.
type Ingester interface {
	Sites(ctx context.Context, r io.Reader) (ingest.Summary, error)
	Roster(ctx context.Context, r io.Reader) (ingest.Summary, error)
}

// Handler exposes the HTTP endpoints.
type Handler struct {
	resolver  Answerer
	ingester  Ingester
	maxUpload int64
}

// NewHandler creates a Handler. maxUpload caps the accepted workbook size in
// bytes.
func NewHandler(resolver Answerer, ingester Ingester, maxUpload int64) *Handler {
	return &Handler{resolver: resolver, ingester: ingester, maxUpload: maxUpload}
}

// QueryRequest is the body of POST /v1/query.
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is returned by POST /v1/query.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// IngestResponse is returned by the ingestion endpoints.
type IngestResponse struct {
	Message string         `json:"message"`
	Summary ingest.Summary `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Query answers a free-text duty question. Unresolvable questions still get
// a 200 with guidance text; only store failures surface as errors, and even
// then without internal detail.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	answer, err := h.resolver.Answer(r.Context(), req.Question)
	if err != nil {
		slog.Error("query failed", "error", err)
		writeErr(w, http.StatusInternalServerError, "query failed")
		return
	}

	slog.Info("query answered",
		"question_len", len(req.Question),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, QueryResponse{Answer: answer})
}

// IngestSites handles POST /v1/ingest/sites: a multipart "file" upload with
// the location workbook.
func (h *Handler) IngestSites(w http.ResponseWriter, r *http.Request) {
	h.ingestUpload(w, r, "sites", h.ingester.Sites,
		"Base de Localidades (Sites) atualizada com sucesso!")
}

// IngestRoster handles POST /v1/ingest/roster: a multipart "file" upload
// with the monthly duty workbook.
func (h *Handler) IngestRoster(w http.ResponseWriter, r *http.Request) {
	h.ingestUpload(w, r, "roster", h.ingester.Roster,
		"Escala de Plantão Mensal carregada com sucesso!")
}

func (h *Handler) ingestUpload(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	run func(context.Context, io.Reader) (ingest.Summary, error),
	okMsg string,
) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file is required: "+err.Error())
		return
	}
	defer file.Close()

	sum, err := run(r.Context(), file)
	if err != nil {
		var soft *ingest.Error
		if errors.As(err, &soft) {
			slog.Warn("ingestion rejected",
				"kind", kind,
				"filename", header.Filename,
				"reason", soft.Reason,
			)
			writeErr(w, http.StatusUnprocessableEntity, soft.Reason)
			return
		}
		slog.Error("ingestion failed", "kind", kind, "filename", header.Filename, "error", err)
		writeErr(w, http.StatusInternalServerError, "ingestion failed")
		return
	}

	slog.Info("ingestion complete",
		"kind", kind,
		"filename", header.Filename,
		"run_id", sum.RunID,
		"records", sum.Records,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, IngestResponse{Message: okMsg, Summary: sum})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
