package web

import (
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/i18n"
	"github.com/reoring/tableopts/internal/docload"
	"github.com/reoring/tableopts/internal/logging"
)

type issuePayload struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Summary string `json:"summary"`
}

type decodeResponse struct {
	ID       string                        `json:"id"`
	Options  *tableopts.TableReaderOptions `json:"options,omitempty"`
	Warnings []issuePayload                `json:"warnings,omitempty"`
	Error    *issuePayload                 `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	logger := logging.FromContext(r.Context()).With("decode_id", id)

	format, err := s.requestFormat(r)
	if err != nil {
		writeJSON(w, http.StatusUnsupportedMediaType, decodeResponse{ID: id, Error: &issuePayload{
			Code: "unsupported_format", Message: err.Error(), Summary: err.Error(),
		}})
		return
	}

	opt := s.cfg.Decode.ParseOpt()
	body := r.Body
	if opt.MaxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, opt.MaxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSON(w, http.StatusRequestEntityTooLarge, decodeResponse{ID: id, Error: toPayload(&tableopts.Issue{
				Path: "/", Code: tableopts.CodeTruncated, Message: "max bytes exceeded",
			})})
			return
		}
		writeJSON(w, http.StatusBadRequest, decodeResponse{ID: id, Error: &issuePayload{
			Code: tableopts.CodeParseError, Message: err.Error(), Summary: i18n.T(tableopts.CodeParseError, nil),
		}})
		return
	}

	res, err := docload.Decode(s.decoder, data, format, opt)
	if err != nil {
		status := statusFor(err)
		logger.Info("options rejected", "format", format, "status", status, "error", err)
		writeJSON(w, status, decodeResponse{ID: id, Error: errorPayload(err)})
		return
	}

	resp := decodeResponse{ID: id, Options: &res.Options}
	for i := range res.Warnings {
		resp.Warnings = append(resp.Warnings, *toPayload(&res.Warnings[i]))
	}
	logger.Info("options decoded",
		"format", format,
		"table", res.Options.QualifiedName(""),
		"fields", len(res.Options.Fields),
		"warnings", len(res.Warnings),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requestFormat(r *http.Request) (docload.Format, error) {
	if q := r.URL.Query().Get("format"); q != "" {
		return docload.ParseFormat(q)
	}
	if f, ok := docload.FormatFromContentType(r.Header.Get("Content-Type")); ok {
		return f, nil
	}
	return docload.ParseFormat(s.cfg.Decode.DefaultFormat)
}

// statusFor separates unreadable documents (400, 413) from readable ones
// whose options are invalid (422).
func statusFor(err error) int {
	is, ok := tableopts.AsIssue(err)
	if !ok {
		return http.StatusUnprocessableEntity
	}
	switch is.Code {
	case tableopts.CodeTruncated:
		return http.StatusRequestEntityTooLarge
	case tableopts.CodeParseError, tableopts.CodeDuplicateKey:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func errorPayload(err error) *issuePayload {
	if is, ok := tableopts.AsIssue(err); ok {
		return toPayload(is)
	}
	return &issuePayload{Code: "decode_error", Message: err.Error(), Summary: err.Error()}
}

func toPayload(is *tableopts.Issue) *issuePayload {
	var data map[string]string
	if f, ok := is.Params["field"].(string); ok {
		data = map[string]string{"field": f}
	}
	return &issuePayload{Code: is.Code, Path: is.Path, Message: is.Message, Summary: i18n.T(is.Code, data)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
