package server

import (
	"errors"
	"io"
	"net/http"

	"jortega/finanzas/internal/auth"
	"jortega/finanzas/internal/dateutils"
	"jortega/finanzas/internal/importer"
	"jortega/finanzas/internal/logging"
)

// ImportHandler handles statement uploads.
type ImportHandler struct {
	importer    *importer.Importer
	maxFileSize int64
	log         logging.Logger
}

// NewImportHandler creates a new import handler. maxFileMB bounds the size
// of the uploaded statement.
func NewImportHandler(imp *importer.Importer, maxFileMB int, log logging.Logger) *ImportHandler {
	return &ImportHandler{
		importer:    imp,
		maxFileSize: int64(maxFileMB) << 20,
		log:         log,
	}
}

// ImportCSV handles POST /api/import/csv. The statement arrives as a
// multipart form with the file under "file" and the target account under
// "accountId"; the remaining fields tune parsing.
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := auth.FromContext(ctx)
	if identity == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Could not read file")
		return
	}

	opts := importer.Options{
		UserID:    identity.UserID,
		AccountID: r.FormValue("accountId"),
		DateOrder: dateutils.DateOrder(r.FormValue("dateFormat")),
		HasHeader: r.FormValue("hasHeader") != "false",
		Columns: importer.ColumnSpec{
			Date:        r.FormValue("colDate"),
			Description: r.FormValue("colDesc"),
			Amount:      r.FormValue("colAmount"),
			Notes:       r.FormValue("colNotes"),
			Type:        r.FormValue("colType"),
		},
	}
	if d := r.FormValue("delimiter"); d != "" {
		opts.Delimiter = rune(d[0])
	}

	result, err := h.importer.Import(ctx, string(content), opts)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrMissingFile), errors.Is(err, importer.ErrMissingAccount):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, importer.ErrMissingUser):
			WriteError(w, http.StatusUnauthorized, "Authentication required")
		default:
			h.log.WithFields(
				logging.Field{Key: logging.FieldUserID, Value: identity.UserID},
				logging.Field{Key: logging.FieldAccountID, Value: opts.AccountID},
			).WithError(err).Error("Import failed")
			WriteError(w, http.StatusInternalServerError, "Import failed")
		}
		return
	}

	observeImport(result.Inserted, result.DuplicatesSkipped, result.Skipped)
	WriteJSON(w, http.StatusOK, result)
}
