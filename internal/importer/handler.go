package importer

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sndot/internal/domain/donors"
	"sndot/internal/domain/recipients"
)

// RegisterRoutes liga os endpoints de importação. São públicos, como no
// sistema original; só o cadastro manual exige sessão.
func RegisterRoutes(r chi.Router, donorsSvc *donors.Service, recipientsSvc *recipients.Service, log *zap.Logger) {
	r.Post("/doadores/importar", importDonorsHandler(donorsSvc, log))
	r.Post("/receptores/importar", importRecipientsHandler(recipientsSvc, log))
}

func importDonorsHandler(svc *donors.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := importPayload(r)
		if err != nil {
			writeImportError(w, err)
			return
		}
		defer body.Close()

		ds, err := ParseDonors(body)
		if err != nil {
			log.Warn("importação de doadores rejeitada", zap.Error(err))
			writeImportError(w, err)
			return
		}

		if err := svc.ImportBatch(r.Context(), ds); err != nil {
			log.Error("falha ao persistir lote de doadores", zap.Error(err))
			writeImportError(w, err)
			return
		}

		log.Info("doadores importados", zap.Int("total", len(ds)))
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem": "Doadores importados com sucesso.",
			"total":    len(ds),
		})
	}
}

func importRecipientsHandler(svc *recipients.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := importPayload(r)
		if err != nil {
			writeImportError(w, err)
			return
		}
		defer body.Close()

		recs, err := ParseRecipients(body)
		if err != nil {
			log.Warn("importação de receptores rejeitada", zap.Error(err))
			writeImportError(w, err)
			return
		}

		if err := svc.ImportBatch(r.Context(), recs); err != nil {
			log.Error("falha ao persistir lote de receptores", zap.Error(err))
			writeImportError(w, err)
			return
		}

		log.Info("receptores importados", zap.Int("total", len(recs)))
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem": "Receptores importados com sucesso.",
			"total":    len(recs),
		})
	}
}

// importPayload aceita o upload multipart do formulário (campo json_file)
// ou o array JSON direto no corpo do request.
func importPayload(r *http.Request) (io.ReadCloser, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		f, _, err := r.FormFile("json_file")
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return r.Body, nil
}

func writeImportError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"mensagem": "Erro ao importar: " + err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
