package report_handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	resultsService "github.com/IT-Nick/testportal/internal/domain/results/service"
	"github.com/IT-Nick/testportal/internal/infra/report"
)

// ReportHandler обработчик GET /results/{id}/report, PDF по одной попытке
type ReportHandler struct {
	provider      identity.Provider
	resultService *resultsService.ResultService
}

// NewReportHandler создает новый экземпляр обработчика
func NewReportHandler(provider identity.Provider, resultService *resultsService.ResultService) *ReportHandler {
	return &ReportHandler{provider: provider, resultService: resultService}
}

// ServeHTTP метод для обработки запроса
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.resultService.Result(r.Context(), h.provider, r.PathValue("id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	// рендерим в буфер, чтобы ошибка не пришла после заголовков
	var buf bytes.Buffer
	if err := report.GeneratePDFReport(*res, identity.DisplayName(res.StudentID), &buf); err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.pdf"`, res.SubmissionID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
