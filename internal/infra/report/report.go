package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// GeneratePDFReport пишет PDF-отчёт по оцененной попытке в w.
// Используются встроенные шрифты, текст переводится в cp1252.
func GeneratePDFReport(r model.Result, student string, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(r.TestTitle), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, tr("Test report: "+r.TestTitle), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	status := "submitted"
	if r.TimedOut {
		status = "time expired"
	}
	info := fmt.Sprintf("Student: %s\nSubmitted: %s (%s)\nTime spent: %d:%02d\nScore: %d%% (%d of %d correct)\n",
		student, r.SubmittedAt.Format("2006-01-02 15:04"), status,
		r.TimeSpentSeconds/60, r.TimeSpentSeconds%60,
		r.Score, r.CorrectCount, r.TotalQuestions)
	pdf.MultiCell(0, 8, tr(info), "", "L", false)
	pdf.Ln(4)

	for i, a := range r.Answers {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Question %d:", i+1), "", "L", false)

		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, tr(a.QuestionText), "", "L", false)
		pdf.Ln(2)

		given := a.UserAnswer
		if given == "" {
			given = "(no answer)"
		}
		mark := "incorrect"
		if a.IsCorrect {
			mark = "correct"
		}
		line := fmt.Sprintf("Your answer: %s\nExpected: %s\nResult: %s\n", given, a.CorrectAnswer, mark)
		pdf.MultiCell(0, 8, tr(line), "", "L", false)
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "failed to render pdf")
	}
	return nil
}
