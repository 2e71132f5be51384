package export

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

const (
	documentFont     = "Arial"
	titleFontSize    = 16
	bodyFontSize     = 12
	titleLineHeight  = 12
	bodyLineHeight   = 8
	sectionSpacingMM = 4
)

// Data fixa nos metadados: o mesmo conteúdo gera sempre o mesmo arquivo
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type DocumentWriter struct{}

func NewDocumentWriter() *DocumentWriter {
	return &DocumentWriter{}
}

// Write grava o documento paginado em A4, com o título centralizado na primeira página
func (w *DocumentWriter) Write(path string, document domain.Document) error {
	return utils.WriteFileAtomic(path, func(out io.Writer) error {
		return RenderDocument(out, document)
	})
}

func RenderDocument(out io.Writer, document domain.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(document.Title, true)
	pdf.SetAutoPageBreak(true, 15)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont(documentFont, "B", titleFontSize)
	pdf.CellFormat(0, titleLineHeight, tr(document.Title), "", 1, "C", false, 0, "")
	pdf.Ln(sectionSpacingMM)

	pdf.SetFont(documentFont, "", bodyFontSize)
	for _, line := range document.Lines {
		if line == "" {
			pdf.Ln(sectionSpacingMM)
			continue
		}
		pdf.CellFormat(0, bodyLineHeight, tr(line), "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}

	return pdf.Output(out)
}
