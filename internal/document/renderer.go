package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

const (
	DefaultLogoTimeout = 5 * time.Second
	maxLogoBytes       = 2 << 20

	pageMargin = 15.0
	lineHeight = 6.0
)

var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 8, "C"},
	{"Item", 62, "L"},
	{"Qty", 18, "R"},
	{"Unit Price", 28, "R"},
	{"Tax %", 16, "R"},
	{"Disc %", 16, "R"},
	{"Amount", 32, "R"},
}

//go:generate mockgen -source=renderer.go -destination=mock/renderer_mock.go -package=mock
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

type renderer struct {
	client *http.Client
	logger *zap.Logger
}

// NewRenderer builds an fpdf renderer. The logo is fetched with logoTimeout;
// a zero value uses DefaultLogoTimeout.
func NewRenderer(logoTimeout time.Duration, logger ...*zap.Logger) Renderer {
	l := zap.L().Named("document.renderer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.renderer")
	}
	if logoTimeout <= 0 {
		logoTimeout = DefaultLogoTimeout
	}
	return &renderer{
		client: &http.Client{Timeout: logoTimeout},
		logger: l,
	}
}

func (r *renderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)
	pdf.SetTitle(doc.Title+" "+doc.Number, true)
	pdf.SetCreationDate(doc.Date)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	r.writeHeader(ctx, pdf, tr, doc)
	writeParties(pdf, tr, doc.From, doc.To)
	writeItems(pdf, tr, doc)
	writeTotals(pdf, tr, doc.Totals)
	writeParagraph(pdf, tr, "Notes", doc.Notes)
	writeParagraph(pdf, tr, "Terms & Conditions", doc.Terms)

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *renderer) writeHeader(ctx context.Context, pdf *fpdf.Fpdf, tr func(string) string, doc Document) {
	top := pdf.GetY()

	if doc.LogoURL != "" {
		if name, ok := r.registerLogo(ctx, pdf, doc.LogoURL); ok {
			pdf.ImageOptions(name, pageMargin, top, 0, 18, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	pdf.SetXY(110, top)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(85, 9, tr(strings.ToUpper(doc.Title)), "", 2, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	meta := append([]Field{{Label: "No.", Value: doc.Number}, {Label: "Date", Value: doc.Date.Format("02 Jan 2006")}}, doc.Meta...)
	for _, f := range meta {
		if f.Value == "" {
			continue
		}
		pdf.SetX(110)
		pdf.CellFormat(85, 5, tr(f.Label+": "+f.Value), "", 2, "R", false, 0, "")
	}

	if y := top + 22; pdf.GetY() < y {
		pdf.SetY(y)
	}
	pdf.Ln(4)
}

// registerLogo fetches the logo and registers it with pdf. Any failure is
// logged and the document renders without a logo.
func (r *renderer) registerLogo(ctx context.Context, pdf *fpdf.Fpdf, logoURL string) (string, bool) {
	data, err := r.fetchLogo(ctx, logoURL)
	if err != nil {
		r.logger.Warn("fetch document logo failed", zap.String("url", logoURL), zap.Error(err))
		return "", false
	}

	imageType := ""
	switch mimetype.Detect(data).String() {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		r.logger.Warn("unsupported document logo type", zap.String("url", logoURL))
		return "", false
	}

	pdf.RegisterImageOptionsReader("logo", fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}, bytes.NewReader(data))
	if pdf.Err() {
		r.logger.Warn("register document logo failed", zap.String("url", logoURL), zap.Error(pdf.Error()))
		pdf.ClearError()
		return "", false
	}
	return "logo", true
}

func (r *renderer) fetchLogo(ctx context.Context, logoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
}

func writeParties(pdf *fpdf.Fpdf, tr func(string) string, from, to Party) {
	top := pdf.GetY()
	bottom := top

	for i, p := range []Party{from, to} {
		if p.Name == "" {
			continue
		}
		x := pageMargin + float64(i)*92
		pdf.SetXY(x, top)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(88, 5, tr(strings.ToUpper(p.Heading)), "", 2, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(88, 6, tr(p.Name), "", 2, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, line := range p.Lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			pdf.CellFormat(88, 5, tr(line), "", 2, "L", false, 0, "")
		}
		if y := pdf.GetY(); y > bottom {
			bottom = y
		}
	}

	pdf.SetXY(pageMargin, bottom)
	pdf.Ln(6)
}

func writeItems(pdf *fpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(52, 58, 64)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range itemColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(33, 37, 41)
	for i, item := range doc.Items {
		name := item.Name
		if item.Description != "" {
			name += " - " + item.Description
		}
		if len(name) > 60 {
			name = name[:57] + "..."
		}

		values := []string{
			fmt.Sprintf("%d", i+1),
			name,
			item.Quantity.String(),
			item.UnitPrice.StringFixed(2),
			item.Tax.String(),
			item.Discount.String(),
			item.Amount.StringFixed(2),
		}
		fill := i%2 == 1
		pdf.SetFillColor(248, 249, 250)
		for j, col := range itemColumns {
			pdf.CellFormat(col.width, lineHeight, tr(values[j]), "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(doc.Items) == 0 {
		pdf.CellFormat(180, lineHeight, "No items", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
}

func writeTotals(pdf *fpdf.Fpdf, tr func(string) string, totals []Field) {
	for i, t := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetX(115)
		pdf.CellFormat(40, lineHeight, tr(t.Label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, lineHeight, tr(t.Value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeParagraph(pdf *fpdf.Fpdf, tr func(string) string, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight, tr(heading), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(body), "", "L", false)
	pdf.Ln(3)
}
