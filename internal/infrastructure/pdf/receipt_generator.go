// Package pdf genera el recibo de pago de una reserva.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Antique Bike House  │  RECIBO + N° reserva + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR: nombre, email, teléfono, punto de encuentro     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Producto | Precio                                 │
//	│  TOTAL PAGADO                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: transacción + QR                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

var _ booking.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const storeName = "Antique Bike House"

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa booking.ReceiptPDFGenerator con Maroto v2.
type ReceiptGenerator struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewReceiptGenerator construye el generador; los montos se muestran en USD.
func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{
		printer: message.NewPrinter(language.AmericanEnglish),
		unit:    currency.USD,
	}
}

// GenerateReceiptPDF genera el recibo de una reserva pagada y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, b *entity.Booking, p *entity.Payment) ([]byte, error) {
	if b == nil || p == nil {
		return nil, fmt.Errorf("pdf: reserva y pago son requeridos")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pago", true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(b, p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(b, g.money(b.Price))...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(g.money(p.Amount)))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// money formatea con símbolo y separadores de miles, ej. "$ 1,250.00".
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprint(currency.Symbol(g.unit.Amount(f)))
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(b *entity.Booking, p *entity.Payment) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Bicicletas usadas y de colección", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Reserva "+b.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+p.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func buyerRow(b *entity.Booking) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(b.BuyerName, b.BuyerEmail), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Encuentro: %s",
				b.BuyerEmail,
				nonEmpty(b.Phone, "-"),
				nonEmpty(b.MeetLocation, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func detailRows(b *entity.Booking, price string) []core.Row {
	header := row.New(7).Add(
		col.New(9).Add(text.New("Producto", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(3).Add(text.New("Precio", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
	)
	detail := row.New(7).Add(
		col.New(9).Add(text.New(nonEmpty(b.ProductName, b.ProductRef), props.Text{Size: 9, Top: 1})),
		col.New(3).Add(text.New(price, props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
	return []core.Row{header, detail}
}

func totalRow(amount string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL PAGADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(amount, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func footerRow(p *entity.Payment) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(p.TransactionID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Transacción", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New(p.TransactionID, props.Text{Size: 8, Top: 9, Left: 3, Color: colorGray}),
			text.New("Conserve este recibo como comprobante del pago de su reserva.", props.Text{
				Size: 7, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
