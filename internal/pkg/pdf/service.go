// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/config"
)

// Service renders order receipts
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	IssuedOn      string
	OrderDate     string
	Order         *client.Order
	Company       CompanyInfo
	Currency      string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// GenerateReceipt renders order as a PDF receipt
func (s *Service) GenerateReceipt(order *client.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.ReceiptHTML(order)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Encoding.Set("utf-8")

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// ReceiptHTML renders the receipt markup for order
func (s *Service) ReceiptHTML(order *client.Order) (string, error) {
	if order == nil {
		return "", fmt.Errorf("order is required")
	}

	number := order.OrderNumber
	if number == "" {
		number = order.ID
	}

	data := ReceiptData{
		ReceiptNumber: "RCT-" + number,
		IssuedOn:      s.now().Format("January 2, 2006"),
		Order:         order,
		Currency:      s.config.Receipt.Currency,
		Company: CompanyInfo{
			Name:    s.config.Receipt.CompanyName,
			Address: s.config.Receipt.CompanyAddress,
			Phone:   s.config.Receipt.CompanyPhone,
			Email:   s.config.Receipt.CompanyEmail,
		},
	}
	if !order.CreatedAt.IsZero() {
		data.OrderDate = order.CreatedAt.Format("January 2, 2006")
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("%.2f", amount)
	},
	"lineTotal": func(item client.OrderItem) float64 {
		return item.Price * float64(item.Quantity)
	},
	"linePV": func(item client.OrderItem) float64 {
		return item.PV * float64(item.Quantity)
	},
}).Parse(receiptHTML))

const receiptHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #15803d;
            margin-bottom: 10px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 10px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
        }
        .items-table .num {
            text-align: right;
            width: 90px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
        </div>
        <div>
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Issued:</strong> {{.IssuedOn}}</p>
            {{if .OrderDate}}<p><strong>Order Date:</strong> {{.OrderDate}}</p>{{end}}
            <p><strong>Payment:</strong> {{.Order.PaymentMethod}}{{if .Order.PaymentStatus}} ({{.Order.PaymentStatus}}){{end}}</p>
            <p><strong>Status:</strong> {{.Order.Status}}</p>
        </div>
    </div>

    <div>
        <div class="section-title">Ship To:</div>
        <p><strong>{{.Order.ShippingAddress.FullName}}</strong></p>
        <p>{{.Order.ShippingAddress.Street}}</p>
        <p>{{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.PostalCode}}</p>
        {{if .Order.ShippingAddress.Country}}<p>{{.Order.ShippingAddress.Country}}</p>{{end}}
        <p>Phone: {{.Order.ShippingAddress.Phone}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">PV</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{$.Currency}}{{money .Price}}</td>
                <td class="num">{{money (linePV .)}}</td>
                <td class="num">{{$.Currency}}{{money (lineTotal .)}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Total PV:</td>
                <td class="amount">{{money .Order.TotalPV}}</td>
            </tr>
            <tr>
                <td class="label">Total:</td>
                <td class="amount">{{.Currency}}{{money .Order.TotalAmount}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for your order!</p>
        {{if .Company.Email}}<p>Questions about this receipt? Contact us at {{.Company.Email}}</p>{{end}}
    </div>
</body>
</html>
`
