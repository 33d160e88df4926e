package pdf

import "context"

// Provider builds the blank invoice template that overlays are stamped on.
type Provider interface {
	GenerateTemplate(ctx context.Context, data TemplateData) ([]byte, error)
}

// TemplateData is the static text printed on every invoice.
type TemplateData struct {
	SellerName    string
	SellerAddress string
	SellerContact string
	Footer        string
}

func DefaultTemplateData() TemplateData {
	return TemplateData{
		SellerName: "Sales Invoice",
		Footer:     "Thank you for your business.",
	}
}
