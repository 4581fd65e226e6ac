// Package checkout renders the WhatsApp order handoff: a fixed pt-BR
// order message plus the wa.me link the storefront opens. No order is
// persisted server-side.
package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/noespetshop/storefront/internal/domain"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a value the way the storefront shows prices.
func FormatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

// Customer is the checkout form. Name, CPF, Phone, CEP and Street are
// required; everything else may be empty.
type Customer struct {
	Name         string `json:"name"`
	CPF          string `json:"cpf"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Notes        string `json:"notes"`
}

// MissingRequired reports whether any mandatory form field is blank.
func (c Customer) MissingRequired() bool {
	for _, v := range []string{c.Name, c.CPF, c.Phone, c.CEP, c.Street} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Item is one priced cart line ready for rendering.
type Item struct {
	Name      string
	Quantity  int
	LineTotal float64
	Promotion *domain.Promotion
}

// DescribePromotionShort is the one-line promotion label appended to a
// product line.
func DescribePromotionShort(promo *domain.Promotion) string {
	if promo == nil {
		return ""
	}
	switch promo.Type {
	case domain.PromotionPercentage:
		return formatFloat(promo.Percent) + "% de desconto"
	case domain.PromotionTakePay:
		return "Leve " + formatInt(promo.TakeQty) + " e pague " + formatInt(promo.PayQty)
	case domain.PromotionAbove:
		return "Acima de " + formatInt(promo.MinQty) + " un., " + formatFloat(promo.Percent) + "% off"
	default:
		return "Promoção"
	}
}

// BuildOrderMessage assembles the order text sent to the store's
// WhatsApp. The layout is fixed; empty optional fields render blank.
func BuildOrderMessage(storeName string, items []Item, total float64, customer Customer) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(storeName + " - Novo pedido\n\n")
	b.WriteString("Produtos:\n")
	for _, item := range items {
		b.WriteString("- " + strconv.Itoa(item.Quantity) + "x " + item.Name +
			" = " + FormatBRL(item.LineTotal))
		if item.Promotion != nil {
			b.WriteString(" (" + DescribePromotionShort(item.Promotion) + ")")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTotal: " + FormatBRL(total) + "\n\n")

	b.WriteString("Dados do cliente:\n")
	b.WriteString("Nome: " + customer.Name + "\n")
	b.WriteString("CPF: " + customer.CPF + "\n")
	b.WriteString("Telefone: " + customer.Phone + "\n")
	b.WriteString("E-mail: " + customer.Email + "\n\n")

	b.WriteString("Endereço:\n")
	b.WriteString("CEP: " + customer.CEP + "\n")
	b.WriteString("Rua: " + customer.Street + ", Nº: " + customer.Number + "\n")
	b.WriteString("Complemento: " + customer.Complement + "\n")
	b.WriteString("Bairro: " + customer.Neighborhood + "\n")
	b.WriteString("Cidade: " + customer.City + " - " + customer.State + "\n\n")

	notes := customer.Notes
	if notes == "" {
		notes = "-"
	}
	b.WriteString("Observações:\n" + notes + "\n")

	return b.String()
}

// WhatsAppURL builds the wa.me handoff link with the message as the
// pre-filled text.
func WhatsAppURL(storeNumber, orderMessage string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(orderMessage), "+", "%20")
	return "https://wa.me/" + storeNumber + "?text=" + escaped
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
