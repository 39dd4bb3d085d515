// Package payment describes the available payment methods. Nothing here moves money:
// card payments redirect to an externally hosted checkout and the other methods are
// static instructions shown to the buyer.
package payment

import (
	"fmt"

	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	MethodCard   = "card"
	MethodBank   = "bank"
	MethodCrypto = "crypto"
	MethodWallet = "wallet"
)

// Config holds the operator-supplied payment settings. Empty values disable the
// corresponding method or detail line.
type Config struct {
	Amount          string
	CardCheckoutURL string

	BankName   string
	BankHolder string
	BankCLABE  string

	BTCAddress  string
	ETHAddress  string
	USDTAddress string

	NetellerEmail string
	SkrillEmail   string
}

type Catalog struct {
	methods []domain.PaymentMethod
	byID    map[string]int
}

func NewCatalog(cfg Config) *Catalog {
	c := &Catalog{byID: make(map[string]int)}

	if cfg.CardCheckoutURL != "" {
		c.add(domain.PaymentMethod{
			ID:          MethodCard,
			Name:        "Tarjeta de crédito / débito",
			Kind:        domain.PaymentKindRedirect,
			Amount:      cfg.Amount,
			RedirectURL: cfg.CardCheckoutURL,
			Note:        "Serás redirigido a una página de pago segura.",
		})
	}

	if cfg.BankCLABE != "" {
		c.add(domain.PaymentMethod{
			ID:     MethodBank,
			Name:   "Transferencia bancaria",
			Kind:   domain.PaymentKindDetails,
			Amount: cfg.Amount,
			Details: compact(
				detail("Banco", cfg.BankName, false),
				detail("Titular", cfg.BankHolder, false),
				detail("CLABE", cfg.BankCLABE, true),
			),
			Note: "Envía el comprobante de transferencia para activar tu descarga.",
		})
	}

	if crypto := compact(
		detail("Bitcoin (BTC)", cfg.BTCAddress, true),
		detail("Ethereum (ETH)", cfg.ETHAddress, true),
		detail("USDT (TRC20)", cfg.USDTAddress, true),
	); len(crypto) > 0 {
		c.add(domain.PaymentMethod{
			ID:      MethodCrypto,
			Name:    "Criptomonedas",
			Kind:    domain.PaymentKindDetails,
			Amount:  cfg.Amount,
			Details: crypto,
			Note:    "Verifica la red antes de enviar. Los envíos a la red equivocada no se pueden recuperar.",
		})
	}

	if wallets := compact(
		detail("Neteller", cfg.NetellerEmail, true),
		detail("Skrill", cfg.SkrillEmail, true),
	); len(wallets) > 0 {
		c.add(domain.PaymentMethod{
			ID:      MethodWallet,
			Name:    "Billeteras digitales",
			Kind:    domain.PaymentKindDetails,
			Amount:  cfg.Amount,
			Details: wallets,
		})
	}

	return c
}

func (c *Catalog) add(m domain.PaymentMethod) {
	c.byID[m.ID] = len(c.methods)
	c.methods = append(c.methods, m)
}

// List returns the configured methods in display order.
func (c *Catalog) List() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, len(c.methods))
	copy(out, c.methods)
	return out
}

func (c *Catalog) Get(id string) (domain.PaymentMethod, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.PaymentMethod{}, fmt.Errorf("%w: %q", domain.ErrPaymentMethodNotFound, id)
	}
	return c.methods[idx], nil
}

// CheckoutURL returns the hosted checkout for a redirect method.
func (c *Catalog) CheckoutURL(id string) (string, error) {
	m, err := c.Get(id)
	if err != nil {
		return "", err
	}
	if m.Kind != domain.PaymentKindRedirect {
		return "", fmt.Errorf("%w: %q", domain.ErrPaymentMethodNoCheckout, id)
	}
	return m.RedirectURL, nil
}

func detail(label, value string, copyable bool) domain.PaymentDetail {
	return domain.PaymentDetail{Label: label, Value: value, Copyable: copyable}
}

func compact(details ...domain.PaymentDetail) []domain.PaymentDetail {
	out := make([]domain.PaymentDetail, 0, len(details))
	for _, d := range details {
		if d.Value != "" {
			out = append(out, d)
		}
	}
	return out
}
