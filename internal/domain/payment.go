package domain

type PaymentKind string

const (
	PaymentKindRedirect PaymentKind = "redirect"
	PaymentKindDetails  PaymentKind = "details"
)

// PaymentDetail is a single copyable line of payment instructions (an account number, an address).
type PaymentDetail struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Copyable bool   `json:"copyable"`
}

// PaymentMethod describes one way of paying for the product. No payment is processed
// here: redirect methods hand off to a hosted checkout, details methods show instructions.
type PaymentMethod struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        PaymentKind     `json:"kind"`
	Amount      string          `json:"amount"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	Details     []PaymentDetail `json:"details,omitempty"`
	Note        string          `json:"note,omitempty"`
}
