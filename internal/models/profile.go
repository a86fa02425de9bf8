package models

const (
	DocStatusDraft     = 0
	DocStatusSubmitted = 1
	DocStatusCancelled = 2
)

// User is the session user resolved from an API token.
type User struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Enabled  bool   `json:"enabled"`
}

type POSProfile struct {
	Name             string
	Company          string
	Warehouse        string
	CostCenter       string
	SellingPriceList string
	Disabled         bool
	Payments         []ProfilePayment
}

type ProfilePayment struct {
	ModeOfPayment  string
	IsDefault      bool
	DefaultAccount string
}

// DefaultPayment returns the payment row flagged as default, else the first one.
func (p *POSProfile) DefaultPayment() (ProfilePayment, bool) {
	if len(p.Payments) == 0 {
		return ProfilePayment{}, false
	}
	for _, pay := range p.Payments {
		if pay.IsDefault {
			return pay, true
		}
	}
	return p.Payments[0], true
}

func (p *POSProfile) Payment(mode string) (ProfilePayment, bool) {
	for _, pay := range p.Payments {
		if pay.ModeOfPayment == mode {
			return pay, true
		}
	}
	return ProfilePayment{}, false
}

func (p *POSProfile) Settings() ProfileSettings {
	s := ProfileSettings{
		Name:             p.Name,
		Company:          p.Company,
		Warehouse:        p.Warehouse,
		CostCenter:       p.CostCenter,
		SellingPriceList: p.SellingPriceList,
		Payments:         make([]PaymentMode, 0, len(p.Payments)),
	}
	for _, pay := range p.Payments {
		s.Payments = append(s.Payments, PaymentMode{ModeOfPayment: pay.ModeOfPayment})
	}
	return s
}

type ProfileSettings struct {
	Name             string        `json:"name"`
	Company          string        `json:"company"`
	Warehouse        string        `json:"warehouse"`
	CostCenter       string        `json:"cost_center"`
	SellingPriceList string        `json:"selling_price_list"`
	Payments         []PaymentMode `json:"payments"`
}

type PaymentMode struct {
	ModeOfPayment string `json:"mode_of_payment"`
}
