package metrics

import "github.com/prometheus/client_golang/prometheus"

// POS holds the business counters. A nil *POS is valid and records nothing.
type POS struct {
	kotsFired      prometheus.Counter
	kotItems       prometheus.Counter
	invoices       prometheus.Counter
	invoiceAmount  *prometheus.CounterVec
	shiftsOpened   prometheus.Counter
	shiftsClosed   prometheus.Counter
	tableTransfers prometheus.Counter
}

func NewPOS(reg prometheus.Registerer) (*POS, error) {
	m := &POS{
		kotsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_kots_fired_total",
			Help: "Kitchen order tickets sent to the kitchen.",
		}),
		kotItems: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_kot_items_total",
			Help: "Item lines fired on kitchen order tickets.",
		}),
		invoices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_invoices_total",
			Help: "POS invoices submitted.",
		}),
		invoiceAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_invoice_amount_total",
			Help: "Amount collected on submitted invoices.",
		}, []string{"mode_of_payment"}),
		shiftsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_shifts_opened_total",
			Help: "POS opening entries created.",
		}),
		shiftsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_shifts_closed_total",
			Help: "POS opening entries closed.",
		}),
		tableTransfers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_table_transfers_total",
			Help: "Orders moved between tables.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.kotsFired, m.kotItems, m.invoices, m.invoiceAmount, m.shiftsOpened, m.shiftsClosed, m.tableTransfers,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *POS) KOTFired(items int) {
	if m == nil {
		return
	}
	m.kotsFired.Inc()
	m.kotItems.Add(float64(items))
}

func (m *POS) InvoiceCreated(mode string, amount float64) {
	if m == nil {
		return
	}
	m.invoices.Inc()
	m.invoiceAmount.WithLabelValues(mode).Add(amount)
}

func (m *POS) ShiftOpened() {
	if m == nil {
		return
	}
	m.shiftsOpened.Inc()
}

func (m *POS) ShiftClosed() {
	if m == nil {
		return
	}
	m.shiftsClosed.Inc()
}

func (m *POS) TableTransferred() {
	if m == nil {
		return
	}
	m.tableTransfers.Inc()
}
