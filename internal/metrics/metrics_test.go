package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPOS(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPOS(reg)
	require.NoError(t, err)

	m.KOTFired(3)
	m.KOTFired(1)
	m.InvoiceCreated("Cash", 120.5)
	m.InvoiceCreated("Cash", 79.5)
	m.ShiftOpened()
	m.ShiftClosed()
	m.TableTransferred()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.kotsFired))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.kotItems))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.invoices))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.invoiceAmount.WithLabelValues("Cash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shiftsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shiftsClosed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tableTransfers))

	_, err = NewPOS(reg)
	assert.Error(t, err, "second registration on the same registry")
}

func TestPOS_NilIsNoop(t *testing.T) {
	var m *POS
	assert.NotPanics(t, func() {
		m.KOTFired(1)
		m.InvoiceCreated("Cash", 1)
		m.ShiftOpened()
		m.ShiftClosed()
		m.TableTransferred()
	})
}
