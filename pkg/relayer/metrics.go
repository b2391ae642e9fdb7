package relayer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/erc7824/nitrolite/relayer/pkg/sign"
)

// Verification outcomes used as the "result" label.
const (
	VerifyResultOK             = "ok"
	VerifyResultMismatch       = "mismatch"
	VerifyResultRecoveryFailed = "recovery_failed"
)

// Metrics contains the Prometheus metrics of a relayer. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	SignaturesProduced prometheus.Counter
	TransactionsSigned prometheus.Counter
	Verifications      *prometheus.CounterVec
}

// NewMetrics initializes and registers relayer metrics with registry, or with
// the default registerer when registry is nil.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		SignaturesProduced: factory.NewCounter(prometheus.CounterOpts{
			Name: "relayer_signatures_produced_total",
			Help: "The total number of digests signed by the relayer key",
		}),
		TransactionsSigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "relayer_transactions_signed_total",
			Help: "The total number of transactions signed by the relayer key",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relayer_signature_verifications_total",
			Help: "The total number of signature verifications by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) recordSignature() {
	if m == nil {
		return
	}
	m.SignaturesProduced.Inc()
}

func (m *Metrics) recordTransaction() {
	if m == nil {
		return
	}
	m.TransactionsSigned.Inc()
}

func (m *Metrics) recordVerification(err error) {
	if m == nil {
		return
	}
	result := VerifyResultOK
	switch {
	case err == nil:
	case errors.Is(err, sign.ErrSignatureMismatch):
		result = VerifyResultMismatch
	default:
		result = VerifyResultRecoveryFailed
	}
	m.Verifications.WithLabelValues(result).Inc()
}
