package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$12.50", FormatCents(1250))
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "-$3.00", FormatCents(-300))
}

func TestRenderEnrollmentConfirmation(t *testing.T) {
	body := RenderEnrollmentConfirmation("Jo <script>", EnrollmentSummary{
		EnrollmentID:   40,
		TermName:       "Term 1 2026",
		Classes:        []string{"Gentle Yoga", "Tai Chi & Qigong"},
		TotalCents:     9600,
		CreditCents:    1000,
		AmountDueCents: 8600,
		Status:         "PENDING_PAYMENT",
	})
	assert.Contains(t, body, "Jo &lt;script&gt;")
	assert.Contains(t, body, "Tai Chi &amp; Qigong")
	assert.Contains(t, body, "reference #40")
	assert.Contains(t, body, "held until payment of $86.00")
}

func TestRenderCancellationDecision(t *testing.T) {
	approved := RenderCancellationDecision("Jo", CancellationDecision{ClassName: "Gentle Yoga", SessionDate: "2026-02-10", Approved: true, CreditCents: 1200})
	assert.Contains(t, approved, "has been approved")
	assert.Contains(t, approved, "$12.00 has been added")

	rejected := RenderCancellationDecision("Jo", CancellationDecision{ClassName: "Gentle Yoga", SessionDate: "2026-02-10", Notes: "Too late"})
	assert.Contains(t, rejected, "could not be approved")
	assert.Contains(t, rejected, "Too late")
}

func TestSendWithoutCredentialsIsNoop(t *testing.T) {
	svc := NewEmailService(SMTPConfig{}, zerolog.Nop())
	assert.NoError(t, svc.SendPAQOutcome("jo@example.org", "Jo", PAQOutcome{Approved: true, ExpiresOn: "2027-02-03"}))
	assert.NoError(t, svc.SendEnrollmentConfirmation("jo@example.org", "Jo", EnrollmentSummary{}))
	assert.NoError(t, svc.SendCancellationDecision("jo@example.org", "Jo", CancellationDecision{}))
}
