package handlers

// Mailer sends the account lifecycle emails. Delivery is best-effort from the
// handlers' perspective: failures are logged, never surfaced to the caller.
type Mailer interface {
	SendAccountConfirmation(name, email, token string) error
	SendPasswordResetToken(name, email, token string) error
}
