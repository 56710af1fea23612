package billing

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"time"

	"fynix/internal/domain"
)

const numberPrefix = "INV"

var (
	tokenPattern  = regexp.MustCompile(`^\d{4}$`)
	numberPattern = regexp.MustCompile(`^INV-(\d{4})(\d{2})-(\d{4})$`)
)

// NewSessionToken draws a 4-digit token for one editing session. It is not
// a global counter; uniqueness across sessions is enforced by storage.
func NewSessionToken(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("billing.NewSessionToken: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// AssignNumber formats INV-<YYYYMM>-<token>. Re-assigning after an issue date
// change only alters the period segment.
func AssignNumber(issueDate time.Time, token string) (string, error) {
	if !tokenPattern.MatchString(token) {
		return "", domain.ErrInvalidSessionToken
	}
	return fmt.Sprintf("%s-%04d%02d-%s", numberPrefix, issueDate.Year(), int(issueDate.Month()), token), nil
}

// ParseNumber splits an invoice number into its period (YYYYMM) and token.
func ParseNumber(number string) (period, token string, ok bool) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", "", false
	}
	return m[1] + m[2], m[3], true
}
