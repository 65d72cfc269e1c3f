// Package upi builds UPI payment deep links from scanned QR payloads or
// phone numbers. Everything here is a pure string transformation; handing
// the final URI to the OS dispatcher is the caller's job.
package upi

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// SchemeMarker is the generic prefix every merchant payment URI carries,
// whether it came from a QR scan or was synthesized from a phone number.
const SchemeMarker = "upi://pay"

const currencyCode = "INR"

var (
	ErrInvalidPhoneNumber = errors.New("phone number must be 10 digits starting with 6-9")
	ErrInvalidMerchantURI = errors.New("merchant URI must begin with " + SchemeMarker)
	ErrUnknownProvider    = errors.New("unknown payment provider")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
)

// Indian mobile numbers: 10 digits, leading digit 6-9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// BuildFromPhone synthesizes a minimal merchant payment URI from a phone
// number by treating <phone>@upi as the virtual payment address.
func BuildFromPhone(phone string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhoneNumber
	}
	return fmt.Sprintf("%s?pa=%s@upi", SchemeMarker, phone), nil
}

// ComposeProviderURI turns a generic merchant URI into a wallet-specific
// deep link: the upi://pay marker is replaced by the provider's scheme
// and amount, encoded note and currency are appended as query
// parameters.
func ComposeProviderURI(rawMerchantURI string, provider Provider, amount float64, note string) (string, error) {
	if !strings.HasPrefix(rawMerchantURI, SchemeMarker) {
		return "", ErrInvalidMerchantURI
	}
	cfg, ok := providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	params := strings.TrimPrefix(rawMerchantURI, SchemeMarker)
	return fmt.Sprintf("%s%s&am=%s&tn=%s&cu=%s",
		cfg.Scheme, params, formatAmount(amount), encodeNote(note), currencyCode), nil
}

// formatAmount renders the amount without an exponent or trailing
// zeros, the way the app forwards what the user typed.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// encodeNote percent-encodes the free-text note. Spaces become %20
// rather than +, matching what installed wallet apps expect in the tn
// parameter.
func encodeNote(note string) string {
	return strings.ReplaceAll(url.QueryEscape(note), "+", "%20")
}
