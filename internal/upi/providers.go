package upi

// Provider identifies a wallet app the final deep link targets.
type Provider string

const (
	ProviderGooglePay Provider = "google"
	ProviderPhonePe   Provider = "phonepe"
	ProviderPaytm     Provider = "paytm"
)

// ProviderConfig holds the display name and URI scheme prefix for one
// wallet app. The scheme replaces the generic upi://pay marker when the
// final link is composed.
type ProviderConfig struct {
	Name   string `json:"name"`
	Scheme string `json:"scheme"`
}

// providers is the closed configuration table of recognized wallets.
var providers = map[Provider]ProviderConfig{
	ProviderGooglePay: {Name: "Google Pay", Scheme: "tez://upi/pay"},
	ProviderPhonePe:   {Name: "PhonePe", Scheme: "phonepe://upi/pay"},
	ProviderPaytm:     {Name: "Paytm", Scheme: "paytmmp://pay"},
}

// Providers returns a copy of the provider table, keyed by provider id,
// for the API layer to serve to clients.
func Providers() map[Provider]ProviderConfig {
	out := make(map[Provider]ProviderConfig, len(providers))
	for k, v := range providers {
		out[k] = v
	}
	return out
}
