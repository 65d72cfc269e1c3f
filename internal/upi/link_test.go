package upi

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildFromPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		want    string
		wantErr bool
	}{
		{
			name:  "valid number starting with 9",
			phone: "9876543210",
			want:  "upi://pay?pa=9876543210@upi",
		},
		{
			name:  "valid number starting with 6",
			phone: "6123456789",
			want:  "upi://pay?pa=6123456789@upi",
		},
		{
			name:    "leading digit below 6",
			phone:   "1234567890",
			wantErr: true,
		},
		{
			name:    "too short",
			phone:   "987654321",
			wantErr: true,
		},
		{
			name:    "too long",
			phone:   "98765432100",
			wantErr: true,
		},
		{
			name:    "non-digits",
			phone:   "98765abcde",
			wantErr: true,
		},
		{
			name:    "empty",
			phone:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFromPhone(tt.phone)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPhoneNumber) {
					t.Fatalf("BuildFromPhone(%q) error = %v, want ErrInvalidPhoneNumber", tt.phone, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildFromPhone(%q) unexpected error: %v", tt.phone, err)
			}
			if got != tt.want {
				t.Errorf("BuildFromPhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestComposeProviderURI(t *testing.T) {
	const raw = "upi://pay?pa=abc@upi"

	t.Run("google pay", func(t *testing.T) {
		got, err := ComposeProviderURI(raw, ProviderGooglePay, 100, "lunch")
		if err != nil {
			t.Fatalf("ComposeProviderURI() error: %v", err)
		}
		if !strings.HasPrefix(got, "tez://upi/pay") {
			t.Errorf("URI %q does not begin with Google Pay scheme", got)
		}
		for _, part := range []string{"pa=abc@upi", "am=100", "tn=lunch", "cu=INR"} {
			if !strings.Contains(got, part) {
				t.Errorf("URI %q missing %q", got, part)
			}
		}
	})

	t.Run("phonepe keeps merchant params", func(t *testing.T) {
		got, err := ComposeProviderURI("upi://pay?pa=merchant@okaxis&pn=Shop", ProviderPhonePe, 49.50, "")
		if err != nil {
			t.Fatalf("ComposeProviderURI() error: %v", err)
		}
		want := "phonepe://upi/pay?pa=merchant@okaxis&pn=Shop&am=49.5&tn=&cu=INR"
		if got != want {
			t.Errorf("ComposeProviderURI() = %q, want %q", got, want)
		}
	})

	t.Run("paytm scheme", func(t *testing.T) {
		got, err := ComposeProviderURI(raw, ProviderPaytm, 1, "x")
		if err != nil {
			t.Fatalf("ComposeProviderURI() error: %v", err)
		}
		if !strings.HasPrefix(got, "paytmmp://pay?") {
			t.Errorf("URI %q does not begin with Paytm scheme", got)
		}
	})

	t.Run("note is percent encoded", func(t *testing.T) {
		got, err := ComposeProviderURI(raw, ProviderGooglePay, 10, "team lunch & drinks")
		if err != nil {
			t.Fatalf("ComposeProviderURI() error: %v", err)
		}
		if !strings.Contains(got, "tn=team%20lunch%20%26%20drinks") {
			t.Errorf("URI %q does not carry encoded note", got)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := ComposeProviderURI(raw, Provider("unknown-provider"), 100, "lunch")
		if !errors.Is(err, ErrUnknownProvider) {
			t.Errorf("error = %v, want ErrUnknownProvider", err)
		}
	})

	t.Run("missing scheme marker", func(t *testing.T) {
		_, err := ComposeProviderURI("https://example.com/pay", ProviderGooglePay, 100, "")
		if !errors.Is(err, ErrInvalidMerchantURI) {
			t.Errorf("error = %v, want ErrInvalidMerchantURI", err)
		}
	})

	t.Run("non positive amount", func(t *testing.T) {
		_, err := ComposeProviderURI(raw, ProviderGooglePay, 0, "")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("error = %v, want ErrInvalidAmount", err)
		}
	})
}

func TestProvidersTableIsClosed(t *testing.T) {
	table := Providers()
	if len(table) != 3 {
		t.Fatalf("provider table has %d entries, want 3", len(table))
	}
	for _, p := range []Provider{ProviderGooglePay, ProviderPhonePe, ProviderPaytm} {
		cfg, ok := table[p]
		if !ok {
			t.Errorf("provider %q missing from table", p)
			continue
		}
		if cfg.Name == "" || cfg.Scheme == "" {
			t.Errorf("provider %q has incomplete config %+v", p, cfg)
		}
	}

	// Mutating the returned copy must not affect the real table.
	table[ProviderPaytm] = ProviderConfig{}
	if Providers()[ProviderPaytm].Scheme != "paytmmp://pay" {
		t.Error("Providers() returned a reference to the internal table")
	}
}
