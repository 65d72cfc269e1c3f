package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dvloznov/financehub/internal/identity"
	"github.com/dvloznov/financehub/internal/upi"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "resolve":
		err = runResolve(os.Args[2:])
	case "link":
		err = runLink(os.Args[2:])
	case "compose":
		err = runCompose(os.Args[2:])
	case "providers":
		runProviders()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cli resolve <email>")
	}
	email := fs.Arg(0)
	if !identity.IsValidEmail(email) {
		return fmt.Errorf("invalid email address: %s", email)
	}
	resolver := identity.NewResolver(identity.NewSingleSlot(), nil)
	fmt.Println(resolver.Resolve(email))
	return nil
}

func runLink(args []string) error {
	fs := flag.NewFlagSet("link", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cli link <phone>")
	}
	uri, err := upi.BuildFromPhone(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}

func runCompose(args []string) error {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	provider := fs.String("provider", "google", "payment provider: google, phonepe, paytm")
	merchant := fs.String("merchant", "", "merchant UPI URI (upi://pay?...)")
	amount := fs.Float64("amount", 0, "amount in INR")
	note := fs.String("note", "", "transaction note")
	fs.Parse(args)

	if *merchant == "" {
		return fmt.Errorf("-merchant is required")
	}
	uri, err := upi.ComposeProviderURI(*merchant, upi.Provider(*provider), *amount, *note)
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}

func runProviders() {
	for id, cfg := range upi.Providers() {
		fmt.Printf("%-10s %-12s %s\n", id, cfg.Name, cfg.Scheme)
	}
}

func printUsage() {
	fmt.Println(`financehub cli

Usage:
  cli resolve <email>                       Derive the user id for an email
  cli link <phone>                          Build a upi://pay link for a phone number
  cli compose -provider <p> -merchant <uri> -amount <amt> [-note <text>]
                                            Compose a provider deep link
  cli providers                             List supported payment providers
  cli help                                  Show this help`)
}
