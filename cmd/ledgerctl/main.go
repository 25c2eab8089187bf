// Command ledgerctl builds, signs and submits ledger invocations.
//
//	ledgerctl [flags] create <id> <amount> <creator-public-key.pem>
//	ledgerctl [flags] release <id> <amount>
//	ledgerctl [flags] assign <currency> <owner=amount>...
//	ledgerctl [flags] lock|unlock <owner> <currency> <amount> [orderId]
//	ledgerctl [flags] exchange <matches.json>
//
// Flags may also be set through LEDGERCTL_* environment variables.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	"github.com/SscSPs/exchange_ledger/internal/dto"
	"github.com/SscSPs/exchange_ledger/internal/platform/identity"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	flags := pflag.NewFlagSet("ledgerctl", pflag.ContinueOnError)
	flags.String("server", "http://localhost:8080", "ledger server base URL")
	flags.String("token", "", "bearer token for the server")
	flags.String("key", "", "PEM file with the caller's Ed25519 private key")
	flags.String("owner-encoding", identity.EncodingBase64, "encoding of owner identifiers (base64|raw)")
	flags.String("src-method", "", "source method reported back in lock/unlock results")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.Bool("dry-run", false, "print the signed invocation instead of submitting it")
	if err := flags.Parse(argv); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("LEDGERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	args := flags.Args()
	if len(args) == 0 {
		return fmt.Errorf("missing command (create, release, assign, lock, unlock, exchange)")
	}

	b := newBuilder(v.GetString("owner-encoding"), v.GetString("src-method"))
	inv, err := build(b, args[0], args[1:])
	if err != nil {
		return err
	}

	if keyFile := v.GetString("key"); keyFile != "" {
		pemBytes, err := os.ReadFile(keyFile)
		if err != nil {
			return err
		}
		signer, err := identity.NewSignerFromPEM(pemBytes)
		if err != nil {
			return err
		}
		if inv, err = sign(inv, signer); err != nil {
			return err
		}
	}

	if v.GetBool("dry-run") {
		return printJSON(dto.InvokeRequest{Function: inv.Function, Args: inv.Args, Signature: inv.Signature})
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()

	resp, status, err := newClient(v.GetString("server"), v.GetString("token"), v.GetDuration("timeout")).invoke(ctx, inv)
	if err != nil {
		return err
	}
	if err := printJSON(resp); err != nil {
		return err
	}
	if resp.Outcome != domain.OutcomeOK {
		return fmt.Errorf("%s (HTTP %d)", resp.Outcome, status)
	}
	return nil
}

func build(b *builder, cmd string, args []string) (domain.Invocation, error) {
	switch cmd {
	case "create":
		if len(args) != 3 {
			return domain.Invocation{}, fmt.Errorf("usage: create <id> <amount> <creator-public-key.pem>")
		}
		pemBytes, err := os.ReadFile(args[2])
		if err != nil {
			return domain.Invocation{}, err
		}
		return b.createCurrency(args[0], args[1], pemBytes)
	case "release":
		if len(args) != 2 {
			return domain.Invocation{}, fmt.Errorf("usage: release <id> <amount>")
		}
		return b.releaseCurrency(args[0], args[1])
	case "assign":
		if len(args) < 2 {
			return domain.Invocation{}, fmt.Errorf("usage: assign <currency> <owner=amount>...")
		}
		return b.assignCurrency(args[0], args[1:])
	case "lock", "unlock":
		if len(args) < 3 || len(args) > 4 {
			return domain.Invocation{}, fmt.Errorf("usage: %s <owner> <currency> <amount> [orderId]", cmd)
		}
		orderID := ""
		if len(args) == 4 {
			orderID = args[3]
		}
		return b.lock(cmd == "lock", args[0], args[1], args[2], orderID)
	case "exchange":
		if len(args) != 1 {
			return domain.Invocation{}, fmt.Errorf("usage: exchange <matches.json>")
		}
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return domain.Invocation{}, err
		}
		return b.exchange(raw)
	default:
		return domain.Invocation{}, fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
