// Package main is an interactive terminal client for the simulated ledger.
// Mutations are confirmed at the prompt the way a wallet popup would.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/metadata"
	"skillforge/internal/certificate/models"
	"skillforge/internal/certificate/service"
	"skillforge/internal/certificate/store"
	"skillforge/internal/platform/config"
	"skillforge/internal/platform/logger"
)

const help = `commands:
  connect              connect the simulated wallet
  disconnect           drop the wallet session
  issue                issue a certificate (prompts for fields)
  verify <id>          verify a certificate
  revoke <id>          revoke a certificate
  list [address]       list certificates owned by address (default: wallet)
  metadata <id>        show the metadata document
  help | quit`

type demo struct {
	ledger *service.Service
	term   *adapters.TerminalConfirmer
	out    io.Writer
	cfg    config.Server
}

func main() {
	cfg := config.FromEnv()
	log := logger.New("error")

	term := adapters.NewTerminalConfirmer(os.Stdin, os.Stdout)
	certs := store.New()
	if cfg.Ledger.SeedDemo {
		certs.Seed(store.DemoCertificates(cfg.Ledger.WalletAddress)...)
	}
	ledger, err := service.New(certs,
		service.WithWallet(adapters.NewStaticWallet("simulated", cfg.Ledger.WalletAddress)),
		service.WithConfirmer(term),
		service.WithMetadataStore(metadata.NewInMemoryStore()),
		service.WithLatency(service.DefaultLatency().Scale(cfg.Ledger.LatencyScale)),
		service.WithIssuerName(cfg.Ledger.IssuerName),
		service.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := &demo{ledger: ledger, term: term, out: os.Stdout, cfg: cfg}
	fmt.Fprintln(d.out, "SkillForge certificate ledger (simulated, Sepolia)")
	fmt.Fprintln(d.out, help)
	d.loop(ctx)
}

func (d *demo) loop(ctx context.Context) {
	for ctx.Err() == nil {
		fmt.Fprint(d.out, "\n> ")
		line, err := d.term.ReadLine(ctx)
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}
		switch fields[0] {
		case "connect":
			d.connect(ctx)
		case "disconnect":
			d.ledger.Disconnect(ctx)
			fmt.Fprintln(d.out, "disconnected")
		case "issue":
			d.issue(ctx)
		case "verify":
			d.verify(ctx, arg)
		case "revoke":
			d.revoke(ctx, arg)
		case "list":
			d.list(ctx, arg)
		case "metadata":
			d.metadata(ctx, arg)
		case "help":
			fmt.Fprintln(d.out, help)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(d.out, "unknown command %q\n", fields[0])
		}
	}
}

func (d *demo) connect(ctx context.Context) {
	session, err := d.ledger.Connect(ctx)
	if err != nil {
		d.fail(err)
		return
	}
	fmt.Fprintf(d.out, "connected %s (%s, chain %d)\n", models.FormatAddress(session.Address), session.Provider, session.ChainID)
}

func (d *demo) issue(ctx context.Context) {
	req := models.IssueRequest{
		RecipientAddress: d.ask(ctx, "recipient address"),
		RecipientName:    d.ask(ctx, "recipient name"),
		RecipientEmail:   d.ask(ctx, "recipient email"),
		CourseName:       d.ask(ctx, "course name"),
		CourseID:         d.ask(ctx, "course id"),
		Skills:           models.ParseSkills(d.ask(ctx, "skills (comma separated)")),
		Grade:            d.ask(ctx, "grade (blank for Pass)"),
	}
	if raw := d.ask(ctx, "expiration date YYYY-MM-DD (blank for none)"); raw != "" {
		exp, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			fmt.Fprintf(d.out, "invalid date %q\n", raw)
			return
		}
		req.ExpirationDate = &exp
	}

	fmt.Fprintln(d.out, "submitting transaction...")
	receipt, err := d.ledger.Issue(ctx, req)
	if err != nil {
		d.fail(err)
		return
	}
	fmt.Fprintf(d.out, "issued %s in block %d\n  tx: %s\n  %s\n  share: %s\n",
		receipt.CertificateID,
		receipt.BlockNumber,
		models.FormatTransactionHash(receipt.TransactionHash),
		models.ExplorerURL(receipt.TransactionHash, models.SepoliaChainID),
		models.VerificationURL(d.cfg.PublicBaseURL, receipt.CertificateID),
	)
}

func (d *demo) verify(ctx context.Context, id string) {
	if id == "" {
		fmt.Fprintln(d.out, "usage: verify <id>")
		return
	}
	result := d.ledger.Verify(ctx, id)
	if result.Certificate == nil {
		fmt.Fprintf(d.out, "%s: %s\n", result.Status, result.Error)
		return
	}
	d.printCertificate(*result.Certificate)
	if result.IsValid {
		fmt.Fprintln(d.out, "  status: valid")
		return
	}
	fmt.Fprintf(d.out, "  status: %s (%s)\n", result.Status, result.Error)
}

func (d *demo) revoke(ctx context.Context, id string) {
	if id == "" {
		fmt.Fprintln(d.out, "usage: revoke <id>")
		return
	}
	txHash, err := d.ledger.Revoke(ctx, id)
	if err != nil {
		d.fail(err)
		return
	}
	fmt.Fprintf(d.out, "revoked %s\n  tx: %s\n", id, models.FormatTransactionHash(txHash))
}

func (d *demo) list(ctx context.Context, address string) {
	if address == "" {
		address = d.ledger.Session().Address
	}
	if address == "" {
		address = d.cfg.Ledger.WalletAddress
	}
	certs, err := d.ledger.ListByOwner(ctx, address)
	if err != nil {
		d.fail(err)
		return
	}
	fmt.Fprintf(d.out, "%d certificate(s) for %s\n", len(certs), models.FormatAddress(address))
	for _, c := range certs {
		d.printCertificate(c)
	}
}

func (d *demo) metadata(ctx context.Context, id string) {
	doc, err := d.ledger.Metadata(ctx, id)
	if err != nil {
		d.fail(err)
		return
	}
	fmt.Fprintln(d.out, doc.Name)
	for _, a := range doc.Attributes {
		fmt.Fprintf(d.out, "  %s: %s\n", a.TraitType, a.Value)
	}
}

func (d *demo) printCertificate(c models.Certificate) {
	fmt.Fprintf(d.out, "- %s  %s  (%s)\n  recipient: %s %s\n  issued: %s",
		c.ID, c.CourseName, c.CourseID,
		c.RecipientName, models.FormatAddress(c.RecipientAddress),
		c.IssueDate.Format(metadata.DateLayout),
	)
	if c.ExpirationDate != nil {
		fmt.Fprintf(d.out, "  expires: %s", c.ExpirationDate.Format(metadata.DateLayout))
	}
	fmt.Fprintf(d.out, "\n  skills: %s  grade: %s\n", models.SkillsString(c.Skills), c.Grade)
}

func (d *demo) ask(ctx context.Context, prompt string) string {
	fmt.Fprintf(d.out, "  %s: ", prompt)
	line, _ := d.term.ReadLine(ctx)
	return strings.TrimSpace(line)
}

func (d *demo) fail(err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(d.out, "cancelled")
		return
	}
	fmt.Fprintf(d.out, "error: %v\n", err)
}
