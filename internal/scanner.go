package internal

import (
	"context"

	"github.com/benbjohnson/clock"

	"github.com/ormanli/slipscan/internal/app/ledger"
	"github.com/ormanli/slipscan/internal/app/scanner"
	"github.com/ormanli/slipscan/internal/app/slip"
	"github.com/ormanli/slipscan/internal/infra/logging"
	"github.com/ormanli/slipscan/internal/infra/transport/tcp"
)

// Run starts application with the passed configuration.
func Run(ctx context.Context, cfg scanner.Config) error {
	logging.Setup(cfg)

	clk := clock.New()

	service := scanner.NewValidationService(cfg, scanner.NewLedgerService(slip.NewDecoder(cfg.DecoderPolicy), ledger.NewStore(clk)))

	tcpTransport := tcp.NewTransport(cfg, service, clk)

	return tcpTransport.Start(ctx)
}
