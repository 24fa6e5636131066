// Package setup renders the bridge widget as an interactive terminal form.
package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/puentelabs/puente/internal/domain"
	"github.com/puentelabs/puente/internal/services/bridge"
	"github.com/puentelabs/puente/internal/services/converter"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	quoteStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(special).
			Padding(1)

	mutedStyle = lipgloss.NewStyle().Foreground(subtle)
)

const (
	actionQuote      = "quote"
	actionToggle     = "toggle"
	actionConnect    = "connect"
	actionDisconnect = "disconnect"
	actionSubmit     = "submit"
	actionQuit       = "quit"
)

// Widget is the interactive terminal bridge.
type Widget struct {
	bridge *bridge.Service

	mode       domain.SourceMode
	sourceCode string
	destCode   string
	amount     string
	slippage   string
}

// NewWidget creates the widget with the documented defaults selected.
func NewWidget(b *bridge.Service, defaultSlippage decimal.Decimal) *Widget {
	return &Widget{
		bridge:     b,
		mode:       domain.SourceModeFiat,
		sourceCode: domain.DefaultFiatCode,
		destCode:   domain.DefaultCryptoCode,
		amount:     "100",
		slippage:   defaultSlippage.String(),
	}
}

// Run drives the form until the user quits.
func (w *Widget) Run(ctx context.Context) error {
	for {
		fmt.Print("\033[H\033[2J") // Clear screen
		fmt.Println(headerStyle.Render("PUENTE BRIDGE"))

		q := w.quote(ctx)
		fmt.Println(quoteStyle.Render(w.summary(&q)))

		if err := w.form(); err != nil {
			return err
		}

		var action string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Action").
					Options(w.actionOptions()...).
					Value(&action),
			),
		).Run()
		if err != nil {
			return err
		}

		switch action {
		case actionToggle:
			w.mode, w.sourceCode = w.bridge.ToggleMode(w.mode)
		case actionConnect:
			w.bridge.Connect(ctx)
		case actionDisconnect:
			w.bridge.Disconnect()
		case actionSubmit:
			if ref, err := w.bridge.Submit(ctx, w.request()); err == nil {
				fmt.Println(mutedStyle.Render("submitted, ref " + ref))
			}
		case actionQuit:
			return nil
		}
	}
}

func (w *Widget) form() error {
	cat := w.bridge.Engine().Catalog()

	var sourceOpts []huh.Option[string]
	if w.mode == domain.SourceModeFiat {
		for _, a := range cat.Fiat {
			sourceOpts = append(sourceOpts, huh.NewOption(a.Code, a.Code))
		}
	} else {
		for _, a := range cat.Crypto {
			sourceOpts = append(sourceOpts, huh.NewOption(a.Label(), a.Code))
		}
	}
	var destOpts []huh.Option[string]
	for _, a := range cat.Crypto {
		destOpts = append(destOpts, huh.NewOption(a.Label(), a.Code))
	}
	var slippageOpts []huh.Option[string]
	for _, c := range converter.SlippageChoices {
		slippageOpts = append(slippageOpts, huh.NewOption(c.String()+"%", c.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount ("+w.mode.String()+" "+w.sourceCode+")").
				Value(&w.amount).
				Validate(func(s string) error {
					if _, ok := converter.SanitizeAmount(s); !ok {
						return fmt.Errorf("amount must be digits with at most one decimal point")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("From").
				Options(sourceOpts...).
				Value(&w.sourceCode),
			huh.NewSelect[string]().
				Title("To").
				Options(destOpts...).
				Value(&w.destCode),
			huh.NewSelect[string]().
				Title("Slippage Tolerance").
				Options(slippageOpts...).
				Value(&w.slippage),
		),
	).Run()
}

func (w *Widget) actionOptions() []huh.Option[string] {
	opts := []huh.Option[string]{
		huh.NewOption("Refresh quote", actionQuote),
		huh.NewOption("Switch to "+w.otherMode(), actionToggle),
	}
	session := w.bridge.Session()
	if session.Connected {
		opts = append(opts,
			huh.NewOption(w.submitLabel(), actionSubmit),
			huh.NewOption("Disconnect "+session.ShortAddress(), actionDisconnect))
	} else {
		opts = append(opts, huh.NewOption("Connect Wallet", actionConnect))
	}
	return append(opts, huh.NewOption("Quit", actionQuit))
}

func (w *Widget) otherMode() string {
	if w.mode == domain.SourceModeFiat {
		return "Crypto"
	}
	return "Fiat"
}

func (w *Widget) submitLabel() string {
	if w.mode == domain.SourceModeFiat {
		return "Buy " + w.destCode
	}
	return "Transfer " + w.destCode
}

func (w *Widget) request() domain.ConversionRequest {
	clean, _ := converter.SanitizeAmount(w.amount)
	slip, _ := decimal.NewFromString(w.slippage)
	return domain.ConversionRequest{
		Amount:      clean,
		SourceMode:  w.mode,
		SourceCode:  w.sourceCode,
		DestCode:    w.destCode,
		SlippagePct: slip,
	}
}

func (w *Widget) quote(ctx context.Context) domain.Quote {
	return w.bridge.Quote(ctx, w.request())
}

func (w *Widget) summary(q *domain.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s -> %s %s\n", q.Request.Amount, q.Request.SourceCode, q.Output.StringFixed(6), q.Request.DestCode)
	if q.SourceUSD != nil {
		fmt.Fprintf(&b, "source ≈ $%s\n", q.SourceUSD.StringFixed(2))
	}
	fmt.Fprintf(&b, "output ≈ $%s\n", q.OutputUSD.StringFixed(2))
	fmt.Fprintf(&b, "network fee $%s\n", q.NetworkFeeUSD.StringFixed(3))
	if fee := w.bridge.ProcessingFee(q.Request.SourceMode); fee != nil {
		fmt.Fprintf(&b, "processing %s%%\n", fee.String())
	}
	fmt.Fprintf(&b, "slippage %s%%\n", q.Request.SlippagePct.String())
	fmt.Fprintf(&b, "1 %s = $%s", q.Request.DestCode, converter.FormatPrice(q.Rate))

	session := w.bridge.Session()
	if session.Connected {
		fmt.Fprintf(&b, "\nwallet %s", session.ShortAddress())
	}
	return b.String()
}
