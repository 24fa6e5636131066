// Package config loads bridge configuration from a yaml file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/puentelabs/puente/internal/services/converter"
)

// Config runtime settings of the bridge.
type Config struct {
	// ListenAddr address of the web widget server.
	ListenAddr string
	// CatalogPath optional yaml price table overriding the built-in one.
	CatalogPath string
	// DefaultSlippage initial slippage tolerance, one of the enumerated set.
	DefaultSlippage decimal.Decimal
	// EthRPCURL optional Ethereum RPC endpoint for the live gas oracle and
	// on-chain balance reads. Empty keeps both on their static stubs.
	EthRPCURL string
	// GasPollInterval how often the gas oracle refreshes.
	GasPollInterval time.Duration
	// AutoTLSDomains enables automatic TLS certificates for these hosts.
	AutoTLSDomains []string
	// CertCacheDir directory for cached TLS certificates.
	CertCacheDir string
	// DemoBalance starting per-asset balance of the stub wallet.
	DemoBalance decimal.Decimal
}

type configTmp struct {
	ListenAddr         string        `yaml:"listen_addr"`
	CatalogPath        string        `yaml:"catalog_path,omitempty"`
	DefaultSlippageStr string        `yaml:"default_slippage,omitempty"`
	EthRPCURL          string        `yaml:"eth_rpc_url,omitempty"`
	GasPollInterval    time.Duration `yaml:"gas_poll_interval,omitempty"`
	AutoTLSDomains     []string      `yaml:"auto_tls_domains,omitempty"`
	CertCacheDir       string        `yaml:"cert_cache_dir,omitempty"`
	DemoBalanceStr     string        `yaml:"demo_balance,omitempty"`
}

// Get reads configuration from --config yaml when provided, CLI flags
// otherwise.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	addr := flag.String("addr", ":8080", "listen address of the web widget")
	catalogPath := flag.String("catalog", "", "path to yaml price catalog")
	slippage := flag.String("slippage", "0.5", "default slippage tolerance percent, one of 0.5, 1.0, 2.0")
	ethRPC := flag.String("ethrpc", "", "ethereum RPC endpoint for the gas oracle")
	gasPoll := flag.Duration("gaspollinterval", 30*time.Second, "gas price poll interval")
	demoBalance := flag.String("demobalance", "10", "starting per-asset balance of the stub wallet")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	slip, err := decimal.NewFromString(*slippage)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --slippage provided, --slippage=%s", *slippage)
	}
	if err := validateSlippage(slip); err != nil {
		return Config{}, err
	}
	demo, err := decimal.NewFromString(*demoBalance)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --demobalance provided, --demobalance=%s", *demoBalance)
	}

	return Config{
		ListenAddr:      *addr,
		CatalogPath:     *catalogPath,
		DefaultSlippage: slip,
		EthRPCURL:       *ethRPC,
		GasPollInterval: *gasPoll,
		CertCacheDir:    "cert-cache",
		DemoBalance:     demo,
	}, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:      tmp.ListenAddr,
		CatalogPath:     tmp.CatalogPath,
		EthRPCURL:       tmp.EthRPCURL,
		GasPollInterval: tmp.GasPollInterval,
		AutoTLSDomains:  tmp.AutoTLSDomains,
		CertCacheDir:    tmp.CertCacheDir,
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.GasPollInterval == 0 {
		cfg.GasPollInterval = 30 * time.Second
	}
	if cfg.CertCacheDir == "" {
		cfg.CertCacheDir = "cert-cache"
	}

	if tmp.DefaultSlippageStr == "" {
		cfg.DefaultSlippage = converter.SlippageChoices[0]
	} else {
		slip, err := decimal.NewFromString(tmp.DefaultSlippageStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'default_slippage' param in yaml config (must be a decimal), error: %w", err)
		}
		if err := validateSlippage(slip); err != nil {
			return Config{}, err
		}
		cfg.DefaultSlippage = slip
	}

	if tmp.DemoBalanceStr == "" {
		cfg.DemoBalance = decimal.NewFromInt(10)
	} else {
		demo, err := decimal.NewFromString(tmp.DemoBalanceStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'demo_balance' param in yaml config (must be a decimal), error: %w", err)
		}
		cfg.DemoBalance = demo
	}

	return cfg, nil
}

func validateSlippage(slip decimal.Decimal) error {
	for _, choice := range converter.SlippageChoices {
		if slip.Equal(choice) {
			return nil
		}
	}
	choices := make([]string, 0, len(converter.SlippageChoices))
	for _, c := range converter.SlippageChoices {
		choices = append(choices, c.String())
	}
	return fmt.Errorf("slippage %s is not one of {%s}", slip.String(), strings.Join(choices, ", "))
}
