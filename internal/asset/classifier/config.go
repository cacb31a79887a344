package classifier

import (
	"fmt"
	"os"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"gopkg.in/yaml.v3"
)

// Config tunes which script shapes count as asset-bearing.
type Config struct {
	// Markers maps script type tags to the event kind they announce.
	Markers         map[string]model.TransferType `yaml:"markers"`
	// PayloadTypes maps payload "type" values to event kinds.
	PayloadTypes    map[string]model.TransferType `yaml:"payload_types"`
	// PubkeyTypes lists script types that pay to a single key.
	PubkeyTypes     []string                      `yaml:"pubkey_types"`
	// BurnAddresses receive assets that are destroyed.
	BurnAddresses   []string                      `yaml:"burn_addresses"`
	// BurnScriptTypes are provably unspendable script types.
	BurnScriptTypes []string                      `yaml:"burn_script_types"`
}

// DefaultConfig returns the markers used by Ravencoin-derived nodes.
func DefaultConfig() Config {
	return Config{
		Markers: map[string]model.TransferType{
			"new_asset":      model.TransferMint,
			"reissue_asset":  model.TransferMint,
			"transfer_asset": model.TransferTransfer,
			"burn_asset":     model.TransferBurn,
		},
		PayloadTypes: map[string]model.TransferType{
			"issue":    model.TransferMint,
			"new":      model.TransferMint,
			"mint":     model.TransferMint,
			"reissue":  model.TransferMint,
			"transfer": model.TransferTransfer,
			"burn":     model.TransferBurn,
		},
		PubkeyTypes:     []string{"pubkeyhash", "pubkey", "witness_v0_keyhash"},
		BurnScriptTypes: []string{"nulldata", "nullassetdata"},
	}
}

// LoadConfig reads a YAML file and merges it over DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read classifier config: %w", err)
	}

	var override Config
	if err = yaml.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("parse classifier config: %w", err)
	}
	if err = override.validate(); err != nil {
		return Config{}, err
	}

	for tag, kind := range override.Markers {
		cfg.Markers[tag] = kind
	}
	for typ, kind := range override.PayloadTypes {
		cfg.PayloadTypes[typ] = kind
	}
	if len(override.PubkeyTypes) > 0 {
		cfg.PubkeyTypes = override.PubkeyTypes
	}
	if len(override.BurnScriptTypes) > 0 {
		cfg.BurnScriptTypes = override.BurnScriptTypes
	}
	cfg.BurnAddresses = append(cfg.BurnAddresses, override.BurnAddresses...)

	return cfg, nil
}

func (c Config) validate() error {
	for tag, kind := range c.Markers {
		if !kind.Valid() {
			return fmt.Errorf("classifier config: marker %q has unknown kind %q", tag, kind)
		}
	}
	for typ, kind := range c.PayloadTypes {
		if !kind.Valid() {
			return fmt.Errorf("classifier config: payload type %q has unknown kind %q", typ, kind)
		}
	}
	return nil
}
