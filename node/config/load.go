package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/xerrors"
)

// EnvPrefix prefixes every environment override, e.g. PEERMART_CHAIN_RPC_URL.
const EnvPrefix = "PEERMART"

// FromFile loads config from a TOML file on top of def. A missing file yields
// def unchanged.
func FromFile(path string, def *Client) (*Client, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, xerrors.Errorf("expanding config path: %w", err)
	}

	file, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		if def == nil {
			return nil, xerrors.Errorf("couldn't load config: %w", err)
		}
		return def, nil
	case err != nil:
		return nil, err
	}

	defer file.Close() //nolint:errcheck // The file is RO
	return FromReader(file, def)
}

// FromReader decodes TOML from reader on top of a copy of def.
func FromReader(reader io.Reader, def *Client) (*Client, error) {
	cfg := Default()
	if def != nil {
		cp := *def
		cp.IPFS.Gateways = append([]string{}, def.IPFS.Gateways...)
		cfg = &cp
	}

	md, err := toml.NewDecoder(reader).Decode(cfg)
	if err != nil {
		return nil, xerrors.Errorf("decoding config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		log.Warnw("unknown config keys ignored", "keys", undec)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with PEERMART_* environment variables.
func ApplyEnv(cfg *Client) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return xerrors.Errorf("applying environment overrides: %w", err)
	}
	return nil
}

// Load reads path, applies environment overrides and expands paths.
func Load(path string) (*Client, error) {
	cfg, err := FromFile(path, Default())
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Wallet.KeystoreDir != "" {
		if cfg.Wallet.KeystoreDir, err = homedir.Expand(cfg.Wallet.KeystoreDir); err != nil {
			return nil, xerrors.Errorf("expanding keystore path: %w", err)
		}
	}
	return cfg, nil
}

// ConfigComment renders cfg as TOML, used to write a commented default file.
func ConfigComment(cfg *Client) ([]byte, error) {
	var buf bytes.Buffer
	_, _ = buf.WriteString("# Default config:\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, xerrors.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg to path unless a file already exists there.
func WriteFile(path string, cfg *Client) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return xerrors.Errorf("expanding config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return xerrors.Errorf("config file %s already exists", path)
	}

	b, err := ConfigComment(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return xerrors.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return xerrors.Errorf("writing config: %w", err)
	}
	return nil
}
