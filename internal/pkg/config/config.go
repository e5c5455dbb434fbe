package config

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"runtime"
	"time"

	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/pkg/metrics"
	"golang-netenforce/internal/policy"
	"golang-netenforce/internal/types"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	BackendNetsh   = "netsh"
	BackendNetlink = "netlink"
)

// NetworkConfig represents the desired addressing for one network (SSID)
type NetworkConfig struct {
	Mode    string `yaml:"mode" validate:"omitempty,oneof=automatic dhcp static"`
	IP      string `yaml:"ip,omitempty" validate:"omitempty,ipv4"`
	Netmask string `yaml:"netmask,omitempty" validate:"omitempty,ipv4"`
	Gateway string `yaml:"gateway,omitempty" validate:"omitempty,ipv4"`
	DNS     string `yaml:"dns,omitempty" validate:"omitempty,ipv4"`
}

// Config represents the main configuration structure
type Config struct {
	Logging               logging.LogConfig        `yaml:"logging"`
	Metrics               metrics.Config           `yaml:"metrics"`
	Interface             string                   `yaml:"interface" validate:"required"`
	PollIntervalSeconds   int                      `yaml:"poll_interval_seconds" validate:"gt=0"`
	CommandTimeoutSeconds int                      `yaml:"command_timeout_seconds" validate:"gt=0"`
	Backend               string                   `yaml:"backend" validate:"oneof=netsh netlink"`
	Networks              map[string]NetworkConfig `yaml:"networks" validate:"dive,keys,required,endkeys"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	abb := NetworkConfig{
		Mode:    "static",
		IP:      "172.17.4.199",
		Netmask: "255.255.252.0",
		Gateway: "172.17.4.31",
		DNS:     "0.0.0.0",
	}
	return &Config{
		Logging: logging.LogConfig{
			Level:  "info",
			Format: "compact",
		},
		Metrics: metrics.Config{
			Enabled:       false,
			ListenAddress: ":9273",
			Path:          "/metrics",
		},
		Interface:             "Wi-Fi",
		PollIntervalSeconds:   30,
		CommandTimeoutSeconds: 15,
		Backend:               DefaultBackend(),
		Networks: map[string]NetworkConfig{
			"ABB PS PCU": abb,
			"ABB SB PCU": abb,
		},
	}
}

// DefaultBackend picks the backend matching the running OS.
func DefaultBackend() string {
	if runtime.GOOS == "windows" {
		return BackendNetsh
	}
	return BackendNetlink
}

// Load loads configuration from a YAML file. Settings missing from the file
// keep their default values, except networks: a file without a networks
// section yields an empty policy table.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := Default()
	config.Networks = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for name, network := range c.Networks {
		if err := validateNetworkConfig(validate, name, network); err != nil {
			return err
		}
	}

	return nil
}

func validateNetworkConfig(validate *validator.Validate, name string, network NetworkConfig) error {
	if err := validate.Struct(network); err != nil {
		return fmt.Errorf("network %q: %w", name, err)
	}
	if network.Mode != "static" {
		return nil
	}
	if network.IP == "" {
		return fmt.Errorf("network %q: static IP address is required", name)
	}
	if network.Netmask == "" {
		return fmt.Errorf("network %q: static netmask is required", name)
	}
	if _, bits := net.IPMask(net.ParseIP(network.Netmask).To4()).Size(); bits == 0 {
		return fmt.Errorf("network %q: netmask %s is not contiguous", name, network.Netmask)
	}
	return nil
}

// PollInterval returns the fixed delay between ticks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// CommandTimeout returns the bound placed on each external call.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// PolicyTable converts the networks section into an immutable policy table.
func (c *Config) PolicyTable() (*policy.Table, error) {
	entries := make(map[types.NetworkIdentity]types.DesiredConfig, len(c.Networks))
	for name, network := range c.Networks {
		desired, err := network.Desired()
		if err != nil {
			return nil, fmt.Errorf("network %q: %w", name, err)
		}
		entries[types.NetworkIdentity(name)] = desired
	}
	return policy.New(entries)
}

// Desired converts the YAML representation into a DesiredConfig.
func (n NetworkConfig) Desired() (types.DesiredConfig, error) {
	mode, err := types.ParseAddressingMode(n.Mode)
	if err != nil {
		return types.DesiredConfig{}, err
	}

	desired := types.DesiredConfig{Mode: mode}
	if mode != types.ModeStatic {
		return desired, nil
	}

	fields := []struct {
		name  string
		value string
		dst   *netip.Addr
	}{
		{"ip", n.IP, &desired.Address},
		{"netmask", n.Netmask, &desired.SubnetMask},
		{"gateway", n.Gateway, &desired.Gateway},
		{"dns", n.DNS, &desired.Resolver},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		addr, err := netip.ParseAddr(f.value)
		if err != nil {
			return types.DesiredConfig{}, fmt.Errorf("invalid %s %q: %w", f.name, f.value, err)
		}
		*f.dst = addr
	}

	return desired, nil
}
