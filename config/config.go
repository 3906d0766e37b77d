// Package config loads topology descriptions from YAML and builds
// runnable topologies through the block registry.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/topology"
)

// MetricsConfig describes the metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// NATSConfig describes the connection used by network endpoint blocks.
type NATSConfig struct {
	URL           string        `yaml:"url"`
	MaxReconnects int           `yaml:"max_reconnects"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// BlockConfig describes one block instance: its registered factory name
// and the parameters handed to it.
type BlockConfig struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// ConnectionConfig wires an output port to an input port. Endpoints are
// written "blockname:port"; a bare block name means port 0.
type ConnectionConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Config is the root topology description.
type Config struct {
	Version     string                 `yaml:"version"`
	Metrics     MetricsConfig          `yaml:"metrics"`
	NATS        NATSConfig             `yaml:"nats"`
	Blocks      map[string]BlockConfig `yaml:"blocks"`
	Connections []ConnectionConfig     `yaml:"connections"`
}

// DefaultConfig returns a config with the ports and intervals filled in.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Metrics: MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"},
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
		},
		Blocks: map[string]BlockConfig{},
	}
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Config", "Load", "read "+path)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config bytes.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapInvalidArgument(err, "Config", "Parse", "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks internal consistency: every block names a type, every
// connection endpoint references a declared block.
func (c *Config) Validate() error {
	for name, b := range c.Blocks {
		if b.Type == "" {
			return errors.InvalidArgumentf("Config", "Validate",
				"block %q has no type", name)
		}
	}
	for i, conn := range c.Connections {
		for _, endpoint := range []string{conn.From, conn.To} {
			name, _, err := splitEndpoint(endpoint)
			if err != nil {
				return errors.WrapInvalidArgument(err, "Config", "Validate",
					fmt.Sprintf("connection %d", i))
			}
			if _, ok := c.Blocks[name]; !ok {
				return errors.InvalidArgumentf("Config", "Validate",
					"connection %d references undeclared block %q", i, name)
			}
		}
	}
	return nil
}

func splitEndpoint(s string) (name string, port int, err error) {
	if s == "" {
		return "", 0, fmt.Errorf("empty endpoint")
	}
	name = s
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		name = s[:idx]
		port, err = strconv.Atoi(s[idx+1:])
		if err != nil || port < 0 {
			return "", 0, fmt.Errorf("bad port in endpoint %q", s)
		}
	}
	if name == "" {
		return "", 0, fmt.Errorf("empty block name in endpoint %q", s)
	}
	return name, port, nil
}

// Build instantiates every declared block through the registry and wires
// the declared connections into a fresh topology.
func (c *Config) Build(registry *block.Registry, opts ...topology.Option) (*topology.Topology, map[string]block.Block, error) {
	blocks := make(map[string]block.Block, len(c.Blocks))
	for name, bc := range c.Blocks {
		b, err := registry.Make(bc.Type, block.Params(bc.Params))
		if err != nil {
			return nil, nil, errors.Wrap(err, "Config", "Build", "make "+name)
		}
		blocks[name] = b
	}

	tp := topology.New(opts...)
	for name := range blocks {
		tp.Add(blocks[name])
	}
	for i, conn := range c.Connections {
		fromName, fromPort, _ := splitEndpoint(conn.From)
		toName, toPort, _ := splitEndpoint(conn.To)
		if err := tp.Connect(blocks[fromName], fromPort, blocks[toName], toPort); err != nil {
			return nil, nil, errors.Wrap(err, "Config", "Build",
				fmt.Sprintf("connection %d (%s -> %s)", i, conn.From, conn.To))
		}
	}
	return tp, blocks, nil
}
