// Package env provides common configuration for firmata commands.
package env

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/firmata.go/pkg/transport"
)

// Config provides common options to open a board and the MQTT bridge.
type Config struct {
	// Port is the channel URL, e.g. /dev/ttyACM0 or tcp://host:3030.
	Port string `yaml:"port"`
	// Baud is the baud rate of serial ports.
	Baud int `yaml:"baud"`
	// MQTTURL is the broker URL of the bridge.
	// e.g. mqtt://host:port/topic-prefix
	MQTTURL string `yaml:"mqtt"`
	// ClientID is the MQTT client id, defaults to one derived from
	// the machine id.
	ClientID string `yaml:"client-id"`
}

var (
	defaultConfig = Config{
		Baud:    transport.DefaultBaud,
		MQTTURL: "mqtt://localhost:1883/firmata/",
	}

	configFile string
)

func init() {
	if val := os.Getenv("FIRMATA_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("FIRMATA_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
	if val := os.Getenv("FIRMATA_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("FIRMATA_CLIENT_ID"); val != "" {
		defaultConfig.ClientID = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Board channel: serial device or URL (tcp://, ws://).")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL of the bridge.")
	flag.StringVar(&defaultConfig.ClientID, "client-id", defaultConfig.ClientID, "MQTT client id.")
	flag.StringVar(&configFile, "config", configFile, "YAML config file, values override flags left unset.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations, with the file
// given by -config applied except for flags set on the command line.
func NewConfig() (*Config, error) {
	conf := defaultConfig
	if configFile != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) {
			explicit[f.Name] = true
		})
		if err := conf.loadFile(configFile, explicit); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

// MustNewConfig creates a Config and fails on error.
func MustNewConfig() *Config {
	conf, err := NewConfig()
	if err != nil {
		log.Fatalln(err)
	}
	return conf
}

// LoadFile applies the non-empty values of a YAML file.
func (c *Config) LoadFile(fn string) error {
	return c.loadFile(fn, nil)
}

// Load applies the non-empty values of a YAML document.
func (c *Config) Load(data []byte) error {
	return c.load(data, nil)
}

func (c *Config) loadFile(fn string, explicit map[string]bool) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.load(data, explicit)
}

// load skips the values whose flag name is in explicit.
func (c *Config) load(data []byte, explicit map[string]bool) error {
	var fileConf Config
	if err := yaml.Unmarshal(data, &fileConf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if fileConf.Port != "" && !explicit["port"] {
		c.Port = fileConf.Port
	}
	if fileConf.Baud > 0 && !explicit["baud"] {
		c.Baud = fileConf.Baud
	}
	if fileConf.MQTTURL != "" && !explicit["mqtt"] {
		c.MQTTURL = fileConf.MQTTURL
	}
	if fileConf.ClientID != "" && !explicit["client-id"] {
		c.ClientID = fileConf.ClientID
	}
	return nil
}

// OpenChannel creates the channel of Port, not opened yet.
func (c *Config) OpenChannel() (transport.Channel, error) {
	if c.Port == "" {
		return nil, fmt.Errorf("board port must be specified")
	}
	return transport.New(c.Port, c.Baud)
}

// MQTTClientID returns ClientID or one derived from the machine id.
func (c *Config) MQTTClientID() string {
	if c.ClientID != "" {
		return c.ClientID
	}
	id := MachineID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "firmata-" + id
}
