package config

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// DBCredential struct
type DBCredential struct {
	Address  string `yaml:"address"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

func (c *DBCredential) Dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		c.Address, c.Port, c.User, c.Password, c.Database)
}

// GetRedisAddress prints redis credential info.
func (c *DBCredential) GetRedisAddress() string {
	return fmt.Sprintf("%v:%v", c.Address, c.Port)
}

// Configuration struct
type Configuration struct {
	Postgres         DBCredential `yaml:"postgres"`
	RedisCredential  DBCredential `yaml:"redis"`
	DiscordBot       DiscordBot   `yaml:"discord_bot"`
	Web              Web          `yaml:"web"`
	KafkaServer      string       `yaml:"kafka-server"`
	DefaultNetwork   string       `yaml:"default_network"`
	SentryDSN        string       `yaml:"sentry_dsn"`
	LarkAlarmWebhook string       `yaml:"lark_alarm_webhook"`
}

type DiscordBot struct {
	AppID     string `yaml:"app_id"`
	AuthToken string `yaml:"auth_token"`
}

// Web holds the public origin of the wallet pages. Links handed to chat users
// are built as <origin>/<kind>/<token>.
type Web struct {
	Origin string `yaml:"origin"`
	Listen string `yaml:"listen"`
}

func readConfig(path string) (Configuration, error) {
	logrus.Info("Starting to load configuration file ...")
	dat, err := ioutil.ReadFile(path)
	if err != nil {
		logrus.Fatal(err)
	}
	t := Configuration{}
	err = yaml.Unmarshal(dat, &t)

	if err != nil {
		if os.IsNotExist(err) {
			logrus.Fatalf("file %s does not exist", path)
		} else {
			logrus.Fatalf("fail to decode config error: %v", err)
		}
	}
	return t, nil
}

var Global *Configuration

// Read reads configuration information from yml.
func Read() {
	configFilePath := flag.String("config-path", "internal/config/config.yml", "The path to the configuration file")
	flag.Parse()
	logrus.Infof("Loading configuration file from %s", *configFilePath)
	globalConfig, err := readConfig(*configFilePath)
	if err != nil {
		logrus.Fatal(err)
	}
	if globalConfig.Web.Listen == "" {
		globalConfig.Web.Listen = ":8080"
	}
	Global = &globalConfig
}
