package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	Build        string
	AppName      string
	Debug        bool
	TestMode     bool
	RollbarToken string

	DataDir    string
	GradesFile string
	PolicyFile string
}

// GradesPath returns the location of the grades document.
func (c *Config) GradesPath() string { return c.resolve(c.GradesFile) }

// PolicyPath returns the location of the grading policy document.
func (c *Config) PolicyPath() string { return c.resolve(c.PolicyFile) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// NewConfig loads the configuration from defaults, an optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed by the upper-cased env name, eg: DEV_GRADES_FILE.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("test_mode", false)
	conf.SetDefault("app_name", "Gradebook")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbar_token", "")
	conf.SetDefault("data_dir", ".")
	conf.SetDefault("grades_file", "Grades.dat")
	conf.SetDefault("policy_file", "policy.dat")

	env := strings.ToUpper(CleanString(os.Getenv("ENV"))) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("test_mode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("app_name"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("test_mode"),
		RollbarToken: conf.GetString("rollbar_token"),
		DataDir:      conf.GetString("data_dir"),
		GradesFile:   conf.GetString("grades_file"),
		PolicyFile:   conf.GetString("policy_file"),
	}, nil
}
