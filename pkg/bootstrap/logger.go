package bootstrap

import (
	"io"
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"

	"github.com/elemental-io/elemental/pkg/config"
)

// LogFileConfig controls rotated file output for the process log.
type LogFileConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Filename     string `yaml:"filename" mapstructure:"filename"`
	MaxAgeDays   int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	RotationDays int    `yaml:"rotation_days" mapstructure:"rotation_days"`
}

// LoggerOptions extends plain logger setup with file output and host
// tagging.
type LoggerOptions struct {
	// ServiceName names the log file when FileConfig leaves Filename empty.
	ServiceName string
	// FileConfig enables rotated file output; nil keeps stdout only.
	FileConfig *LogFileConfig
	// AddHostHook stamps every entry with the container hostname.
	AddHostHook bool
}

type hostHook struct {
	hostname string
}

func (h *hostHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *hostHook) Fire(entry *log.Entry) error {
	entry.Data["host"] = h.hostname
	return nil
}

func detectHostname() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}

	if data, err := os.ReadFile("/etc/hostname"); err == nil {
		hostname := strings.TrimSpace(string(data))
		if hostname != "" {
			return hostname
		}
	}

	return "unknown"
}

// InitLogger configures format and level only, no file output.
func InitLogger(cfg config.LogConfig) error {
	return InitLoggerWithOptions(cfg, LoggerOptions{})
}

// InitLoggerWithFile configures the logger and mirrors output to a rotated
// file under ./logs.
func InitLoggerWithFile(cfg config.LogConfig, serviceName string) error {
	return InitLoggerWithOptions(cfg, LoggerOptions{
		ServiceName: serviceName,
		FileConfig: &LogFileConfig{
			Enabled:      true,
			Dir:          "./logs",
			Filename:     serviceName,
			MaxAgeDays:   7,
			RotationDays: 1,
		},
		AddHostHook: true,
	})
}

// InitLoggerWithOptions applies the full option set.
func InitLoggerWithOptions(cfg config.LogConfig, opts LoggerOptions) error {
	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	default:
		log.SetFormatter(&log.JSONFormatter{})
	}

	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
		log.Warnf("invalid log level %q, fallback to info", cfg.Level)
	}

	log.SetReportCaller(cfg.ReportCaller)

	if opts.FileConfig != nil && opts.FileConfig.Enabled {
		if err := setupFileOutput(opts.FileConfig, opts.ServiceName); err != nil {
			return err
		}
	}

	if opts.AddHostHook {
		log.AddHook(&hostHook{hostname: detectHostname()})
	}

	return nil
}

func setupFileOutput(fileCfg *LogFileConfig, serviceName string) error {
	logDir := fileCfg.Dir
	if logDir == "" {
		logDir = "./logs"
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Errorf("create log dir failed: %v", err)
		return err
	}

	filename := fileCfg.Filename
	if filename == "" {
		filename = serviceName
	}
	if filename == "" {
		filename = "app"
	}

	maxAge := fileCfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}

	rotationDays := fileCfg.RotationDays
	if rotationDays <= 0 {
		rotationDays = 1
	}

	logFilePath := logDir + "/" + filename + ".%Y%m%d.log"
	linkName := logDir + "/" + filename + ".log"

	writer, err := rotatelogs.New(
		logFilePath,
		rotatelogs.WithLinkName(linkName),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(rotationDays)*24*time.Hour),
	)
	if err != nil {
		log.Errorf("log file output setup failed: %v", err)
		return err
	}

	log.SetOutput(io.MultiWriter(os.Stdout, writer))

	return nil
}
