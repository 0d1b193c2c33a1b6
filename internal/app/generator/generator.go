package generator

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

const templatePath = "templates/hatchlog.yaml.tmpl"

//go:embed templates/hatchlog.yaml.tmpl
var templateFS embed.FS

// Options contains the values written into hatchlog.yaml
type Options struct {
	BaseURL        string
	StreamPath     string
	Buffer         int
	ReconnectDelay time.Duration
	HealthPath     string
	HealthInterval time.Duration
	HealthTimeout  time.Duration
	Levels         []string
}

// DefaultOptions returns the built-in defaults
func DefaultOptions() Options {
	return OptionsFrom(config.DefaultConfig())
}

// OptionsFrom takes template values from a loaded configuration
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		BaseURL:        cfg.API.BaseURL,
		StreamPath:     cfg.Stream.Path,
		Buffer:         cfg.Stream.Buffer,
		ReconnectDelay: cfg.Stream.ReconnectDelay,
		HealthPath:     cfg.Health.Path,
		HealthInterval: cfg.Health.Interval,
		HealthTimeout:  cfg.Health.Timeout,
		Levels:         config.Levels,
	}
}

// Generator defines the interface for generating hatchlog.yaml
type Generator interface {
	Generate(opts Options, force bool, dryRun bool) error
}

type generator struct {
	path string
	out  io.Writer
	log  logger.Logger
}

// NewGenerator creates a generator writing config.FileName in the working directory
func NewGenerator(log logger.Logger) Generator {
	return newGenerator(config.FileName, os.Stdout, log)
}

func newGenerator(path string, out io.Writer, log logger.Logger) *generator {
	return &generator{
		path: path,
		out:  out,
		log:  log,
	}
}

// Generate renders the template; dry runs print it instead of writing the file
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	if !dryRun && !force {
		if _, err := os.Stat(g.path); err == nil {
			return fmt.Errorf("file %s already exists, use --force to overwrite", g.path)
		}
	}

	tmplContent, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New(config.FileName).
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if dryRun {
		_, err := g.out.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(g.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	g.log.Info().Msgf("Generated %s", g.path)

	return nil
}
