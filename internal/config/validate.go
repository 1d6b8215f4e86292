package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/warnings"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(source string) error {
	if strings.TrimSpace(c.Nipkg.Path) == "" {
		return fmt.Errorf(messages.ConfigNipkgPathRequiredFmt, source)
	}
	if err := c.Locator.validate(source); err != nil {
		return err
	}

	lists := []struct {
		name  string
		names []string
	}{
		{"all", c.Exclusions.All},
		{"release", c.Exclusions.Release},
		{"test", c.Exclusions.Test},
	}
	for _, list := range lists {
		for _, name := range list.names {
			if !validComponentName(name) {
				return fmt.Errorf(messages.ConfigExclusionInvalidFmt, source, list.name, name)
			}
		}
	}

	if err := c.Publish.validate(source); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, source, c.Log.Level)
	}

	if !warnings.ValidNoiseMode(c.Warnings.NoiseMode) {
		return fmt.Errorf(messages.ConfigWarningNoiseModeInvalidFmt, source, c.Warnings.NoiseMode)
	}
	return nil
}

func (l LocatorConfig) validate(source string) error {
	if !strings.HasPrefix(l.Extension, ".") || len(l.Extension) < 2 {
		return fmt.Errorf(messages.ConfigExtensionInvalidFmt, source, l.Extension)
	}
	subpath := strings.ReplaceAll(l.ExportSubpath, `\`, "/")
	if subpath == "" || path.IsAbs(subpath) || strings.Contains(subpath, ":") {
		return fmt.Errorf(messages.ConfigExportSubpathInvalidFmt, source, l.ExportSubpath)
	}
	for _, segment := range strings.Split(subpath, "/") {
		if segment == ".." {
			return fmt.Errorf(messages.ConfigExportSubpathInvalidFmt, source, l.ExportSubpath)
		}
	}
	return nil
}

func (p PublishConfig) validate(source string) error {
	if strings.TrimSpace(p.Phase) == "" {
		return fmt.Errorf(messages.ConfigPhaseRequiredFmt, source)
	}
	if !p.Enabled {
		return nil
	}
	required := []struct {
		key   string
		value string
	}{
		{"python", p.Python},
		{"report_root", p.ReportRoot},
		{"product", p.Product},
		{"platform", p.Platform},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.ConfigPublishFieldRequiredFmt, source, field.key)
		}
	}
	return nil
}

// validComponentName reports whether name can be an export component directory.
func validComponentName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
