// Package config provides configuration resolution with explicit priority order.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/dkoosis/spanfmt/pkg/culture"
)

// Resolution priority, highest to lowest:
//
//  1. CLI flags (-culture, -mono, -debug)
//  2. Environment variables (SPANFMT_CULTURE, SPANFMT_NO_COLOR, NO_COLOR)
//  3. .spanfmt.yaml configuration file (culture, culture_files, no_color)
//  4. Defaults (invariant culture, colored output)
const (
	PriorityCLI     = 1
	PriorityEnv     = 2
	PriorityFile    = 3
	PriorityDefault = 4
)

// ResolvedConfig holds the final resolved configuration after applying all
// priority rules.
type ResolvedConfig struct {
	Culture    culture.Culture
	Monochrome bool
	Debug      bool

	// Extra cultures loaded from culture_files, keyed by name.
	Extra map[string]culture.Culture

	// Named pattern presets from the config file.
	Patterns map[string]string

	// Resolution metadata (for debugging)
	CultureSource string // "cli", "env", "file", "default"
	NoColorSource string // "cli", "env", "file", "default"
}

// Resolve merges file config, environment, and CLI flags into the final
// configuration. Unresolvable culture specs warn and fall back rather than
// abort: a broken config file should not make the tool unusable.
func Resolve(appCfg *AppConfig, flags CliFlags) *ResolvedConfig {
	rc := &ResolvedConfig{
		Culture:       culture.Invariant(),
		CultureSource: "default",
		NoColorSource: "default",
		Extra:         loadCultureFiles(appCfg.CultureFiles),
		Patterns:      appCfg.Patterns,
	}

	spec, source := cultureSpec(appCfg, flags)
	if spec != "" {
		if c, ok := rc.lookupCulture(spec); ok {
			rc.Culture = c
			rc.CultureSource = source
		} else {
			fmt.Fprintf(os.Stderr, "Warning: cannot resolve culture %q, using invariant.\n", spec)
		}
	}

	rc.Monochrome = envBool(appCfg.NoColor, "SPANFMT_NO_COLOR", "NO_COLOR")
	if rc.Monochrome != appCfg.NoColor {
		rc.NoColorSource = "env"
	} else if appCfg.NoColor {
		rc.NoColorSource = "file"
	}
	if flags.NoColorSet {
		rc.Monochrome = flags.NoColor
		rc.NoColorSource = "cli"
	}

	rc.Debug = appCfg.Debug || os.Getenv("SPANFMT_DEBUG") != ""
	if flags.DebugSet {
		rc.Debug = flags.Debug
	}

	if rc.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG Resolve] culture=%s (%s) monochrome=%t (%s)\n",
			rc.Culture.Name, rc.CultureSource, rc.Monochrome, rc.NoColorSource)
	}
	return rc
}

// Pattern resolves a -p argument against the named presets from the config
// file. Unknown names pass through unchanged as literal pattern text.
func (rc *ResolvedConfig) Pattern(spec string) string {
	if text, ok := rc.Patterns[spec]; ok {
		return text
	}
	return spec
}

// cultureSpec picks the highest-priority culture specification and names its
// source.
func cultureSpec(appCfg *AppConfig, flags CliFlags) (spec, source string) {
	if flags.CultureSet && flags.Culture != "" {
		return flags.Culture, "cli"
	}
	if env := os.Getenv("SPANFMT_CULTURE"); env != "" {
		return env, "env"
	}
	if appCfg.Culture != "" {
		return appCfg.Culture, "file"
	}
	return "", ""
}

// lookupCulture resolves a culture spec: a path to a culture table file, a
// name loaded from culture_files, or a BCP-47 tag matched against the
// built-in tables.
func (rc *ResolvedConfig) lookupCulture(spec string) (culture.Culture, bool) {
	if strings.HasSuffix(spec, ".yaml") || strings.HasSuffix(spec, ".yml") {
		c, err := culture.FromFile(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: loading culture file %s: %v\n", spec, err)
			return culture.Culture{}, false
		}
		return c, true
	}
	if c, ok := rc.Extra[spec]; ok {
		return c, true
	}
	tag, err := language.Parse(spec)
	if err != nil {
		return culture.Culture{}, false
	}
	return culture.ForTag(tag)
}

// loadCultureFiles loads each culture table listed in the config file.
// Files that fail to load warn and are skipped.
func loadCultureFiles(paths []string) map[string]culture.Culture {
	if len(paths) == 0 {
		return nil
	}
	extra := make(map[string]culture.Culture, len(paths))
	for _, path := range paths {
		c, err := culture.FromFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: loading culture file %s: %v\n", path, err)
			continue
		}
		extra[c.Name] = c
	}
	return extra
}
