package orchestrator

import (
	"errors"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "jobform"

// DefaultThemeManifest returns the built-in palette. Token keys map onto the
// CSS variables used by the page stylesheet.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"jobform-bg":      "#f4f5f7",
			"jobform-surface": "#ffffff",
			"jobform-text":    "#1f2933",
			"jobform-accent":  "#2563eb",
			"jobform-error":   "#b91c1c",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"jobform-bg":      "#111827",
					"jobform-surface": "#1f2937",
					"jobform-text":    "#f9fafb",
					"jobform-accent":  "#60a5fa",
				},
			},
		},
	}
}

// ResolveTheme flattens manifest and the named variant into the renderer
// configuration: variant tokens, templates and asset files override the base
// ones, and every token is exposed as a "--<token>" CSS variable.
func ResolveTheme(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, errors.New("orchestrator: theme manifest is required")
	}
	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		return nil, fmt.Errorf("orchestrator: register theme %q: %w", manifest.Name, err)
	}

	tokens := copyStrings(manifest.Tokens)
	partials := copyStrings(manifest.Templates)
	prefix := manifest.Assets.Prefix
	files := copyStrings(manifest.Assets.Files)

	variant = strings.TrimSpace(variant)
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("orchestrator: theme %q has no variant %q", manifest.Name, variant)
		}
		tokens = overlay(tokens, v.Tokens)
		partials = overlay(partials, v.Templates)
		files = overlay(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" || strings.HasPrefix(file, "/") {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func overlay(base, extra map[string]string) map[string]string {
	for key, value := range extra {
		base[key] = value
	}
	return base
}
