package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// tsConfig mirrors the subset of a TypeScript project config the resolver needs
type tsConfig struct {
	Extends         string            `json:"extends"`
	CompilerOptions tsCompilerOptions `json:"compilerOptions"`
}

// tsCompilerOptions holds the path-mapping options
type tsCompilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

// maxExtendsDepth bounds the extends chain to guard against cycles
const maxExtendsDepth = 16

// loadTSConfig reads a tsconfig file and follows its extends chain.
// Child config keys override parent keys; paths merge per entry.
// Any read or parse failure returns an error so the caller can fall back
// to defaults.
func loadTSConfig(configPath string) (*tsConfig, error) {
	return loadTSConfigDepth(configPath, 0)
}

func loadTSConfigDepth(configPath string, depth int) (*tsConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg tsConfig
	if err := json.Unmarshal(StripJSONComments(data), &cfg); err != nil {
		return nil, err
	}

	if cfg.Extends == "" || depth >= maxExtendsDepth {
		return &cfg, nil
	}

	parentPath := resolveExtendsPath(filepath.Dir(configPath), cfg.Extends)
	parent, err := loadTSConfigDepth(parentPath, depth+1)
	if err != nil {
		// A broken parent leaves the child config standing on its own
		return &cfg, nil
	}

	return mergeTSConfigs(parent, &cfg), nil
}

// resolveExtendsPath resolves an extends target relative to the config's
// directory, appending .json when the bare path does not exist
func resolveExtendsPath(dir, extends string) string {
	p := filepath.Join(dir, extends)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	if !strings.HasSuffix(extends, ".json") {
		return p + ".json"
	}
	return p
}

// mergeTSConfigs overlays child on top of parent
func mergeTSConfigs(parent, child *tsConfig) *tsConfig {
	merged := *parent
	merged.Extends = ""

	if child.CompilerOptions.BaseURL != "" {
		merged.CompilerOptions.BaseURL = child.CompilerOptions.BaseURL
	}
	if len(child.CompilerOptions.Paths) > 0 {
		paths := make(map[string][]string, len(parent.CompilerOptions.Paths)+len(child.CompilerOptions.Paths))
		for k, v := range parent.CompilerOptions.Paths {
			paths[k] = v
		}
		for k, v := range child.CompilerOptions.Paths {
			paths[k] = v
		}
		merged.CompilerOptions.Paths = paths
	}
	return &merged
}

// StripJSONComments removes // and /* */ comments plus trailing commas so
// the JSONC dialect used by tsconfig (and tsshift's own config template)
// can be fed to a strict JSON parser. String contents are preserved
// verbatim.
func StripJSONComments(data []byte) []byte {
	var out []byte
	inString := false
	inLine := false
	inBlock := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				out = append(out, c)
			}
		case inBlock:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				inBlock = false
				i++
			}
		case inString:
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				out = append(out, data[i+1])
				i++
			} else if c == '"' {
				inString = false
			}
		default:
			if c == '"' {
				inString = true
				out = append(out, c)
			} else if c == '/' && i+1 < len(data) && data[i+1] == '/' {
				inLine = true
				i++
			} else if c == '/' && i+1 < len(data) && data[i+1] == '*' {
				inBlock = true
				i++
			} else {
				out = append(out, c)
			}
		}
	}

	return stripTrailingCommas(out)
}

// stripTrailingCommas drops commas immediately preceding a closing brace or
// bracket (ignoring whitespace), which tsconfig tolerates but JSON does not
func stripTrailingCommas(data []byte) []byte {
	var out []byte
	inString := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				out = append(out, data[i+1])
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(data) && (data[j] == ' ' || data[j] == '\t' || data[j] == '\n' || data[j] == '\r') {
				j++
			}
			if j < len(data) && (data[j] == '}' || data[j] == ']') {
				continue
			}
		}

		out = append(out, c)
	}
	return out
}
