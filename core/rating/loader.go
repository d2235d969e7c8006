package rating

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"rating-engine/internal/errors"
)

// tableFile is the on-disk shape of a rate table override.
//
//	states     = { CA = 2.5, DEFAULT = 2.0 }
//	businesses = { retail = 1.0, DEFAULT = 1.0 }
type tableFile struct {
	States     map[string]float64 `yaml:"states" hcl:"states"`
	Businesses map[string]float64 `yaml:"businesses" hcl:"businesses"`
}

// LoadTable reads a rate table from path. The format follows the extension:
// .yaml/.yml are YAML; .hcl is HCL native syntax and .json is HCL JSON syntax.
func LoadTable(path string) (*Table, error) {
	var file tableFile

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Config("read rate table", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Config("parse rate table "+path, err)
		}
	case ".hcl", ".json":
		if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
			return nil, errors.Config("parse rate table "+path, err)
		}
	default:
		return nil, errors.Config(fmt.Sprintf("unsupported rate table format %q", ext), nil)
	}

	return NewTable(toDecimals(file.States), toDecimals(file.Businesses))
}

// LoadTableOrDefault returns DefaultTable when path is empty.
func LoadTableOrDefault(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	return LoadTable(path)
}

func toDecimals(in map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}
