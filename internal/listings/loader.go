package listings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a listings file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for listings files with an unknown extension.
var ErrUnsupportedFormat = errors.New("listings: unsupported file format")

// FormatFor picks the decoder from the file extension. JSONC shares the
// JSON decoder once comments are stripped.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// RecordError describes a record that failed validation and was skipped.
type RecordError struct {
	Index  int      `json:"index"`
	Name   string   `json:"name,omitempty"`
	Fields []string `json:"fields"`
}

func (e RecordError) Error() string {
	label := e.Name
	if label == "" {
		label = "unnamed"
	}
	return fmt.Sprintf("record %d (%s): %s", e.Index, label, strings.Join(e.Fields, "; "))
}

// ParseResult is the outcome of decoding a listings file.
type ParseResult struct {
	Listings []Listing
	Skipped  []RecordError
}

// ReadFile loads and validates the listings file at path.
func ReadFile(path string) (ParseResult, error) {
	format, err := FormatFor(path)
	if err != nil {
		return ParseResult{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("listings: read %s: %w", path, err)
	}
	result, err := Parse(data, format)
	if err != nil {
		return ParseResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// Parse decodes a top-level array of listings and validates each record.
// Invalid records are reported in Skipped; the rest keep their order.
func Parse(data []byte, format Format) (ParseResult, error) {
	var raw []Listing
	switch format {
	case FormatJSON:
		stripped := jsonc.ToJSON(data)
		if len(strings.TrimSpace(string(stripped))) == 0 {
			return ParseResult{}, nil
		}
		if err := json.Unmarshal(stripped, &raw); err != nil {
			return ParseResult{}, fmt.Errorf("listings: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return ParseResult{}, fmt.Errorf("listings: decode yaml: %w", err)
		}
	default:
		return ParseResult{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	v := recordValidator()
	result := ParseResult{Listings: make([]Listing, 0, len(raw))}
	for i, l := range raw {
		l = normalize(l)
		if err := v.Struct(l); err != nil {
			result.Skipped = append(result.Skipped, recordError(i, l, err))
			continue
		}
		result.Listings = append(result.Listings, l)
	}
	return result, nil
}

// normalize trims identifying text and gives bare website hosts a scheme.
func normalize(l Listing) Listing {
	l.Name = strings.TrimSpace(l.Name)
	l.Website = strings.TrimSpace(l.Website)
	if l.Website != "" && !strings.Contains(l.Website, "://") {
		l.Website = "https://" + l.Website
	}
	return l
}

func recordError(index int, l Listing, err error) RecordError {
	re := RecordError{Index: index, Name: l.Name}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		re.Fields = []string{err.Error()}
		return re
	}
	for _, fe := range verrs {
		re.Fields = append(re.Fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return re
}

var recordValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "supplier_type", func(fl validator.FieldLevel) bool {
		return IsSupplierType(fl.Field().String())
	})
	mustRegister(v, "dry_ice_form", func(fl validator.FieldLevel) bool {
		return IsForm(fl.Field().String())
	})
	return v
})

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("listings: register %s validation: %v", tag, err))
	}
}
