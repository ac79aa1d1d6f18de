// Package config loads qrtool settings from an optional HCL file.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/charset"
	"github.com/louisgthier/image-processing/qrcode/decoder"
)

// Config holds the resolved settings.
type Config struct {
	Encode EncodeConfig
	Decode DecodeConfig
	Log    LogConfig
}

// EncodeConfig holds symbol encoding and rendering settings.
type EncodeConfig struct {
	Scale     int
	QuietZone int
	FoldCase  bool
	Mode      string
	Strict    bool
}

// DecodeConfig holds localization and decoding settings.
type DecodeConfig struct {
	DarkThreshold   int
	SampleThreshold int
	Charset         string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// hclFile represents the top-level structure of a config file for decoding.
type hclFile struct {
	Encode *hclEncode `hcl:"encode,block"`
	Decode *hclDecode `hcl:"decode,block"`
	Log    *hclLog    `hcl:"log,block"`
}

type hclEncode struct {
	Scale     *int    `hcl:"scale,optional"`
	QuietZone *int    `hcl:"quiet_zone,optional"`
	FoldCase  *bool   `hcl:"fold_case,optional"`
	Mode      *string `hcl:"mode,optional"`
	Strict    *bool   `hcl:"strict,optional"`
}

type hclDecode struct {
	DarkThreshold   *int    `hcl:"dark_threshold,optional"`
	SampleThreshold *int    `hcl:"sample_threshold,optional"`
	Charset         *string `hcl:"charset,optional"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Encode: EncodeConfig{
			Scale:     imgproc.DefaultScale,
			QuietZone: imgproc.DefaultQuietZone,
			Mode:      "alphanumeric",
		},
		Decode: DecodeConfig{
			DarkThreshold:   imgproc.DefaultDarkThreshold,
			SampleThreshold: imgproc.DefaultSampleThreshold,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load parses and decodes the HCL file at path over the defaults.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(file.Body, path)
}

// Parse decodes HCL source over the defaults. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (*Config, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg := Default()
	if e := parsed.Encode; e != nil {
		setInt(&cfg.Encode.Scale, e.Scale)
		setInt(&cfg.Encode.QuietZone, e.QuietZone)
		setBool(&cfg.Encode.FoldCase, e.FoldCase)
		setString(&cfg.Encode.Mode, e.Mode)
		setBool(&cfg.Encode.Strict, e.Strict)
	}
	if d := parsed.Decode; d != nil {
		setInt(&cfg.Decode.DarkThreshold, d.DarkThreshold)
		setInt(&cfg.Decode.SampleThreshold, d.SampleThreshold)
		setString(&cfg.Decode.Charset, d.Charset)
	}
	if l := parsed.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.Format, l.Format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Encode.Scale < 1 {
		return fmt.Errorf("encode.scale must be at least 1, got %d", c.Encode.Scale)
	}
	if c.Encode.QuietZone < 0 {
		return fmt.Errorf("encode.quiet_zone must not be negative, got %d", c.Encode.QuietZone)
	}
	if _, err := decoder.ParseMode(c.Encode.Mode); err != nil {
		return fmt.Errorf("encode.mode: %w", err)
	}
	if t := c.Decode.DarkThreshold; t < 1 || t > 127 {
		return fmt.Errorf("decode.dark_threshold must be in 1..127, got %d", t)
	}
	if t := c.Decode.SampleThreshold; t < 1 || t > 255 {
		return fmt.Errorf("decode.sample_threshold must be in 1..255, got %d", t)
	}
	if name := c.Decode.Charset; name != "" && !charset.IsUTF8(name) {
		if _, ok := charset.Lookup(name); !ok {
			return fmt.Errorf("decode.charset: unknown character set %q", name)
		}
	}
	return nil
}

// EncodeOptions converts the encode settings.
func (c *Config) EncodeOptions() *imgproc.EncodeOptions {
	margin := c.Encode.QuietZone
	return &imgproc.EncodeOptions{
		Mode:     c.Encode.Mode,
		FoldCase: c.Encode.FoldCase,
		Strict:   c.Encode.Strict,
		Margin:   &margin,
		Scale:    c.Encode.Scale,
	}
}

// DecodeOptions converts the decode settings.
func (c *Config) DecodeOptions() *imgproc.DecodeOptions {
	return &imgproc.DecodeOptions{
		DarkThreshold:   c.Decode.DarkThreshold,
		SampleThreshold: c.Decode.SampleThreshold,
		CharacterSet:    c.Decode.Charset,
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
