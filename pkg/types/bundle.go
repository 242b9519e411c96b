package types

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// BundleVersion is the only export format version Import accepts.
const BundleVersion = "1.0"

// Bundle is the versioned container produced by export and consumed by import.
type Bundle struct {
	Version    string      `json:"version"`
	ExportDate time.Time   `json:"exportDate"`
	PlayTypes  []PlayType  `json:"playTypes"`
	Categories []Category  `json:"categories"`
	Equipments []Equipment `json:"equipments"`
}

// EncodeBundle writes b to w as indented JSON.
func EncodeBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return nil
}

// DecodeBundle reads a JSON bundle from r. It does not check the version;
// the store does that on import.
func DecodeBundle(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("decoding bundle: %w", err)
	}
	return b, nil
}
