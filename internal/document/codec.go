// Package document encodes proposals for storage and transport and defines
// the store contract shared by the local database and the remote client.
package document

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/theirongolddev/staffplan/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither JSON nor TOML.
	ErrUnsupportedFormat = errors.New("document: unsupported format")
	// ErrNotFound is returned by stores when no proposal matches an ID.
	ErrNotFound = errors.New("document: proposal not found")
)

// Encode renders p as indented JSON with RFC 3339 dates.
func Encode(p model.Proposal) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding proposal: %w", err)
	}
	return data, nil
}

// Decode parses a JSON proposal and fills in an empty view.
func Decode(data []byte) (model.Proposal, error) {
	var p model.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Proposal{}, fmt.Errorf("decoding proposal: %w", err)
	}
	normalize(&p)
	return p, nil
}

func normalize(p *model.Proposal) {
	if p.View == "" {
		p.View = model.Combined
	}
	if p.ActiveClient == "" && len(p.Clients) > 0 {
		p.ActiveClient = p.Clients[0].Client
	}
}
