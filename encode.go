package equity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeGrants decodes grants from a stream of JSONL data, one grant per
// line, validating each and returning them sorted by vesting start date.
func DecodeGrants(r io.Reader) ([]Grant, error) {
	var grants []Grant
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var g Grant
		if err := json.Unmarshal(lineBytes, &g); err != nil {
			return nil, fmt.Errorf("line %d: could not decode grant: %w", line, err)
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		grants = append(grants, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read grants: %w", err)
	}

	sort.SliceStable(grants, func(i, j int) bool {
		return grants[i].VestingStart.Before(grants[j].VestingStart)
	})
	return grants, nil
}

// EncodeGrant appends a single grant to the writer as one JSONL line.
func EncodeGrant(w io.Writer, g Grant) error {
	if err := g.Validate(); err != nil {
		return err
	}
	bytes, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("could not encode grant %q: %w", g.ID, err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", bytes); err != nil {
		return fmt.Errorf("could not write grant %q: %w", g.ID, err)
	}
	return nil
}

// EncodeGrants writes every grant to the writer in JSONL format.
func EncodeGrants(w io.Writer, grants []Grant) error {
	for _, g := range grants {
		if err := EncodeGrant(w, g); err != nil {
			return err
		}
	}
	return nil
}
