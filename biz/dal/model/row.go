// Package model defines the row records of the catalog tables.
//
// Each row mirrors one table's columns and carries gorm column tags for
// storage and json tags for the exchange format. Rows are totally ordered by
// Compare; two rows comparing equal are the same catalog entry.
package model

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hankinsohl/fgdb/pkg/constants"
)

// Table names in dependency order.
const (
	TableCraftingCategories = "crafting_categories"
	TableClasses            = "classes"
	TableBaseTypes          = "base_types"
	TableBaseTypeItems      = "base_type_items"
	TableArmorTypes         = "armor_types"
	TableAsyncPrices        = "async_prices"
	TableExchangePrices     = "exchange_prices"
	TableColors             = "colors"
	TableLicenses           = "licenses"
	TableSounds             = "sounds"
	TableActionSets         = "action_sets"
)

func cmpOpt[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func keyPart[T any](v *T) string {
	if v == nil {
		return constants.NullKeyPart
	}
	return fmt.Sprint(*v)
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: %q is not an absolute URL", field, raw)
	}
	return nil
}

// marshalPlain encodes v like json.Marshal but without HTML escaping, so nested
// encodings match the rest of the catalog output.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// unmarshalStrict decodes data into v rejecting unknown fields.
func unmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
