package table

import (
	"bytes"
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hankinsohl/fgdb/biz/dal/model"
	"github.com/hankinsohl/fgdb/pkg/jsonfmt"
	"github.com/hankinsohl/fgdb/pkg/metrics"
)

const licensesJSON = `[
  {
    "license": "CC-BY-4.0",
    "url": "https://creativecommons.org/licenses/by/4.0/"
  },
  {
    "license": "CC0",
    "url": "https://creativecommons.org/publicdomain/zero/1.0/"
  },
  {
    "license": "MIT",
    "url": "https://opensource.org/license/mit"
  },
  {
    "license": "Pixabay",
    "url": "https://pixabay.com/service/license-summary/"
  }
]`

// setupTx opens a scratch sqlite store and returns a transaction rolled back at cleanup.
func setupTx(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "table.db") + "?_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

func TestCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses()

	require.NoError(t, tbl.Create(ctx, tx))
	require.NoError(t, tbl.Create(ctx, tx))

	empty, err := tbl.IsEmpty(ctx, tx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCountAbsentTable(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)

	_, err := Colors().Count(ctx, tx)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, model.TableColors, opErr.Table)
	assert.Equal(t, "count", opErr.Op)

	_, err = Colors().IsEmpty(ctx, tx)
	assert.Error(t, err)
}

func TestDropAbsentTable(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses()

	require.NoError(t, tbl.Drop(ctx, tx))
	require.NoError(t, tbl.Create(ctx, tx))
	require.NoError(t, tbl.Drop(ctx, tx))
	_, err := tbl.Count(ctx, tx)
	assert.Error(t, err)
}

func TestImportSkipsExistingKeys(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses()
	require.NoError(t, tbl.Create(ctx, tx))

	n, err := tbl.Import(ctx, strings.NewReader(licensesJSON), tx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	n, err = tbl.Import(ctx, strings.NewReader(licensesJSON), tx)
	require.NoError(t, err)
	assert.Zero(t, n)

	changed := `[{"license": "MIT", "url": "https://example.com/changed"}]`
	_, err = tbl.Import(ctx, strings.NewReader(changed), tx)
	require.NoError(t, err)

	count, err := tbl.Count(ctx, tx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	rows, err := tbl.Rows(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, "https://opensource.org/license/mit", rows[2].URL)
}

func TestImportRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses()
	require.NoError(t, tbl.Create(ctx, tx))

	for name, input := range map[string]string{
		"malformed":     `[{"license": "MIT"`,
		"unknown field": `[{"license": "MIT", "url": "https://x.io", "year": 1988}]`,
		"relative url":  `[{"license": "MIT", "url": "mit.txt"}]`,
		"not an array":  `{"license": "MIT", "url": "https://x.io"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tbl.Import(ctx, strings.NewReader(input), tx)
			var opErr *OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, "import", opErr.Op)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}

	empty, err := tbl.IsEmpty(ctx, tx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestImportEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	require.NoError(t, BaseTypes().Create(ctx, tx))
	require.NoError(t, ExchangePrices().Create(ctx, tx))

	_, err := ExchangePrices().Import(ctx, strings.NewReader(`[{"base_type": "Chaos Orb", "price": 1}]`), tx)
	assert.Error(t, err)
}

func TestExportEmpty(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Colors()
	require.NoError(t, tbl.Create(ctx, tx))

	var buf bytes.Buffer
	require.NoError(t, tbl.Export(ctx, &buf, tx))
	assert.Equal(t, "[]", buf.String())
}

func TestExportImportFidelity(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses()
	require.NoError(t, tbl.Create(ctx, tx))

	// Import out of order; export sorts.
	shuffled := `[
  {"license": "Pixabay", "url": "https://pixabay.com/service/license-summary/"},
  {"license": "CC0", "url": "https://creativecommons.org/publicdomain/zero/1.0/"},
  {"license": "MIT", "url": "https://opensource.org/license/mit"},
  {"license": "CC-BY-4.0", "url": "https://creativecommons.org/licenses/by/4.0/"}
]`
	_, err := tbl.Import(ctx, strings.NewReader(shuffled), tx)
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, tbl.Export(ctx, &first, tx))
	assert.Equal(t, licensesJSON, first.String())

	_, err = tbl.Delete(ctx, tx)
	require.NoError(t, err)
	_, err = tbl.Import(ctx, bytes.NewReader(first.Bytes()), tx)
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, tbl.Export(ctx, &second, tx))
	assert.Equal(t, first.String(), second.String())
}

func TestExportEscapesNonASCII(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Classes()
	require.NoError(t, tbl.Create(ctx, tx))

	_, err := tbl.Import(ctx, strings.NewReader(`[{"class": "Maps ☠", "highest_rarity": null}]`), tx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.Export(ctx, &buf, tx))
	assert.Contains(t, buf.String(), `"Maps \u2620"`)
	assert.Contains(t, buf.String(), `"highest_rarity": null`)
}

func TestDeleteReturnsRowsRemoved(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses()
	require.NoError(t, tbl.Create(ctx, tx))
	_, err := tbl.Import(ctx, strings.NewReader(licensesJSON), tx)
	require.NoError(t, err)

	n, err := tbl.Delete(ctx, tx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	n, err = tbl.Delete(ctx, tx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDerivedKeysStored(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	for _, tbl := range []Table{BaseTypes(), BaseTypeItems(), AsyncPrices()} {
		require.NoError(t, tbl.Create(ctx, tx))
	}
	_, err := BaseTypes().Import(ctx, strings.NewReader(`[{"base_type": "Heavy Belt", "class": "Belts", "stack_size": 1, "liquidity": "Async", "url": null}]`), tx)
	require.NoError(t, err)
	_, err = BaseTypeItems().Import(ctx, strings.NewReader(`[
  {"base_type": "Heavy Belt", "item": null, "is_unique": false},
  {"base_type": "Heavy Belt", "item": "Headhunter", "is_unique": true}
]`), tx)
	require.NoError(t, err)
	_, err = AsyncPrices().Import(ctx, strings.NewReader(`[{"base_type": "Heavy Belt", "item": "Headhunter", "minimum_item_level": null, "gem_level": null, "rarity": "Unique", "price": 9000}]`), tx)
	require.NoError(t, err)

	var keys []string
	require.NoError(t, tx.Table(model.TableAsyncPrices).Pluck("async_price_key", &keys).Error)
	assert.Equal(t, []string{"Heavy Belt::Headhunter::null::null::Unique"}, keys)

	var buf bytes.Buffer
	require.NoError(t, AsyncPrices().Export(ctx, &buf, tx))
	assert.NotContains(t, buf.String(), "async_price_key")
	assert.NotContains(t, buf.String(), "base_type_item")
}

func jsonDecode(data []byte, v any) error {
	return jsonfmt.Decode(bytes.NewReader(data), v)
}

func licenseNames(rows []model.LicenseRow) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.License)
	}
	return names
}

func lettersRows(keys ...string) []model.LicenseRow {
	rows := make([]model.LicenseRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.LicenseRow{License: k, URL: "https://example.com/" + k})
	}
	return rows
}

func TestPartialWithDivisor(t *testing.T) {
	rows := lettersRows("A", "B", "C", "D")

	assert.Equal(t, lettersRows("B", "D"), PartialWithDivisor(rows, 2))
	assert.Empty(t, PartialWithDivisor(rows, 1))
	assert.Equal(t, lettersRows("B", "C", "D"), PartialWithDivisor(rows, 4))

	one := lettersRows("A")
	assert.Equal(t, one, PartialWithDivisor(one, 1))
	assert.Empty(t, PartialWithDivisor[model.LicenseRow](nil, 1))
}

func TestPartialWithDivisorSortsAndDedupes(t *testing.T) {
	rows := []model.ExchangePriceRow{
		{BaseType: "Z", Price: 1},
		{BaseType: "B", Price: 1},
		{BaseType: "A", Price: 1},
		{BaseType: "B", Price: 2},
		{BaseType: "C", Price: 1},
	}
	got := PartialWithDivisor(rows, 5)
	assert.Equal(t, []model.ExchangePriceRow{
		{BaseType: "A", Price: 1},
		{BaseType: "B", Price: 1},
		{BaseType: "C", Price: 1},
	}, got)
}

func TestPartialFourRows(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	tbl := Licenses(WithRand(src))
	for range 50 {
		var out bytes.Buffer
		require.NoError(t, tbl.Partial(strings.NewReader(licensesJSON), &out))

		var rows []model.LicenseRow
		require.NoError(t, jsonDecode(out.Bytes(), &rows))
		assert.Less(t, len(rows), 4)
		assert.Contains(t, []int{0, 2}, len(rows))
		assert.IsIncreasing(t, licenseNames(rows))
	}
}

func TestPartialSmallInputs(t *testing.T) {
	tbl := Licenses()
	for _, input := range []string{`[]`, `[{"license": "MIT", "url": "https://opensource.org/license/mit"}]`} {
		var out bytes.Buffer
		require.NoError(t, tbl.Partial(strings.NewReader(input), &out))
		var in, got []model.LicenseRow
		require.NoError(t, jsonDecode([]byte(input), &in))
		require.NoError(t, jsonDecode(out.Bytes(), &got))
		assert.Len(t, got, len(in))
	}
}

func TestPartialRoundTrip(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	tbl := Licenses(WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, tbl.Create(ctx, tx))

	var partial bytes.Buffer
	require.NoError(t, tbl.Partial(strings.NewReader(licensesJSON), &partial))

	count := func() int64 {
		n, err := tbl.Count(ctx, tx)
		require.NoError(t, err)
		return n
	}
	importString := func(s string) {
		_, err := tbl.Import(ctx, strings.NewReader(s), tx)
		require.NoError(t, err)
	}

	importString(partial.String())
	afterPartial := count()
	assert.Less(t, afterPartial, int64(4))

	importString(partial.String())
	assert.Equal(t, afterPartial, count())

	importString(licensesJSON)
	assert.EqualValues(t, 4, count())

	importString(partial.String())
	assert.EqualValues(t, 4, count())
}

func TestMetricsObserved(t *testing.T) {
	ctx := context.Background()
	tx := setupTx(t)
	reg := prometheus.NewRegistry()
	m, err := metrics.NewTableMetrics(reg)
	require.NoError(t, err)

	tbl := Licenses(WithMetrics(m))
	require.NoError(t, tbl.Create(ctx, tx))
	_, err = tbl.Import(ctx, strings.NewReader(licensesJSON), tx)
	require.NoError(t, err)
	_, err = Licenses(WithMetrics(m)).Import(ctx, strings.NewReader(`[`), tx)
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Operations.WithLabelValues(model.TableLicenses, "create", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Operations.WithLabelValues(model.TableLicenses, "import", "error")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.Rows.WithLabelValues(model.TableLicenses, "import")), 0)
}
