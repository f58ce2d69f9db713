package redisearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redisbench/redisearch-comparisons/bulk_data_gen/common"
)

func sampleDocument() *common.Document {
	doc := common.NewDocument("US_1_abcdef")
	doc.AppendTagField("market", "US", common.OptionSortable)
	doc.AppendTagField("nodeId", "1", common.OptionSortable)
	doc.AppendTagField("skuId", "X1", common.OptionSortable)
	doc.AppendNumericField("onhand", 7, common.OptionSortable, common.OptionNoIndex)
	doc.AppendTagField("availableToSource", "true")
	doc.AppendTagField("nodeType", "store")
	doc.AppendTagField("brand", "Acme", common.OptionNoIndex)
	return doc
}

func TestNewFtCreate(t *testing.T) {
	doc := sampleDocument()
	cmd := NewFtCreate("inventory", doc)

	require.Equal(t, common.Command{
		"FT.CREATE", "inventory", "SCHEMA",
		"market", "TAG", "SORTABLE",
		"nodeId", "TAG", "SORTABLE",
		"skuId", "TAG", "SORTABLE",
		"onhand", "NUMERIC", "SORTABLE", "NOINDEX",
		"availableToSource", "TAG",
		"nodeType", "TAG",
		"brand", "TAG", "NOINDEX",
	}, cmd)
}

func TestNewFtAdd(t *testing.T) {
	doc := sampleDocument()
	cmd := NewFtAdd("inventory", doc)

	require.Equal(t, common.Command{
		"SETUP_WRITE", "FT.ADD", "inventory", "inventory-US_1_abcdef", "1.0", "REPLACE", "FIELDS",
		"market", "US",
		"nodeId", "1",
		"skuId", "X1",
		"onhand", "7",
		"availableToSource", "true",
		"nodeType", "store",
		"brand", "Acme",
	}, cmd)
}

func TestNewFtAddUpdate(t *testing.T) {
	doc := sampleDocument()
	cmd := NewFtAddUpdate("inventory", doc, true, false)

	require.Equal(t, common.Command{
		"UPDATE", "FT.ADD", "inventory", "inventory-US_1_abcdef", "1.0", "REPLACE", "PARTIAL", "FIELDS",
		"market", "US",
		"nodeId", "1",
		"nodeType", "store",
		"availableToSource", "true",
		"standardAvailableToPromise", "false",
	}, cmd)
}

// an update must never name a field outside the allowed set
func TestNewFtAddUpdateTouchedFields(t *testing.T) {
	allowed := map[string]struct{}{
		"market":                     {},
		"nodeId":                     {},
		"nodeType":                   {},
		"availableToSource":          {},
		"standardAvailableToPromise": {},
	}
	cmd := NewFtAddUpdate("inventory", sampleDocument(), false, true)

	fieldsAt := -1
	for i, tok := range cmd {
		if tok == "FIELDS" {
			fieldsAt = i
			break
		}
	}
	require.NotEqual(t, -1, fieldsAt)
	pairs := cmd[fieldsAt+1:]
	require.Equal(t, 0, len(pairs)%2)
	for i := 0; i < len(pairs); i += 2 {
		_, ok := allowed[pairs[i]]
		require.True(t, ok, "unexpected field %s in update", pairs[i])
	}
}

func TestNewFtAggregate(t *testing.T) {
	cmd := NewFtAggregate("inventory", "US", []string{"X1", "X2"}, []string{"1", "7"})

	require.Equal(t, "READ", cmd[0])
	require.Equal(t, "FT.AGGREGATE", cmd[1])
	require.Equal(t, "inventory", cmd[2])
	require.Equal(t, "@market:{US} @skuId:{X1|X2} @nodeId:{1|7}", cmd[3])
	require.Equal(t, "LOAD", cmd[4])
	require.Equal(t, "21", cmd[5])

	loaded := cmd[6 : 6+21]
	for _, f := range loaded {
		require.True(t, strings.HasPrefix(f, "@"), "projection %s must be an attribute reference", f)
	}
	require.Equal(t, common.Command{"WITHCURSOR", "COUNT", "500"}, cmd[6+21:])
}

func TestNewFtAggregateEmptyNodeSet(t *testing.T) {
	cmd := NewFtAggregate("inventory", "US", []string{"X1"}, nil)
	require.Equal(t, "@market:{US} @skuId:{X1} @nodeId:{}", cmd[3])
}
