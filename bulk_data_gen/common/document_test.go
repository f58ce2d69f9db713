package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTag(t *testing.T) {
	require.Equal(t, "AcmeCorp", SanitizeTag("Acme_Corp!"))
	require.Equal(t, "true", SanitizeTag("true"))
	require.Equal(t, "", SanitizeTag("_-_"))
}

func TestDocumentFieldOrderAndLookup(t *testing.T) {
	doc := NewDocument("US_1_abc")
	doc.AppendTagField("market", "US", OptionSortable)
	doc.AppendNumericField("onhand", 42, OptionSortable, OptionNoIndex)
	doc.AppendTagField("brand", "Acme", OptionNoIndex)

	require.Equal(t, []string{"market", "onhand", "brand"}, fieldNames(doc))
	require.Equal(t, FieldTypeNumeric, doc.Fields[1].Type)
	require.Equal(t, "42", doc.Fields[1].Value)

	v, ok := doc.FieldValue("brand")
	require.True(t, ok)
	require.Equal(t, "Acme", v)

	_, ok = doc.FieldValue("missing")
	require.False(t, ok)
}

func TestNewUniqueSuffix(t *testing.T) {
	Seed(1)
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		s := NewUniqueSuffix()
		require.Len(t, s, 32)
		require.NotContains(t, s, "-")
		seen[s] = struct{}{}
	}
	require.Len(t, seen, 1000)
}

func TestNewUniqueSuffixDeterminism(t *testing.T) {
	Seed(12345)
	first := NewUniqueSuffix()
	Seed(12345)
	second := NewUniqueSuffix()
	require.Equal(t, first, second)
}

func TestCommandWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewCommandWriter(&buf)
	require.NoError(t, cw.Write(Command{"SETUP_WRITE", "FT.ADD", "inventory", "doc", "1.0"}))
	require.NoError(t, cw.Write(Command{"READ", "FT.AGGREGATE", "inventory", "@market:{US}"}))
	require.NoError(t, cw.Flush())

	out := buf.String()
	require.Equal(t, "SETUP_WRITE,FT.ADD,inventory,doc,1.0\nREAD,FT.AGGREGATE,inventory,@market:{US}\n", out)
}

func fieldNames(doc *Document) []string {
	names := make([]string, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		names = append(names, f.Name)
	}
	return names
}
