// Package redisearch maps generated inventory documents into RediSearch
// command rows. Every generator is a pure function of its inputs; the rows it
// returns are alternating token lists ready for CSV serialization.
package redisearch

import (
	"fmt"
	"strings"

	"github.com/redisbench/redisearch-comparisons/bulk_data_gen/common"
)

// Command category tokens, consumed by the benchmark runner:
const (
	CategorySetupWrite = "SETUP_WRITE"
	CategoryUpdate     = "UPDATE"
	CategoryRead       = "READ"
)

const (
	documentWeight       = "1.0"
	aggregateCursorCount = "500"
)

// Projection loaded by every aggregate command. Kept verbatim from the
// production workload, including the repeated availableToSource entry.
var aggregateLoadFields = []string{
	"@market", "@skuId", "@nodeId", "@brand", "@nodeType",
	"@onhand", "@allocated", "@confirmedQuantity", "@reserved", "@virtualHold",
	"@availableToSource", "@standardAvailableToPromise", "@bopisAvailableToPromise",
	"@storeAllocated", "@bopisSafetyStock", "@transferAllocated",
	"@standardSafetyStock", "@storeReserved", "@availableToSource",
	"@exclusionType", "@onHold",
}

func documentKey(index string, doc *common.Document) string {
	return fmt.Sprintf("%s-%s", index, doc.DocId)
}

// NewFtCreate builds the one-off index creation command from a representative
// document, enumerating name, type and indexing options for every field.
func NewFtCreate(index string, doc *common.Document) common.Command {
	cmd := common.Command{"FT.CREATE", index, "SCHEMA"}
	for _, f := range doc.Fields {
		cmd = append(cmd, f.Name, f.Type)
		cmd = append(cmd, f.Options...)
	}
	return cmd
}

// NewFtAdd builds a setup write inserting the full document with a fixed
// relevance weight and replace semantics.
func NewFtAdd(index string, doc *common.Document) common.Command {
	cmd := common.Command{CategorySetupWrite, "FT.ADD", index, documentKey(index, doc), documentWeight, "REPLACE", "FIELDS"}
	for _, f := range doc.Fields {
		cmd = append(cmd, f.Name, f.Value)
	}
	return cmd
}

// NewFtAddUpdate builds a partial update that overwrites only the market,
// node id, node type and the two given availability flags; every other field
// is left untouched by the engine.
func NewFtAddUpdate(index string, doc *common.Document, availableToSource, standardAvailableToPromise bool) common.Command {
	market, _ := doc.FieldValue("market")
	nodeId, _ := doc.FieldValue("nodeId")
	nodeType, _ := doc.FieldValue("nodeType")
	return common.Command{
		CategoryUpdate, "FT.ADD", index, documentKey(index, doc), documentWeight,
		"REPLACE", "PARTIAL", "FIELDS",
		"market", market,
		"nodeId", nodeId,
		"nodeType", nodeType,
		"availableToSource", boolTag(availableToSource),
		"standardAvailableToPromise", boolTag(standardAvailableToPromise),
	}
}

// NewFtAggregate builds a read command filtering conjunctively on one market
// and the sampled SKU and node id sets, loading the fixed projection with
// cursor-based pagination.
func NewFtAggregate(index, market string, skuIds, nodeIds []string) common.Command {
	filter := fmt.Sprintf("@market:{%s} @skuId:{%s} @nodeId:{%s}",
		market, strings.Join(skuIds, "|"), strings.Join(nodeIds, "|"))
	cmd := common.Command{CategoryRead, "FT.AGGREGATE", index, filter,
		"LOAD", fmt.Sprintf("%d", len(aggregateLoadFields))}
	cmd = append(cmd, aggregateLoadFields...)
	cmd = append(cmd, "WITHCURSOR", "COUNT", aggregateCursorCount)
	return cmd
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
