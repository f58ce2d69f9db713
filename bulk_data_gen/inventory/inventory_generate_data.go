package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	. "github.com/redisbench/redisearch-comparisons/bulk_data_gen/common"
)

// Seed CSV column layout (the remaining columns are unused):
const (
	ColSkuId   = 0
	ColBrand   = 2
	ColSellers = 16

	MinRowColumns = ColSellers + 1
)

const (
	DefaultDateTimeStart = "2018-01-01T00:00:00Z"

	// Candidate documents drawn per source row, with replacement, from the
	// full node registry.
	DefaultNodesPerRow = 10

	// Stock quantities are uniform in [0, DefaultMaxQuantity].
	DefaultMaxQuantity = 64000

	// Restock timestamps land uniformly within this horizon after the
	// simulation start.
	DefaultRestockHorizon = 24 * time.Hour
)

const (
	defaultNodeType = "store"
	trueTag         = "true"
	falseTag        = "false"
)

// Seller lists arrive serialized as `"Seller_name_1"=>"Acme", ...`.
var sellerPattern = regexp.MustCompile(`"Seller_name_\d+"=>"([^"]+)"`)

// InventorySimulatorConfig is used to create an InventorySimulator.
type InventorySimulatorConfig struct {
	Start time.Time

	Countries      []string
	CountryWeights []float64

	NodesPerRow    int
	MaxQuantity    int64
	RestockHorizon time.Duration
}

func (c *InventorySimulatorConfig) ToSimulator() (*InventorySimulator, error) {
	markets, err := NewWeightedDistribution(c.Countries, c.CountryWeights)
	if err != nil {
		return nil, err
	}
	nodesPerRow := c.NodesPerRow
	if nodesPerRow <= 0 {
		nodesPerRow = DefaultNodesPerRow
	}
	maxQuantity := c.MaxQuantity
	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxQuantity
	}
	horizon := c.RestockHorizon
	if horizon <= 0 {
		horizon = DefaultRestockHorizon
	}
	return &InventorySimulator{
		start:          c.Start,
		markets:        markets,
		nodesPerRow:    nodesPerRow,
		maxQuantity:    maxQuantity,
		horizonSeconds: int64(horizon / time.Second),

		nodes:     make(map[string]int),
		skuCounts: make(map[string]int),
		docsSeen:  make(map[string]struct{}),
	}, nil
}

// An InventorySimulator fabricates synthetic inventory documents from seed
// CSV rows. It owns the node registry, the SKU registry and the document set;
// all of them grow during setup generation and are read-only afterwards.
type InventorySimulator struct {
	start          time.Time
	markets        *WeightedDistribution
	nodesPerRow    int
	maxQuantity    int64
	horizonSeconds int64

	nodes      map[string]int // seller name -> node id, first-seen order
	nodeNames  []string       // sampling universe, same order as registration
	totalNodes int

	skuCounts map[string]int
	skuIds    []string // distinct SKUs, first-seen order

	docsSeen map[string]struct{}
	docs     []*Document
}

func (s *InventorySimulator) Docs() []*Document { return s.docs }

func (s *InventorySimulator) TotalDocs() int { return len(s.docs) }

func (s *InventorySimulator) TotalNodes() int { return s.totalNodes }

func (s *InventorySimulator) SkuIds() []string { return s.skuIds }

func (s *InventorySimulator) TotalSkus() int { return len(s.skuIds) }

func (s *InventorySimulator) Markets() *WeightedDistribution { return s.markets }

// NodeId returns the id registered for a seller name.
func (s *InventorySimulator) NodeId(seller string) (int, bool) {
	id, ok := s.nodes[seller]
	return id, ok
}

// NodeIds returns the benchmark sampling universe of node ids, as strings.
func (s *InventorySimulator) NodeIds() []string {
	ids := make([]string, 0, s.totalNodes)
	for i := 1; i < s.totalNodes; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}

// ProcessRow fabricates documents for one seed CSV record and registers any
// newly seen sellers. fanOut is the per-row document hint carried by the seed
// dataset; the candidate count is governed by the node sample size, so the
// hint is accepted but does not bound the draw. Candidate documents whose
// composite id was already seen are silently dropped, never retried.
func (s *InventorySimulator) ProcessRow(record []string, fanOut int) (int, error) {
	if len(record) < MinRowColumns {
		return 0, fmt.Errorf("malformed row: got %d columns, need at least %d", len(record), MinRowColumns)
	}
	skuId := record[ColSkuId]
	brand := record[ColBrand]
	sellersRaw := record[ColSellers]

	matches := sellerPattern.FindAllStringSubmatch(sellersRaw, -1)
	if len(matches) == 0 {
		// rows without a parsable seller list contribute no documents
		return 0, nil
	}
	for _, m := range matches {
		seller := m[1]
		if _, ok := s.nodes[seller]; !ok {
			s.totalNodes++
			s.nodes[seller] = s.totalNodes
			s.nodeNames = append(s.nodeNames, seller)
		}
	}

	added := 0
	for _, seller := range SampleWithReplacement(s.nodeNames, s.nodesPerRow) {
		nodeId := s.nodes[seller]
		if _, ok := s.skuCounts[skuId]; !ok {
			s.skuIds = append(s.skuIds, skuId)
		}
		s.skuCounts[skuId]++
		market := s.markets.Sample()
		docId := fmt.Sprintf("%s_%d_%s", market, nodeId, NewUniqueSuffix())
		if _, ok := s.docsSeen[docId]; ok {
			continue
		}
		s.docsSeen[docId] = struct{}{}
		s.docs = append(s.docs, s.newDocument(docId, market, nodeId, skuId, brand))
		added++
	}
	return added, nil
}

func (s *InventorySimulator) newDocument(docId, market string, nodeId int, skuId, brand string) *Document {
	doc := NewDocument(docId)
	doc.AppendTagField("market", market, OptionSortable)
	doc.AppendTagField("nodeId", strconv.Itoa(nodeId), OptionSortable)
	doc.AppendTagField("skuId", skuId, OptionSortable)

	for _, quantity := range []string{
		"onhand",
		"allocated",
		"reserved",
		"storeAllocated",
		"transferAllocated",
		"storeReserved",
	} {
		doc.AppendNumericField(quantity, s.randQuantity(), OptionSortable, OptionNoIndex)
		doc.AppendNumericField(quantity+"LastUpdatedTimestamp", s.randRestockTimestamp(), OptionSortable, OptionNoIndex)
	}
	doc.AppendNumericField("confirmedQuantity", s.randQuantity(), OptionSortable, OptionNoIndex)
	doc.AppendNumericField("standardSafetyStock", s.randQuantity(), OptionSortable, OptionNoIndex)
	doc.AppendNumericField("bopisSafetyStock", s.randQuantity(), OptionSortable, OptionNoIndex)
	doc.AppendNumericField("virtualHold", s.randQuantity(), OptionSortable, OptionNoIndex)

	doc.AppendTagField("availableToSource", trueTag)
	doc.AppendTagField("standardAvailableToPromise", trueTag)
	doc.AppendTagField("bopisAvailableToPromise", trueTag)
	doc.AppendTagField("nodeType", defaultNodeType)
	doc.AppendTagField("brand", SanitizeTag(brand), OptionNoIndex)
	doc.AppendTagField("onHold", falseTag)
	doc.AppendTagField("exclusionType", falseTag)
	return doc
}

func (s *InventorySimulator) randQuantity() int64 {
	return RandInt63n(s.maxQuantity + 1)
}

func (s *InventorySimulator) randRestockTimestamp() int64 {
	return s.start.Unix() + RandInt63n(s.horizonSeconds+1)
}
