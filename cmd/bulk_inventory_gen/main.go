// bulk_inventory_gen generates a synthetic e-commerce inventory dataset and
// its benchmark command workload from a seed CSV of product rows.
//
// It emits three line-oriented CSV command files (ALL, SETUP, BENCH), a JSON
// manifest describing the generated artifacts, tar.gz compressed copies of
// the command files and, optionally, uploads everything to public object
// storage. The command files are consumed later by a benchmark runner; this
// tool never talks to a search engine itself.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/redisbench/redisearch-comparisons/bulk_data_gen/common"
	"github.com/redisbench/redisearch-comparisons/bulk_data_gen/inventory"
	"github.com/redisbench/redisearch-comparisons/bulk_query_gen/redisearch"
	"github.com/redisbench/redisearch-comparisons/util/archive"
	"github.com/redisbench/redisearch-comparisons/util/report"
	"github.com/redisbench/redisearch-comparisons/util/statemanager"
	"github.com/redisbench/redisearch-comparisons/util/upload"
)

const (
	s3BucketName = "benchmarks.redislabs"

	// Per-row document hint carried over from the seed dataset tooling.
	rowFanOut = 5
)

// Program option vars:
var (
	updateRatio            float64
	seed                   int64
	docLimit               int64
	totalBenchmarkCommands int64
	maxSkusPerAggregate    int
	maxNodesPerAggregate   int
	indexName              string
	testName               string
	testDescription        string
	countriesStr           string
	countriesProbStr       string
	outputFilePrefix       string
	benchmarkConfigFile    string
	inputDataFilename      string
	uploadArtifactsS3      bool
	generatorConfigFile    string
	timestampStartStr      string
	debug                  int
	cpuProfile             string

	timestampStart time.Time
	countries      []string
	countryWeights []float64
)

// Parse args:
func init() {
	flag.Float64Var(&updateRatio, "update-ratio", 0.85, "Fraction of benchmark commands that are updates; the remainder are reads.")
	flag.Int64Var(&seed, "seed", 12345, "PRNG seed.")
	flag.Int64Var(&docLimit, "doc-limit", 1000000, "Number of documents to generate before the setup phase stops.")
	flag.Int64Var(&totalBenchmarkCommands, "total-benchmark-commands", 1000000, "Number of mixed update/read benchmark commands to generate.")
	flag.IntVar(&maxSkusPerAggregate, "max-skus-per-aggregate", 100, "SKU ids sampled into each aggregate command.")
	flag.IntVar(&maxNodesPerAggregate, "max-nodes-per-aggregate", 100, "Node ids sampled into each aggregate command.")
	flag.StringVar(&indexName, "indexname", "inventory", "Index to create and target.")
	flag.StringVar(&testName, "test-name", "ecommerce-inventory", "Test name used in the manifest and remote paths.")
	flag.StringVar(&testDescription, "test-description", "benchmark focused on updates and aggregate performance", "Test description used in the manifest.")
	flag.StringVar(&countriesStr, "countries-alpha3", "US,CA,FR,IL,UK", "Comma-separated country codes used as markets.")
	flag.StringVar(&countriesProbStr, "countries-alpha3-probability", "0.8,0.05,0.05,0.05,0.05", "Comma-separated sampling weights, parallel to the country codes.")
	flag.StringVar(&outputFilePrefix, "benchmark-output-file-prefix", "ecommerce-inventory.redisearch.commands", "Prefix of the three generated command files.")
	flag.StringVar(&benchmarkConfigFile, "benchmark-config-file", "ecommerce-inventory.redisearch.cfg.json", "Output filename of the JSON manifest.")
	flag.StringVar(&inputDataFilename, "input-data-filename", "./../../scripts/usecases/ecommerce/amazon_co-ecommerce_sample.csv", "Seed CSV of product rows.")
	flag.BoolVar(&uploadArtifactsS3, "upload-artifacts-s3", false, fmt.Sprintf("Upload the generated dataset files and the manifest to the public %s bucket. Proper credentials are required.", s3BucketName))
	flag.StringVar(&generatorConfigFile, "config-file", "", "Generator config file in TOML format, local path or http(s) URL.")
	flag.StringVar(&timestampStartStr, "timestamp-start", inventory.DefaultDateTimeStart, "Base timestamp for restock fields (RFC3339).")
	flag.IntVar(&debug, "debug", 0, "Debug printing (choices: 0, 1) (default 0).")
	flag.StringVar(&cpuProfile, "cpu-profile", "", "Write CPU profile to `file`")

	flag.Parse()

	if updateRatio < 0 || updateRatio > 1 {
		log.Fatalf("invalid update ratio %f: must be within [0,1]", updateRatio)
	}
	if totalBenchmarkCommands < 0 {
		log.Fatal("invalid total benchmark commands: must be non-negative")
	}

	countries = strings.Split(countriesStr, ",")
	for _, probStr := range strings.Split(countriesProbStr, ",") {
		p, err := strconv.ParseFloat(probStr, 64)
		if err != nil {
			log.Fatalf("invalid country probability %q: %v", probStr, err)
		}
		countryWeights = append(countryWeights, p)
	}
	if len(countries) != len(countryWeights) {
		log.Fatalf("countries mismatch: %d codes vs %d probabilities", len(countries), len(countryWeights))
	}

	var err error
	timestampStart, err = time.Parse(time.RFC3339, timestampStartStr)
	if err != nil {
		log.Fatal(err)
	}
	timestampStart = timestampStart.UTC()
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Printf("%s took %s", name, elapsed)
}

func main() {
	defer timeTrack(time.Now(), "bulk_inventory_gen - main()")

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	common.Seed(seed)

	simCfg := &inventory.InventorySimulatorConfig{
		Start:          timestampStart,
		Countries:      countries,
		CountryWeights: countryWeights,
	}
	if generatorConfigFile != "" {
		c, err := common.NewConfig(generatorConfigFile)
		if err != nil {
			log.Fatalf("external config error: %v", err)
		}
		common.Config = c
		log.Printf("Using config file %s\n", generatorConfigFile)
		applyExternalConfig(simCfg)
	}

	countriesDesc := make([]string, len(simCfg.Countries))
	for i, country := range simCfg.Countries {
		countriesDesc[i] = fmt.Sprintf("%s %g%%", country, simCfg.CountryWeights[i]*100.0)
	}
	log.Printf("Using %d countries with the following probabilities %s", len(simCfg.Countries), strings.Join(countriesDesc, " "))
	fmt.Fprintf(os.Stderr, "using random seed %d\n", seed)

	sim, err := simCfg.ToSimulator()
	if err != nil {
		log.Fatal(err)
	}

	allFname := fmt.Sprintf("%s.ALL.csv", outputFilePrefix)
	setupFname := fmt.Sprintf("%s.SETUP.csv", outputFilePrefix)
	benchFname := fmt.Sprintf("%s.BENCH.csv", outputFilePrefix)

	sm := statemanager.GetManager()

	sm.SetState(statemanager.PhaseSetupGeneration)
	generateSetupDocs(sim)
	log.Printf("Generated %d total docs with %d distinct skus and %d distinct nodes",
		sim.TotalDocs(), sim.TotalSkus(), sim.TotalNodes())

	sm.SetState(statemanager.PhaseSetupPersist)
	allFile := newCommandFile(allFname)
	setupFile := newCommandFile(setupFname)
	log.Printf("saving setup commands to %s and %s", setupFname, allFname)
	for _, doc := range sim.Docs() {
		row := redisearch.NewFtAdd(indexName, doc)
		allFile.write(row)
		setupFile.write(row)
	}
	setupFile.close()

	if sim.TotalDocs() == 0 {
		log.Fatalf("no documents were generated (doc-limit %d): cannot derive the %s schema from an empty document set", docLimit, indexName)
	}
	createCmd := redisearch.NewFtCreate(indexName, sim.Docs()[0])
	log.Printf("index creation command: %s", createCmd.String())
	setupCommands := [][]string{createCmd}

	sm.SetState(statemanager.PhaseBenchmarkGeneration)
	log.Printf("generating %d update/read commands, saving to %s and %s", totalBenchmarkCommands, benchFname, allFname)
	benchFile := newCommandFile(benchFname)
	totalUpdates, totalReads := generateBenchmarkCommands(sim, allFile, benchFile)
	benchFile.close()
	allFile.close()

	sm.SetState(statemanager.PhaseManifest)
	manifest := buildManifest(sim, allFname, setupFname, benchFname, setupCommands, totalUpdates, totalReads)
	if err := manifest.WriteFile(benchmarkConfigFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("saved manifest to %s", benchmarkConfigFile)

	if uploadArtifactsS3 {
		sm.SetState(statemanager.PhaseUpload)
		log.Println("uploading dataset artifacts to s3")
		uploadArtifacts([]string{
			benchmarkConfigFile,
			allFname + ".tar.gz",
			setupFname + ".tar.gz",
			benchFname + ".tar.gz",
		})
	}

	sm.SetState(statemanager.PhaseDone)
}

func applyExternalConfig(simCfg *inventory.InventorySimulatorConfig) {
	inv := common.Config.Inventory
	if len(inv.Countries) > 0 {
		simCfg.Countries = inv.Countries
		simCfg.CountryWeights = inv.Probabilities
	}
	if inv.MaxQuantity > 0 {
		simCfg.MaxQuantity = inv.MaxQuantity
	}
	if inv.RestockHorizonSeconds > 0 {
		simCfg.RestockHorizon = time.Duration(inv.RestockHorizonSeconds) * time.Second
	}
	if inv.NodesPerRow > 0 {
		simCfg.NodesPerRow = inv.NodesPerRow
	}
}

// generateSetupDocs cycles over the input CSV, re-reading it from the start,
// until the document quota is exceeded. Registries persist across cycles so
// documents keep accumulating and deduplicating.
func generateSetupDocs(sim *inventory.InventorySimulator) {
	for int64(sim.TotalDocs()) < docLimit {
		added, err := scanInputFile(sim)
		if err != nil {
			log.Fatal(err)
		}
		if added == 0 {
			log.Fatalf("a full pass over %s produced no new documents; cannot reach doc limit %d", inputDataFilename, docLimit)
		}
		if debug > 0 {
			log.Printf("pass over %s added %d docs (%d/%d)", inputDataFilename, added, sim.TotalDocs(), docLimit)
		}
	}
}

// scanInputFile performs one pass over the seed CSV, stopping early once the
// quota is exceeded. Any malformed row aborts the run.
func scanInputFile(sim *inventory.InventorySimulator) (int64, error) {
	f, err := os.Open(inputDataFilename)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot open input file %s", inputDataFilename)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 4<<20))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	passAdded := int64(0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return passAdded, errors.Wrapf(err, "scan of %s failed", inputDataFilename)
		}
		added, err := sim.ProcessRow(record, rowFanOut)
		if err != nil {
			return passAdded, errors.Wrapf(err, "scan of %s failed", inputDataFilename)
		}
		passAdded += int64(added)
		if int64(sim.TotalDocs()) > docLimit {
			break
		}
	}
	return passAdded, nil
}

func generateBenchmarkCommands(sim *inventory.InventorySimulator, allFile, benchFile *commandFile) (totalUpdates, totalReads int64) {
	choice, err := common.NewWeightedDistribution([]string{"update", "read"}, []float64{updateRatio, 1 - updateRatio})
	if err != nil {
		log.Fatal(err)
	}
	docs := sim.Docs()
	skuIds := sim.SkuIds()
	nodeIds := sim.NodeIds()
	markets := sim.Markets()

	for i := int64(0); i < totalBenchmarkCommands; i++ {
		var row common.Command
		switch choice.Sample() {
		case "update":
			doc := docs[common.RandIntn(len(docs))]
			row = redisearch.NewFtAddUpdate(indexName, doc, common.RandBool(), common.RandBool())
			totalUpdates++
		case "read":
			row = redisearch.NewFtAggregate(indexName, markets.Sample(),
				common.SampleWithReplacement(skuIds, maxSkusPerAggregate),
				common.SampleWithReplacement(nodeIds, maxNodesPerAggregate))
			totalReads++
		default:
			panic("unreachable")
		}
		allFile.write(row)
		benchFile.write(row)
	}
	return totalUpdates, totalReads
}

func buildManifest(sim *inventory.InventorySimulator, allFname, setupFname, benchFname string, setupCommands [][]string, totalUpdates, totalReads int64) *report.Manifest {
	s3BucketPath := fmt.Sprintf("redisearch/datasets/%s/", testName)
	s3URI := fmt.Sprintf("https://s3.amazonaws.com/%s/%s", s3BucketName, s3BucketPath)

	totalDocs := int64(sim.TotalDocs())
	totalSetupCommands := totalDocs
	totalCommands := totalSetupCommands + totalBenchmarkCommands

	categoryAll := report.CommandCategories{SetupWrites: totalDocs, Updates: totalUpdates, Reads: totalReads}
	categorySetup := report.CommandCategories{SetupWrites: totalDocs}
	categoryBenchmark := report.CommandCategories{Updates: totalUpdates, Reads: totalReads}

	inputs := map[string]report.InputDescription{
		"all":       describeInput("all", allFname, "contains both setup and benchmark commands", s3URI, totalCommands, categoryAll),
		"setup":     describeInput("setup", setupFname, "contains only the commands required to populate the dataset", s3URI, totalSetupCommands, categorySetup),
		"benchmark": describeInput("benchmark", benchFname, "contains only the benchmark commands (required the dataset to have been previously populated)", s3URI, totalBenchmarkCommands, categoryBenchmark),
	}

	return &report.Manifest{
		Version:     report.SchemaVersion,
		Name:        testName,
		Description: testDescription,
		RunParameters: map[string]interface{}{
			"update-ratio":                 updateRatio,
			"seed":                         seed,
			"doc-limit":                    docLimit,
			"total-benchmark-commands":     totalBenchmarkCommands,
			"max-skus-per-aggregate":       maxSkusPerAggregate,
			"max-nodes-per-aggregate":      maxNodesPerAggregate,
			"indexname":                    indexName,
			"countries-alpha3":             countriesStr,
			"countries-alpha3-probability": countriesProbStr,
			"input-data-filename":          inputDataFilename,
			"timestamp-start":              timestampStartStr,
		},
		SetupCommands:          setupCommands,
		TeardownCommands:       [][]string{},
		UsedIndices:            []string{indexName},
		TotalCommands:          totalCommands,
		TotalSetupCommands:     totalSetupCommands,
		TotalBenchmarkCommands: totalBenchmarkCommands,
		TotalDocs:              totalDocs,
		TotalUpdates:           totalUpdates,
		TotalReads:             totalReads,
		SetupInputsOrder:       []string{"setup"},
		BenchmarkInputsOrder:   []string{"benchmark"},
		Inputs:                 inputs,
	}
}

// describeInput compresses one command file and records its metadata.
func describeInput(inputType, fname, description, s3URI string, totalCommands int64, categories report.CommandCategories) report.InputDescription {
	compressedFname := fname + ".tar.gz"
	uncompressed, compressed, err := archive.CompressFiles([]string{fname}, compressedFname)
	if err != nil {
		log.Fatal(err)
	}
	remoteURL := s3URI + compressedFname
	return report.NewInputDescription(inputType, fname, description, remoteURL, uncompressed, compressedFname, compressed, totalCommands, categories)
}

func uploadArtifacts(filenames []string) {
	s3BucketPath := fmt.Sprintf("redisearch/datasets/%s/", testName)
	uploader, err := upload.NewS3Uploader(upload.DefaultEndpoint, s3BucketName, s3BucketPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := uploader.UploadPublic(context.Background(), filenames); err != nil {
		log.Fatal(err)
	}
	log.Printf("uploaded %d artifacts to %s/%s", len(filenames), s3BucketName, s3BucketPath)
}

// commandFile is one open output command file with buffered CSV writing.
type commandFile struct {
	name string
	f    *os.File
	buf  *bufio.Writer
	cw   *common.CommandWriter
}

func newCommandFile(name string) *commandFile {
	f, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	buf := bufio.NewWriterSize(f, 4<<20)
	return &commandFile{name: name, f: f, buf: buf, cw: common.NewCommandWriter(buf)}
}

func (cf *commandFile) write(cmd common.Command) {
	if err := cf.cw.Write(cmd); err != nil {
		log.Fatalf("write to %s failed: %v", cf.name, err)
	}
}

func (cf *commandFile) close() {
	if err := cf.cw.Flush(); err != nil {
		log.Fatalf("flush of %s failed: %v", cf.name, err)
	}
	if err := cf.buf.Flush(); err != nil {
		log.Fatalf("flush of %s failed: %v", cf.name, err)
	}
	if err := cf.f.Close(); err != nil {
		log.Fatalf("close of %s failed: %v", cf.name, err)
	}
}
