// Package report assembles the JSON manifest that describes a generated
// benchmark: the command artifacts, their sizes and remote locations, and the
// parameters of the run that produced them.
package report

import (
	"encoding/json"
	"io/ioutil"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// SchemaVersion identifies the manifest layout.
const SchemaVersion = "0.1"

// CommandCategories breaks a command count down by kind.
type CommandCategories struct {
	SetupWrites int64 `json:"setup-writes"`
	Writes      int64 `json:"writes"`
	Updates     int64 `json:"updates"`
	Reads       int64 `json:"reads"`
	Deletes     int64 `json:"deletes"`
}

func (c CommandCategories) Total() int64 {
	return c.SetupWrites + c.Writes + c.Updates + c.Reads + c.Deletes
}

// InputDescription records the metadata of one generated command file.
type InputDescription struct {
	LocalUncompressedFilename  string            `json:"local-uncompressed-filename"`
	LocalCompressedFilename    string            `json:"local-compressed-filename"`
	Type                       string            `json:"type"`
	Description                string            `json:"description"`
	RemoteURL                  string            `json:"remote-url"`
	CompressedBytes            int64             `json:"compressed-bytes"`
	CompressedBytesHumanized   string            `json:"compressed-bytes-humanized"`
	UncompressedBytes          int64             `json:"uncompressed-bytes"`
	UncompressedBytesHumanized string            `json:"uncompressed-bytes-humanized"`
	TotalCommands              int64             `json:"total-commands"`
	CommandCategory            CommandCategories `json:"command-category"`
}

func NewInputDescription(inputType, localFilename, description, remoteURL string, uncompressedBytes int64, compressedFilename string, compressedBytes int64, totalCommands int64, categories CommandCategories) InputDescription {
	return InputDescription{
		LocalUncompressedFilename:  localFilename,
		LocalCompressedFilename:    compressedFilename,
		Type:                       inputType,
		Description:                description,
		RemoteURL:                  remoteURL,
		CompressedBytes:            compressedBytes,
		CompressedBytesHumanized:   humanize.IBytes(uint64(compressedBytes)),
		UncompressedBytes:          uncompressedBytes,
		UncompressedBytesHumanized: humanize.IBytes(uint64(uncompressedBytes)),
		TotalCommands:              totalCommands,
		CommandCategory:            categories,
	}
}

// Manifest is the top-level benchmark configuration document.
type Manifest struct {
	Version          string                 `json:"version"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	RunParameters    map[string]interface{} `json:"run-parameters"`
	SetupCommands    [][]string             `json:"setup-commands"`
	TeardownCommands [][]string             `json:"teardown-commands"`
	UsedIndices      []string               `json:"used-indices"`

	TotalCommands          int64 `json:"total-commands"`
	TotalSetupCommands     int64 `json:"total-setup-commands"`
	TotalBenchmarkCommands int64 `json:"total-benchmark-commands"`
	TotalDocs              int64 `json:"total-docs"`
	TotalWrites            int64 `json:"total-writes"`
	TotalUpdates           int64 `json:"total-updates"`
	TotalReads             int64 `json:"total-reads"`
	TotalDeletes           int64 `json:"total-deletes"`

	RepetitionsRequireTeardownAndResetup bool `json:"benchmark-repetitions-require-teardown-and-resetup"`

	SetupInputsOrder     []string                    `json:"setup-inputs-order"`
	BenchmarkInputsOrder []string                    `json:"benchmark-inputs-order"`
	Inputs               map[string]InputDescription `json:"inputs"`
}

// WriteFile serializes the manifest with a 2-space indent.
func (m *Manifest) WriteFile(path string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "manifest marshal failed")
	}
	b = append(b, '\n')
	if err := ioutil.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "manifest write to %s failed", path)
	}
	return nil
}
