package common

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Field type choices:
const (
	FieldTypeTag     = "TAG"
	FieldTypeNumeric = "NUMERIC"
)

// Indexing option choices:
const (
	OptionSortable = "SORTABLE"
	OptionNoIndex  = "NOINDEX"
)

var tagSanitizerRE = regexp.MustCompile(`[\W_]+`)

// SanitizeTag strips every non-alphanumeric character from a tag value.
func SanitizeTag(s string) string {
	return tagSanitizerRE.ReplaceAllString(s, "")
}

// Field is one named, typed value of a document plus its indexing options.
type Field struct {
	Name    string
	Type    string
	Value   string
	Options []string
}

// Document is one synthetic inventory record for a market/node/SKU triple.
// Fields keep insertion order so serialization is reproducible.
type Document struct {
	DocId  string
	Fields []Field
}

func NewDocument(docId string) *Document {
	return &Document{
		DocId:  docId,
		Fields: make([]Field, 0, 32),
	}
}

func (d *Document) AppendTagField(name, value string, options ...string) {
	d.Fields = append(d.Fields, Field{Name: name, Type: FieldTypeTag, Value: value, Options: options})
}

func (d *Document) AppendNumericField(name string, value int64, options ...string) {
	d.Fields = append(d.Fields, Field{Name: name, Type: FieldTypeNumeric, Value: strconv.FormatInt(value, 10), Options: options})
}

// FieldValue returns the value of the named field and whether it exists.
func (d *Document) FieldValue(name string) (string, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return d.Fields[i].Value, true
		}
	}
	return "", false
}

// NewUniqueSuffix mints a random document id suffix: a v4 UUID with the
// dashes stripped. The bytes come from the seeded generator, not crypto/rand,
// so runs stay reproducible.
func NewUniqueSuffix() string {
	u, err := uuid.NewRandomFromReader(localRand)
	if err != nil {
		// the math/rand reader never fails
		panic(err)
	}
	return strings.ReplaceAll(u.String(), "-", "")
}
