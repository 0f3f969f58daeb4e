package authority

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"authorlink/internal/textutil"
)

// Cluster is one authority record believed to represent a single
// real-world person: aliases, structured name sub-records, and work
// titles. Read-only; all accessors degrade to empty results on missing
// or malformed content.
type Cluster struct {
	node *xmlquery.Node
}

// NameParts is one structured UNIMARC name sub-record.
type NameParts struct {
	Given  string
	Family string
	Extra  string

	// SortName is the filing-order string derived from the populated
	// parts, family first.
	SortName string
}

var wikidataID = regexp.MustCompile(`^Q[0-9]`)

// parserOptions keeps the decoder non-strict so partially invalid
// documents degrade to partial extraction instead of failing outright.
var parserOptions = xmlquery.ParserOptions{
	Decoder: &xmlquery.DecoderOptions{
		Strict: false,
		Entity: xml.HTMLEntity,
	},
}

// ParseClusters parses a search-result document and returns every
// authority cluster found. An unparsable or empty document yields nil.
func ParseClusters(content []byte) []*Cluster {
	root := parse(content)
	if root == nil {
		return nil
	}
	nodes := query(root, "//*[local-name()='VIAFCluster']")
	clusters := make([]*Cluster, 0, len(nodes))
	for _, node := range nodes {
		clusters = append(clusters, &Cluster{node: node})
	}
	return clusters
}

// ParseCluster parses a single-record authority document, treating the
// whole tree as one cluster. Returns nil if nothing parses.
func ParseCluster(content []byte) *Cluster {
	root := parse(content)
	if root == nil {
		return nil
	}
	return &Cluster{node: root}
}

func parse(content []byte) *xmlquery.Node {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	root, err := xmlquery.ParseWithOptions(bytes.NewReader(content), parserOptions)
	if err != nil {
		return nil
	}
	return root
}

// query evaluates an XPath expression, swallowing expression errors so a
// bad document can never panic the extraction pipeline.
func query(node *xmlquery.Node, expr string) []*xmlquery.Node {
	if node == nil {
		return nil
	}
	nodes, err := xmlquery.QueryAll(node, expr)
	if err != nil {
		return nil
	}
	return nodes
}

func queryOne(node *xmlquery.Node, expr string) *xmlquery.Node {
	if node == nil {
		return nil
	}
	found, err := xmlquery.Query(node, expr)
	if err != nil {
		return nil
	}
	return found
}

// marcSubfields returns the texts of one subfield code across the MARC21
// datafields carrying the given tags.
func (c *Cluster) marcSubfields(code string, tags ...string) []string {
	var values []string
	for _, tag := range tags {
		fields := query(c.node, fmt.Sprintf(
			".//*[local-name()='datafield'][@dtype='MARC21'][@tag='%s']", tag))
		for _, field := range fields {
			for _, sub := range query(field, fmt.Sprintf(
				"*[local-name()='subfield'][@code='%s']", code)) {
				if text := strings.TrimSpace(sub.InnerText()); text != "" {
					values = append(values, text)
				}
			}
		}
	}
	return values
}

// SortNames returns every filing-order name the cluster records
// (MARC21 tags 100/110, subfield a).
func (c *Cluster) SortNames() []string {
	return c.marcSubfields("a", "100", "110")
}

// AlternateNames returns alias and pseudonym name forms
// (MARC21 tags 400/700, subfield a).
func (c *Cluster) AlternateNames() []string {
	return c.marcSubfields("a", "400", "700")
}

// NameTitles returns the title-like qualifiers attached to the primary
// name fields (MARC21 tags 100/110, subfield c).
func (c *Cluster) NameTitles() []string {
	return c.marcSubfields("c", "100", "110")
}

// UnimarcRecords returns the structured (given, family, extra) name
// sub-records with their derived sort names. Subfield a is the family
// name, b the given name, c an extra qualifier; dangling commas are
// stripped from every part.
func (c *Cluster) UnimarcRecords() []NameParts {
	fields := query(c.node, ".//*[local-name()='datafield'][@dtype='UNIMARC']")
	records := make([]NameParts, 0, len(fields))
	for _, field := range fields {
		var parts NameParts
		var sortParts []string
		for _, sub := range []struct {
			code string
			dest *string
		}{
			{"a", &parts.Family},
			{"b", &parts.Given},
			{"c", &parts.Extra},
		} {
			node := queryOne(field, fmt.Sprintf(
				"*[local-name()='subfield'][@code='%s']", sub.code))
			if node == nil {
				continue
			}
			value := textutil.StripDanglingCommas(node.InnerText())
			if value == "" {
				continue
			}
			*sub.dest = value
			sortParts = append(sortParts, value)
		}
		if parts.Given == "" && parts.Family == "" && parts.Extra == "" {
			continue
		}
		parts.SortName = strings.Join(sortParts, ", ")
		records = append(records, parts)
	}
	return records
}

// AuthorityID returns the cluster's authority identifier, or "".
func (c *Cluster) AuthorityID() string {
	node := queryOne(c.node, ".//*[local-name()='viafID']")
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}

// WikipediaName returns the cluster's Wikipedia page name if one is
// cross-referenced. Source entries are prefixed "WKP|"; a "Qnnn" value
// is a Wikidata identifier, not a page name, and is excluded.
func (c *Cluster) WikipediaName() string {
	sources := query(c.node, ".//*[local-name()='sources']/*[local-name()='source']")
	for _, source := range sources {
		text := strings.TrimSpace(source.InnerText())
		if !strings.HasPrefix(text, "WKP|") {
			continue
		}
		name := text[len("WKP|"):]
		if wikidataID.MatchString(name) {
			continue
		}
		return name
	}
	return ""
}

// Titles returns every work title the cluster attributes to this
// identity, in document order.
func (c *Cluster) Titles() []string {
	nodes := query(c.node,
		".//*[local-name()='titles']/*[local-name()='work']/*[local-name()='title']")
	titles := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if text := strings.TrimSpace(node.InnerText()); text != "" {
			titles = append(titles, text)
		}
	}
	return titles
}
