package arff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/hclust/dataset"
)

// maxLine bounds a single input line (wide sparse rows can be long).
const maxLine = 16 << 20

const (
	kwRelation  = "@relation"
	kwAttribute = "@attribute"
	kwData      = "@data"
	kwEnd       = "@end"
)

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*dataset.Instances, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("arff: open: %w", err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// Read parses an ARFF document.
//
// Steps:
//  1. Header: @relation, then @attribute lines until @data.
//  2. Data: one instance per non-blank line, dense or sparse.
//
// A header without @data fails with ErrNoData; an empty @data section yields
// a dataset with zero instances.
func Read(r io.Reader) (*dataset.Instances, error) {
	p := &parser{sc: bufio.NewScanner(r)}
	p.sc.Buffer(make([]byte, 64*1024), maxLine)

	if err := p.readHeader(); err != nil {
		return nil, err
	}
	if err := p.readData(); err != nil {
		return nil, err
	}

	return p.data, nil
}

// parser holds the scanning state of one Read call.
type parser struct {
	sc   *bufio.Scanner
	line int
	data *dataset.Instances
}

// next returns the next non-blank, comment-stripped line.
func (p *parser) next() (string, bool, error) {
	for p.sc.Scan() {
		p.line++
		s := strings.TrimSpace(stripComment(p.sc.Text()))
		if s != "" {
			return s, true, nil
		}
	}
	if err := p.sc.Err(); err != nil {
		return "", false, lineError(p.line+1, err)
	}

	return "", false, nil
}

func (p *parser) readHeader() error {
	p.data = dataset.New("")
	seen := map[string]bool{}

	for {
		s, ok, err := p.next()
		if err != nil {
			return err
		}
		if !ok {
			return lineError(p.line, ErrNoData)
		}

		kw, rest, _, _ := nextToken(s)
		switch strings.ToLower(kw) {
		case kwRelation:
			name, _, _, ok := nextToken(rest)
			if !ok {
				return lineError(p.line, detailf(ErrSyntax, "relation name expected"))
			}
			p.data.Relation = name

		case kwAttribute:
			a, err := parseAttribute(rest)
			if err != nil {
				return lineError(p.line, err)
			}
			if seen[a.Name] {
				return lineError(p.line, detailf(ErrDuplicateAttribute, "%q", a.Name))
			}
			seen[a.Name] = true
			p.data.Attributes = append(p.data.Attributes, a)

		case kwData:
			if len(p.data.Attributes) == 0 {
				return lineError(p.line, detailf(ErrSyntax, "no attributes declared"))
			}

			return nil

		default:
			return lineError(p.line, detailf(ErrSyntax, "unexpected %q in header", kw))
		}
	}
}

// parseAttribute parses the text following "@attribute".
func parseAttribute(s string) (*dataset.Attribute, error) {
	name, rest, quoted, ok := nextToken(s)
	if i := strings.IndexByte(name, '{'); ok && !quoted && i > 0 {
		// "@attribute class{a,b}" without a separating blank.
		name, rest = name[:i], name[i:]+" "+rest
	}
	if !ok || rest == "" {
		return nil, detailf(ErrSyntax, "attribute name and type expected")
	}

	if rest[0] == '{' {
		end := matchBrace(rest)
		if end < 0 {
			return nil, detailf(ErrSyntax, "unterminated nominal list for %q", name)
		}
		fields, ok := splitFields(rest[1:end])
		if !ok {
			return nil, detailf(ErrSyntax, "unterminated quote in nominal list for %q", name)
		}
		labels := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.text == "" && !f.quoted {
				continue
			}
			labels = append(labels, f.text)
		}

		return dataset.NewNominal(name, labels...), nil
	}

	kind, tail, _, _ := nextToken(rest)
	switch strings.ToLower(kind) {
	case "numeric", "real", "integer":
		return dataset.NewNumeric(name), nil
	case "string":
		return dataset.NewString(name), nil
	case "date":
		format := dataset.DefaultDateFormat
		if f, _, _, ok := nextToken(tail); ok {
			format = f
		}

		return dataset.NewDate(name, format), nil
	case "relational":
		return nil, detailf(ErrUnsupportedType, "%q is relational", name)
	default:
		return nil, detailf(ErrUnsupportedType, "%q has type %q", name, kind)
	}
}

func (p *parser) readData() error {
	for {
		s, ok, err := p.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if strings.EqualFold(s, kwEnd) {
			return nil
		}

		row, weight, err := p.parseRow(s)
		if err != nil {
			return lineError(p.line, err)
		}
		if err = p.data.AddWeighted(row, weight); err != nil {
			return lineError(p.line, err)
		}
	}
}

// parseRow decodes one data line into values and the instance weight.
func (p *parser) parseRow(s string) ([]float64, float64, error) {
	if s[0] == '{' {
		return p.parseSparse(s)
	}

	fields, ok := splitFields(s)
	if !ok {
		return nil, 0, detailf(ErrSyntax, "unterminated quote")
	}
	weight := 1.0
	n := len(p.data.Attributes)
	if len(fields) == n+1 {
		w, err := parseWeight(fields[n])
		if err != nil {
			return nil, 0, err
		}
		weight = w
		fields = fields[:n]
	}
	if len(fields) != n {
		return nil, 0, detailf(ErrColumnCount, "got %d, want %d", len(fields), n)
	}

	row := make([]float64, n)
	for j, f := range fields {
		v, err := parseValue(p.data.Attributes[j], f)
		if err != nil {
			return nil, 0, err
		}
		row[j] = v
	}

	return row, weight, nil
}

// parseSparse decodes "{i v, j w, ...}" with an optional ",{weight}" suffix.
// Omitted values are 0 (first label for nominal attributes).
func (p *parser) parseSparse(s string) ([]float64, float64, error) {
	end := matchBrace(s)
	if end < 0 {
		return nil, 0, detailf(ErrSyntax, "unterminated sparse row")
	}
	weight := 1.0
	if tail := strings.TrimSpace(s[end+1:]); tail != "" {
		if tail[0] != ',' {
			return nil, 0, detailf(ErrSyntax, "unexpected %q after sparse row", tail)
		}
		w, err := parseWeight(makeField(tail[1:]))
		if err != nil {
			return nil, 0, err
		}
		weight = w
	}

	attrs := p.data.Attributes
	row := make([]float64, len(attrs))
	for _, a := range attrs {
		if a.Type == dataset.String && a.NumStrings() == 0 {
			a.AddString("")
		}
	}

	body := strings.TrimSpace(s[1:end])
	if body == "" {
		return row, weight, nil
	}
	entries, ok := splitFields(body)
	if !ok {
		return nil, 0, detailf(ErrSyntax, "unterminated quote")
	}
	for _, e := range entries {
		idxTok, valTok, _, ok := nextToken(e.text)
		if !ok || valTok == "" {
			return nil, 0, detailf(ErrSyntax, "sparse entry %q", e.text)
		}
		j, err := strconv.Atoi(idxTok)
		if err != nil || j < 0 || j >= len(attrs) {
			return nil, 0, detailf(ErrSyntax, "sparse index %q", idxTok)
		}
		v, err := parseValue(attrs[j], makeField(valTok))
		if err != nil {
			return nil, 0, err
		}
		row[j] = v
	}

	return row, weight, nil
}

// parseWeight decodes a "{w}" instance weight field.
func parseWeight(f field) (float64, error) {
	t := f.text
	if f.quoted || len(t) < 2 || t[0] != '{' || t[len(t)-1] != '}' {
		return 0, detailf(ErrColumnCount, "trailing value %q is not a weight", t)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(t[1:len(t)-1]), 64)
	if err != nil {
		return 0, detailf(ErrBadNumber, "weight %q", t)
	}

	return w, nil
}

// parseValue converts one field according to the attribute type.
func parseValue(a *dataset.Attribute, f field) (float64, error) {
	if !f.quoted && f.text == "?" {
		return dataset.Missing(), nil
	}
	switch a.Type {
	case dataset.Numeric:
		v, err := strconv.ParseFloat(f.text, 64)
		if err != nil {
			return 0, detailf(ErrBadNumber, "%q for %q", f.text, a.Name)
		}

		return v, nil
	case dataset.Nominal:
		i := a.IndexOfLabel(f.text)
		if i < 0 {
			return 0, detailf(ErrUnknownLabel, "%q for %q", f.text, a.Name)
		}

		return float64(i), nil
	case dataset.String:
		return float64(a.AddString(f.text)), nil
	case dataset.Date:
		v, err := dataset.ParseDate(f.text, a.DateFormat)
		if err != nil {
			return 0, detailf(ErrBadDate, "%q for %q (format %q)", f.text, a.Name, a.DateFormat)
		}

		return v, nil
	default:
		return 0, detailf(ErrUnsupportedType, "%q", a.Name)
	}
}
