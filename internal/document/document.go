// Package document reads and writes record collections stored as XML.
package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"yashubustudio/topictagger/tagger"
)

const indentSpaces = 2

// Document is a parsed XML tree with its records located.
type Document struct {
	doc     *etree.Document
	records []*Record
}

// ReadFile parses the XML file at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an XML document from r. Input in a declared non-UTF-8 encoding
// is decoded; the tree always holds UTF-8 text.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	els := doc.FindElements("//record")
	records := make([]*Record, len(els))
	for i, el := range els {
		records[i] = &Record{el: el}
	}
	return &Document{doc: doc, records: records}, nil
}

// Records returns every record element in document order.
func (d *Document) Records() []tagger.Record {
	out := make([]tagger.Record, len(d.records))
	for i, r := range d.records {
		out[i] = r
	}
	return out
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.records)
}

// WriteTo serializes the tree, re-indented, with an XML declaration.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.ensureDeclaration()
	d.doc.Indent(indentSpaces)
	return d.doc.WriteTo(w)
}

// WriteFile writes the document to path through a temporary file in the same directory,
// so path is either fully written or left untouched.
func (d *Document) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := d.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

const declaration = `version="1.0" encoding="UTF-8"`

// ensureDeclaration makes the document declare UTF-8, replacing whatever
// encoding the input declared.
func (d *Document) ensureDeclaration() {
	for _, tok := range d.doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = declaration
			return
		}
	}
	d.doc.InsertChildAt(0, etree.NewProcInst("xml", declaration))
}

// Record wraps a record element.
type Record struct {
	el *etree.Element
}

// Fields returns the text of every title, then every text element, of each
// descriptions block under the record.
func (r *Record) Fields() []string {
	var fields []string
	for _, desc := range r.el.FindElements(".//descriptions") {
		for _, t := range desc.FindElements(".//title") {
			fields = append(fields, innerText(t))
		}
		for _, t := range desc.FindElements(".//text") {
			fields = append(fields, innerText(t))
		}
	}
	return fields
}

// TagIDs returns the id of every tag in the record's tag container.
func (r *Record) TagIDs() []string {
	tags := r.el.FindElement(".//tags")
	if tags == nil {
		return nil
	}
	var ids []string
	for _, t := range tags.SelectElements("tag") {
		if id := t.SelectAttrValue("id", ""); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// AppendTags appends one tag element per id after the container's existing children,
// creating the container when the record has none.
func (r *Record) AppendTags(ids []string) {
	tags := r.el.FindElement(".//tags")
	if tags == nil {
		tags = r.el.CreateElement("tags")
	}
	for _, id := range ids {
		tags.CreateElement("tag").CreateAttr("id", id)
	}
}

func innerText(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}
