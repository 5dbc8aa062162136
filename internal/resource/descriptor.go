package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
)

const (
	// PrefixAttr is the attribute that keys a group element.
	PrefixAttr = "prefix"
	// RootPrefix is the prefix of the group migrations are registered under.
	RootPrefix = "/"
	// DefaultFileTag is the tag of a file entry.
	DefaultFileTag = "file"
	// DefaultEntryIndent is written after the entry that precedes a new one.
	DefaultEntryIndent = "\n        "
	// DefaultClosingIndent is written after a new entry, before the group's closing tag.
	DefaultClosingIndent = "\n    "
)

var (
	// ErrNoRoot is returned when a document contains no root element.
	ErrNoRoot = errors.New("descriptor has no root element")
	// ErrJunkAfterRoot is returned for a second top-level element or
	// non-whitespace text outside the root.
	ErrJunkAfterRoot = errors.New("junk after document element")
)

// Descriptor is a parsed migration resource document.
type Descriptor struct {
	doc     *etree.Document
	charset encoding.Encoding
}

// Group summarizes a direct child of the document root.
type Group struct {
	Index     int
	Tag       string
	Prefix    string
	HasPrefix bool
	Files     []string
}

// Entry describes a file entry to insert and the whitespace placed around it.
type Entry struct {
	Tag  string
	Name string
	// EntryIndent replaces the tail of the group's previous last element.
	EntryIndent string
	// ClosingIndent becomes the tail of the new element.
	ClosingIndent string
}

// NewEntry returns an entry for name using the default tag and indentation.
func NewEntry(name string) Entry {
	return Entry{
		Tag:           DefaultFileTag,
		Name:          name,
		EntryIndent:   DefaultEntryIndent,
		ClosingIndent: DefaultClosingIndent,
	}
}

// Parse reads a descriptor from r.
func Parse(r io.Reader) (*Descriptor, error) {
	d := &Descriptor{doc: etree.NewDocument()}
	d.doc.ReadSettings.PreserveCData = true
	d.doc.ReadSettings.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := lookupCharset(label)
		if err != nil {
			return nil, err
		}
		if enc == nil {
			return input, nil
		}
		d.charset = enc
		return enc.NewDecoder().Reader(input), nil
	}

	if _, err := d.doc.ReadFrom(r); err != nil {
		return nil, err
	}
	if err := checkTopLevel(d.doc); err != nil {
		return nil, err
	}
	return d, nil
}

// checkTopLevel requires exactly one element at document level. Comments,
// processing instructions and whitespace may surround it.
func checkTopLevel(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
			if roots > 1 {
				return fmt.Errorf("%w: second element <%s>", ErrJunkAfterRoot, t.FullTag())
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return fmt.Errorf("%w: text %q", ErrJunkAfterRoot, strings.TrimSpace(t.Data))
			}
		}
	}
	if roots == 0 {
		return ErrNoRoot
	}
	return nil
}

// Load parses the descriptor stored at path.
func Load(path string) (*Descriptor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer file.Close()

	d, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// RootTag returns the tag of the document element.
func (d *Descriptor) RootTag() string {
	return d.doc.Root().FullTag()
}

// Groups lists the root's child elements in document order. Files holds the
// trimmed text of every child element tagged fileTag.
func (d *Descriptor) Groups(fileTag string) []Group {
	children := d.doc.Root().ChildElements()
	groups := make([]Group, 0, len(children))
	for i, child := range children {
		g := Group{Index: i, Tag: child.FullTag()}
		if attr := child.SelectAttr(PrefixAttr); attr != nil {
			g.Prefix = attr.Value
			g.HasPrefix = true
		}
		for _, entry := range child.SelectElements(fileTag) {
			g.Files = append(g.Files, strings.TrimSpace(entry.Text()))
		}
		groups = append(groups, g)
	}
	return groups
}

// FindGroup returns the index of the first root child whose prefix attribute
// equals prefix.
func (d *Descriptor) FindGroup(prefix string) (int, bool) {
	i, el := d.findGroup(prefix)
	return i, el != nil
}

func (d *Descriptor) findGroup(prefix string) (int, *etree.Element) {
	for i, child := range d.doc.Root().ChildElements() {
		attr := child.SelectAttr(PrefixAttr)
		if attr != nil && attr.Value == prefix {
			return i, child
		}
	}
	return -1, nil
}

// AddFile appends entry to the first group keyed by prefix. It returns the
// group's index among the root's children and whether a group matched. Later
// groups with the same prefix are left alone.
func (d *Descriptor) AddFile(prefix string, entry Entry) (int, bool) {
	index, group := d.findGroup(prefix)
	if group == nil {
		return -1, false
	}

	previous := lastChildElement(group)
	created := group.CreateElement(entry.Tag)
	created.SetText(entry.Name)
	if previous != nil {
		previous.SetTail(entry.EntryIndent)
	}
	created.SetTail(entry.ClosingIndent)
	return index, true
}

func lastChildElement(el *etree.Element) *etree.Element {
	for i := len(el.Child) - 1; i >= 0; i-- {
		if child, ok := el.Child[i].(*etree.Element); ok {
			return child
		}
	}
	return nil
}

// WriteTo serializes the document to w, re-encoding into the declared
// charset when it is not UTF-8.
func (d *Descriptor) WriteTo(w io.Writer) (int64, error) {
	if d.charset == nil {
		return d.doc.WriteTo(w)
	}
	cw := charsetWriter(w, d.charset)
	n, err := d.doc.WriteTo(cw)
	if err != nil {
		return n, err
	}
	if err := cw.Close(); err != nil {
		return n, fmt.Errorf("encode descriptor: %w", err)
	}
	return n, nil
}

// Bytes returns the serialized document.
func (d *Descriptor) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
