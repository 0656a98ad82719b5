package reader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
)

// CustomersElement is the tag of one customer entry. The plural is the tag
// used by existing exports and must stay as is.
const CustomersElement = "Customers"

// XMLReader extracts every Customers element of a document. Each source key
// is a dotted path of tag names resolved to the first matching descendant.
type XMLReader struct {
	reader  io.Reader
	sources []string
}

func NewXMLReader(reader io.Reader, sources []string) *XMLReader {
	return &XMLReader{
		reader:  reader,
		sources: sources,
	}
}

// Read parses the whole document before extracting anything, so a document
// that is not well formed yields no records. A missing tag stops extraction
// at the offending element.
func (xr *XMLReader) Read() ([]map[string]string, error) {
	doc, err := parseXMLTree(newTextReader(xr.reader))
	if err != nil {
		return nil, apperr.NewMalformedRecordWrap(0, "document is not well formed", err)
	}

	var records []map[string]string
	for i, el := range doc.descendants(CustomersElement) {
		record := make(map[string]string, len(xr.sources))
		for _, source := range xr.sources {
			node := el
			for _, tag := range splitSource(source) {
				node = node.first(tag)
				if node == nil {
					return records, apperr.NewMalformedRecord(i+1,
						fmt.Sprintf("%s element has no %s", CustomersElement, source))
				}
			}
			record[source] = node.innerText()
		}
		records = append(records, record)
	}

	return records, nil
}

type xmlElement struct {
	name  string
	nodes []xmlNode
}

// xmlNode is either character data or a child element.
type xmlNode struct {
	text string
	elem *xmlElement
}

func parseXMLTree(r io.Reader) (*xmlElement, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = xmlCharsetReader

	doc := &xmlElement{}
	stack := []*xmlElement{doc}
	roots := 0
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		parent := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			if parent == doc {
				roots++
				if roots > 1 {
					return nil, fmt.Errorf("multiple root elements, second is <%s>", t.Name.Local)
				}
			}
			el := &xmlElement{name: t.Name.Local}
			parent.nodes = append(parent.nodes, xmlNode{elem: el})
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if parent != doc {
				parent.nodes = append(parent.nodes, xmlNode{text: string(t)})
			}
		}
	}

	if len(stack) > 1 {
		return nil, fmt.Errorf("element <%s> is not closed", stack[len(stack)-1].name)
	}
	if roots == 0 {
		return nil, errors.New("root element is missing")
	}
	return doc, nil
}

// descendants returns all elements below e with the given tag, in document order.
func (e *xmlElement) descendants(tag string) []*xmlElement {
	var found []*xmlElement
	var walk func(*xmlElement)
	walk = func(el *xmlElement) {
		for _, n := range el.nodes {
			if n.elem == nil {
				continue
			}
			if n.elem.name == tag {
				found = append(found, n.elem)
			}
			walk(n.elem)
		}
	}
	walk(e)
	return found
}

// first returns the first descendant with the given tag, or nil.
func (e *xmlElement) first(tag string) *xmlElement {
	for _, n := range e.nodes {
		if n.elem == nil {
			continue
		}
		if n.elem.name == tag {
			return n.elem
		}
		if found := n.elem.first(tag); found != nil {
			return found
		}
	}
	return nil
}

func (e *xmlElement) innerText() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *xmlElement) writeText(sb *strings.Builder) {
	for _, n := range e.nodes {
		if n.elem != nil {
			n.elem.writeText(sb)
			continue
		}
		sb.WriteString(n.text)
	}
}
