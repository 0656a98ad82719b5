package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
)

const customerXML = `<?xml version="1.0" encoding="UTF-8"?>
<Root>
  <Customers>
    <Email>a@b.com</Email>
    <FirstName>jim</FirstName>
    <LastName>smith</LastName>
    <PhoneNumber>555-1234</PhoneNumber>
    <Address>
      <StreetAddress>101 Main St</StreetAddress>
      <City>Anytown</City>
      <State>ca</State>
      <ZipCode>90210</ZipCode>
    </Address>
  </Customers>
  <Customers>
    <Email>c@d.com</Email>
    <FirstName>ann</FirstName>
    <LastName>lee</LastName>
    <PhoneNumber>555-0000</PhoneNumber>
    <Address>
      <StreetAddress>9 Oak Ave</StreetAddress>
      <City>Smallville</City>
      <State>ks</State>
      <ZipCode>66002</ZipCode>
    </Address>
  </Customers>
</Root>`

func newDefaultXMLReader(doc string) *XMLReader {
	return NewXMLReader(strings.NewReader(doc), Sources(DefaultMapping()))
}

func TestXMLReader_Read(t *testing.T) {
	records, err := newDefaultXMLReader(customerXML).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{
		"Email":                 "a@b.com",
		"FirstName":             "jim",
		"LastName":              "smith",
		"PhoneNumber":           "555-1234",
		"Address.StreetAddress": "101 Main St",
		"Address.City":          "Anytown",
		"Address.State":         "ca",
		"Address.ZipCode":       "90210",
	}, records[0])
	assert.Equal(t, "c@d.com", records[1]["Email"])
	assert.Equal(t, "66002", records[1]["Address.ZipCode"])
}

func TestXMLReader_Read_FirstMatchingTagWins(t *testing.T) {
	doc := `<Root><Customers>
  <Email>first@b.com</Email><Email>second@b.com</Email>
  <FirstName>jim</FirstName><LastName>smith</LastName><PhoneNumber>1</PhoneNumber>
  <Address><StreetAddress>1 Main</StreetAddress><City>X</City><State>CA</State><ZipCode>1</ZipCode></Address>
</Customers></Root>`

	records, err := newDefaultXMLReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first@b.com", records[0]["Email"])
}

func TestXMLReader_Read_InnerTextOfNestedMarkup(t *testing.T) {
	doc := `<Root><Customers>
  <Email>a@b.com</Email><FirstName>ji<b>m</b></FirstName><LastName>smith</LastName><PhoneNumber>1</PhoneNumber>
  <Address><StreetAddress>1 Main</StreetAddress><City>X</City><State>CA</State><ZipCode><![CDATA[90210]]></ZipCode></Address>
</Customers></Root>`

	records, err := newDefaultXMLReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "jim", records[0]["FirstName"])
	assert.Equal(t, "90210", records[0]["Address.ZipCode"])
}

func TestXMLReader_Read_MissingAddressStopsFile(t *testing.T) {
	doc := `<Root>
  <Customers>
    <Email>a@b.com</Email><FirstName>jim</FirstName><LastName>smith</LastName><PhoneNumber>1</PhoneNumber>
    <Address><StreetAddress>1 Main</StreetAddress><City>X</City><State>CA</State><ZipCode>1</ZipCode></Address>
  </Customers>
  <Customers>
    <Email>broken@b.com</Email><FirstName>no</FirstName><LastName>address</LastName><PhoneNumber>2</PhoneNumber>
  </Customers>
  <Customers>
    <Email>c@d.com</Email><FirstName>ann</FirstName><LastName>lee</LastName><PhoneNumber>3</PhoneNumber>
    <Address><StreetAddress>9 Oak</StreetAddress><City>Y</City><State>KS</State><ZipCode>2</ZipCode></Address>
  </Customers>
</Root>`

	records, err := newDefaultXMLReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 2, me.Position)
	assert.Contains(t, me.Message, "Address.StreetAddress")

	require.Len(t, records, 1)
	assert.Equal(t, "a@b.com", records[0]["Email"])
}

func TestXMLReader_Read_MissingEmailStopsFile(t *testing.T) {
	doc := `<Root><Customers>
  <FirstName>jim</FirstName><LastName>smith</LastName><PhoneNumber>1</PhoneNumber>
  <Address><StreetAddress>1 Main</StreetAddress><City>X</City><State>CA</State><ZipCode>1</ZipCode></Address>
</Customers></Root>`

	records, err := newDefaultXMLReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 1, me.Position)
	assert.Contains(t, me.Message, "has no Email")
	assert.Empty(t, records)
}

func TestXMLReader_Read_NotWellFormed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unclosed", doc: `<Root><Customers><Email>a@b.com</Email>`},
		{name: "mismatched", doc: `<Root><Customers></Root>`},
		{name: "empty", doc: ``},
		{name: "two roots", doc: `<Root/><Other/>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records, err := newDefaultXMLReader(tc.doc).Read()

			var me *apperr.MalformedRecordError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, 0, me.Position)
			assert.Empty(t, records)
		})
	}
}

func TestXMLReader_Read_TagNameIsPlural(t *testing.T) {
	doc := `<Root><Customer><Email>a@b.com</Email></Customer></Root>`

	records, err := newDefaultXMLReader(doc).Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestXMLReader_Read_CustomersAsRoot(t *testing.T) {
	doc := `<Customers><Email>a@b.com</Email><FirstName>jim</FirstName><LastName>smith</LastName><PhoneNumber>1</PhoneNumber>
<Address><StreetAddress>1 Main</StreetAddress><City>X</City><State>CA</State><ZipCode>1</ZipCode></Address></Customers>`

	records, err := newDefaultXMLReader(doc).Read()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestXMLReader_Read_ByteOrderMarkDropped(t *testing.T) {
	records, err := newDefaultXMLReader("\ufeff" + customerXML).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a@b.com", records[0]["Email"])
}

func TestXMLReader_Read_Latin1Declaration(t *testing.T) {
	doc := strings.Replace(customerXML, `encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	doc = strings.Replace(doc, "<City>Anytown</City>", "<City>Montr\xe9al</City>", 1)

	records, err := newDefaultXMLReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Montréal", records[0]["Address.City"])
}

func TestXMLReader_Read_UTF16WithByteOrderMark(t *testing.T) {
	doc := strings.Replace(customerXML, `encoding="UTF-8"`, `encoding="UTF-16"`, 1)
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(doc)
	require.NoError(t, err)

	records, err := newDefaultXMLReader(encoded).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Smallville", records[1]["Address.City"])
}

func TestXMLReader_Read_UTF16LabelOnUTF8Bytes(t *testing.T) {
	doc := strings.Replace(customerXML, `encoding="UTF-8"`, `encoding="utf-16"`, 1)

	records, err := newDefaultXMLReader(doc).Read()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestXMLReader_Read_UnknownEncoding(t *testing.T) {
	doc := strings.Replace(customerXML, `encoding="UTF-8"`, `encoding="x-made-up"`, 1)

	records, err := newDefaultXMLReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, err.Error(), "unsupported encoding")
	assert.Empty(t, records)
}
