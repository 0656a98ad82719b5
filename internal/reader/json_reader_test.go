package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
)

const customerJSON = `[
  {
    "Email": "a@b.com",
    "FirstName": "jim",
    "LastName": "smith",
    "PhoneNumber": "555-1234",
    "Address": {
      "StreetAddress": "101 Main St",
      "City": "Anytown",
      "State": "ca",
      "ZipCode": "90210"
    }
  },
  {
    "Email": "c@d.com",
    "FirstName": "ann",
    "LastName": "lee",
    "PhoneNumber": "555-0000",
    "Address": {
      "StreetAddress": "9 Oak Ave",
      "City": "Smallville",
      "State": "ks",
      "ZipCode": 66002
    }
  }
]`

func newDefaultJSONReader(doc string) *JSONReader {
	return NewJSONReader(strings.NewReader(doc), Sources(DefaultMapping()))
}

func TestJSONReader_Read(t *testing.T) {
	records, err := newDefaultJSONReader(customerJSON).Read()
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
	assert.Equal(t, "66002", records[1]["Address.ZipCode"])
}

func TestJSONReader_Read_MissingKeyIsTolerated(t *testing.T) {
	doc := `[{"Email":"a@b.com","FirstName":"jim","LastName":"smith",
"Address":{"StreetAddress":"1 Main","City":"X","State":"CA","ZipCode":"1"}}]`

	records, err := newDefaultJSONReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, ok := records[0]["PhoneNumber"]
	assert.False(t, ok)
	assert.Equal(t, "a@b.com", records[0]["Email"])
}

func TestJSONReader_Read_NullIsAbsent(t *testing.T) {
	doc := `[{"Email":"a@b.com","FirstName":null,"LastName":"smith","PhoneNumber":"1",
"Address":{"StreetAddress":"1 Main","City":null,"State":"CA","ZipCode":"1"}}]`

	records, err := newDefaultJSONReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.NotContains(t, records[0], "FirstName")
	assert.NotContains(t, records[0], "Address.City")
}

func TestJSONReader_Read_ScalarConversion(t *testing.T) {
	doc := `[{"Email":"a@b.com","FirstName":"jim","LastName":"smith","PhoneNumber":5551234,
"Address":{"StreetAddress":"1 Main","City":"X","State":true,"ZipCode":1.50}}]`

	records, err := newDefaultJSONReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "5551234", records[0]["PhoneNumber"])
	assert.Equal(t, "true", records[0]["Address.State"])
	assert.Equal(t, "1.50", records[0]["Address.ZipCode"])
}

func TestJSONReader_Read_MissingAddressStopsFile(t *testing.T) {
	doc := `[
{"Email":"a@b.com","FirstName":"jim","LastName":"smith","PhoneNumber":"1",
 "Address":{"StreetAddress":"1 Main","City":"X","State":"CA","ZipCode":"1"}},
{"Email":"broken@b.com","FirstName":"no","LastName":"address","PhoneNumber":"2"},
{"Email":"c@d.com","FirstName":"ann","LastName":"lee","PhoneNumber":"3",
 "Address":{"StreetAddress":"9 Oak","City":"Y","State":"KS","ZipCode":"2"}}
]`

	records, err := newDefaultJSONReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 2, me.Position)
	assert.Contains(t, err.Error(), "Address is null, expected object")

	require.Len(t, records, 1)
	assert.Equal(t, "a@b.com", records[0]["Email"])
}

func TestJSONReader_Read_AddressNotObject(t *testing.T) {
	doc := `[{"Email":"a@b.com","FirstName":"jim","LastName":"smith","PhoneNumber":"1","Address":"1 Main"}]`

	records, err := newDefaultJSONReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, err.Error(), "Address is string, expected object")
	assert.Empty(t, records)
}

func TestJSONReader_Read_NestedValueInScalarSlot(t *testing.T) {
	doc := `[{"Email":{"work":"a@b.com"},"FirstName":"jim","LastName":"smith","PhoneNumber":"1",
"Address":{"StreetAddress":"1 Main","City":"X","State":"CA","ZipCode":"1"}}]`

	_, err := newDefaultJSONReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, err.Error(), "Email is object, expected scalar")
}

func TestJSONReader_Read_TopLevelNotArray(t *testing.T) {
	records, err := newDefaultJSONReader(`{"Email":"a@b.com"}`).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 0, me.Position)
	assert.Contains(t, me.Message, "top-level value is object, expected array")
	assert.Empty(t, records)
}

func TestJSONReader_Read_ElementNotObject(t *testing.T) {
	doc := `[{"Email":"a@b.com","FirstName":"jim","LastName":"smith","PhoneNumber":"1",
"Address":{"StreetAddress":"1 Main","City":"X","State":"CA","ZipCode":"1"}}, 42]`

	records, err := newDefaultJSONReader(doc).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 2, me.Position)
	assert.Len(t, records, 1)
}

func TestJSONReader_Read_InvalidDocument(t *testing.T) {
	records, err := newDefaultJSONReader(`[{"Email": "a@b.com",`).Read()

	var me *apperr.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 0, me.Position)
	assert.Empty(t, records)
}

func TestJSONReader_Read_EmptyArray(t *testing.T) {
	records, err := newDefaultJSONReader(`[]`).Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONReader_Read_ByteOrderMarkDropped(t *testing.T) {
	records, err := newDefaultJSONReader("\ufeff" + customerJSON).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a@b.com", records[0]["Email"])
}

func TestJSONReader_Read_UTF16WithByteOrderMark(t *testing.T) {
	doc, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(customerJSON)
	require.NoError(t, err)

	records, err := newDefaultJSONReader(doc).Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c@d.com", records[1]["Email"])
}
