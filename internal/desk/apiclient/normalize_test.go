package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Record
	}{
		{"bare array", `[{"code":"0001","name":"Acme"}]`, []Record{{"0001", "Acme"}}},
		{"data envelope", `{"data":[{"code":"0002","name":"Zen"}],"page":{"total":1}}`, []Record{{"0002", "Zen"}}},
		{"fCode spelling", `[{"fCode":"0003","fName":"Tata"}]`, []Record{{"0003", "Tata"}}},
		{"lower fcode", `[{"fcode":"0004","fname":"Usha"}]`, []Record{{"0004", "Usha"}}},
		{"kind spelling", `[{"brandCode":"0005","brandName":"Bajaj"}]`, []Record{{"0005", "Bajaj"}}},
		{"numeric code", `[{"code":6,"name":"Prestige"}]`, []Record{{"6", "Prestige"}}},
		{"empty", `[]`, []Record{}},
		{"null", `null`, []Record{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRecords([]byte(tt.raw), "brand")
			require.NoError(t, err)
			assert.Equal(t, tt.want, append([]Record{}, got...))
		})
	}
}

func TestDecodeRecords_RejectsScalars(t *testing.T) {
	_, err := decodeRecords([]byte(`"oops"`), "brand")
	assert.Error(t, err)
	_, err = decodeRecords([]byte(`{bad`), "brand")
	assert.Error(t, err)
}

func TestDecodeCode(t *testing.T) {
	for raw, want := range map[string]string{
		`"0007"`:              "0007",
		`{"code":"0008"}`:     "0008",
		`{"nextCode":"0009"}`: "0009",
		`{"next_code":10}`:    "10",
		`{"data":"0011"}`:     "0011",
		`12`:                  "12",
	} {
		got, err := decodeCode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := decodeCode([]byte(`{}`))
	assert.Error(t, err)
}

func TestDecodeGroups_ChildSpellings(t *testing.T) {
	raw := `{"data":[{"groupCode":"02","groupName":"Current Assets","subGroups":[
		{"code":"0201","name":"Cash-in-Hand"},
		{"code":"0202","name":"Sundry Debtors","children":[{"code":"020201","name":"Chennai"}]}]}]}`
	got, err := decodeGroups([]byte(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Current Assets", got[0].Name)
	require.Len(t, got[0].Children, 2)
	assert.Equal(t, "020201", got[0].Children[1].Children[0].Code)
}

func TestDecodeRows_ItemSpellings(t *testing.T) {
	raw := `[{"itemCode":"0001","itemName":"Tumbler","gst_rate":"18","selling_price":45.5,"size_codes":["0001","0002"]}]`
	got, err := decodeRows([]byte(raw), fixItem)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0001", got[0].Code)
	assert.Equal(t, "Tumbler", got[0].Name)
	assert.Equal(t, "18", got[0].GSTRate.Decimal.String())
	assert.Equal(t, "45.5", got[0].SellingPrice.String())
	assert.Equal(t, []string{"0001", "0002"}, got[0].SizeCodes)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "name is required", errorMessage([]byte(`{"code":"VALIDATION","message":"name is required"}`), "400 Bad Request"))
	assert.Equal(t, "boom", errorMessage([]byte(`{"error":"boom"}`), "500 Internal Server Error"))
	assert.Equal(t, "Bad Gateway", errorMessage([]byte(`Bad Gateway`), "502 Bad Gateway"))
	assert.Equal(t, "503 Service Unavailable", errorMessage(nil, "503 Service Unavailable"))
}
