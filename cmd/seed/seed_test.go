package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/interfaces/http/apitest"
)

const seedJSON = `{
  "masters": {
    "brand": ["Prestige", "Hawkins", "prestige"],
    "unit": ["Nos", "Kgs"],
    "salesman": ["Ravi"]
  },
  "ledgers": [
    {"name": "Murugan Traders", "group": "0202", "city": "Madurai", "pincode": "625001", "salesman": "ravi", "due_days": "30"},
    {"name": "Ghost", "group": "0202", "salesman": "Nobody"},
    {"name": "Bad Pin", "group": "0202", "pincode": "12"}
  ]
}`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(seedJSON), "")
	require.NoError(t, err)
	assert.Len(t, f.Masters["brand"], 3)
	assert.Len(t, f.Ledgers, 3)

	_, err = Decode(strings.NewReader(`{"masters": {"colour": ["Red"]}}`), "utf-8")
	assert.ErrorContains(t, err, `unknown master kind "colour"`)

	_, err = Decode(strings.NewReader(`{}`), "ebcdic")
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"extra": 1}`), "")
	assert.Error(t, err)
}

func TestDecode_Latin1(t *testing.T) {
	// "Café" with é as the single ISO-8859-1 byte 0xE9
	raw := []byte("{\"masters\": {\"brand\": [\"Caf\xe9\"]}}")
	f, err := Decode(bytes.NewReader(raw), "latin1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Café"}, f.Masters["brand"])
}

func TestSeeder_Run(t *testing.T) {
	srv := apitest.New(t)
	client := apiclient.New("http://desk.test/api", srv.Client(), 0, zerolog.Nop())
	client.SetToken(srv.Token)

	f, err := Decode(strings.NewReader(seedJSON), "")
	require.NoError(t, err)

	s := &Seeder{client: client, log: zerolog.Nop()}
	res, err := s.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 6, Skipped: 3}, res)

	brands, err := client.ListAllRecords(context.Background(), apiclient.Brand)
	require.NoError(t, err)
	assert.Equal(t, []apiclient.Record{{Code: "0001", Name: "Prestige"}, {Code: "0002", Name: "Hawkins"}}, brands)

	ledgers, err := client.ListLedgers(context.Background(), "", 1)
	require.NoError(t, err)
	require.Len(t, ledgers, 1)
	assert.Equal(t, "Murugan Traders", ledgers[0].Name)
	assert.Equal(t, "0001", ledgers[0].SalesmanCode)
	assert.Equal(t, 30, ledgers[0].DueDays)
}
