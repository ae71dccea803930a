package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_BindQuotesAndEscapesLiterals(t *testing.T) {
	soql, err := NewQuery(`SELECT Id FROM Case WHERE ContactEmail = :email`).
		Bind("email", `x' OR Name != '`).
		Build()

	require.NoError(t, err)
	assert.Equal(t, `SELECT Id FROM Case WHERE ContactEmail = 'x\' OR Name != \''`, soql)
}

func TestQuery_Ident(t *testing.T) {
	soql, err := NewQuery(`SELECT Id FROM {object} WHERE {field} = :v`).
		Ident("object", "Knowledge__kav").
		Ident("field", "Contact.Email").
		Bind("v", "a").
		Build()
	require.NoError(t, err)
	assert.Equal(t, `SELECT Id FROM Knowledge__kav WHERE Contact.Email = 'a'`, soql)

	for _, bad := range []string{"", "Billing__c OR Id != null", "1abc", "a;b", "a.", "Name'"} {
		_, err := NewQuery(`SELECT Id FROM {object}`).Ident("object", bad).Build()
		assert.ErrorIs(t, err, ErrInvalidIdentifier, "identifier %q", bad)
	}
}

func TestQuery_BindList(t *testing.T) {
	soql, err := NewQuery(`SELECT Id FROM Case WHERE Status NOT IN :closed`).
		BindList("closed", []string{"Closed", "Won't Fix"}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, `SELECT Id FROM Case WHERE Status NOT IN ('Closed', 'Won\'t Fix')`, soql)

	_, err = NewQuery(`SELECT Id FROM Case WHERE Status IN :s`).BindList("s", nil).Build()
	assert.Error(t, err)
}

func TestQuery_UnboundPlaceholders(t *testing.T) {
	_, err := NewQuery(`SELECT Id FROM Case WHERE Id = :id`).Build()
	assert.ErrorContains(t, err, ":id")

	_, err = NewQuery(`SELECT Id FROM {object}`).Build()
	assert.ErrorContains(t, err, "{object}")

	_, err = NewQuery(`SELECT Id FROM {object`).Build()
	assert.Error(t, err)
}

func TestQuery_BindInt(t *testing.T) {
	soql, err := NewQuery(`SELECT Id FROM Case LIMIT :limit`).BindInt("limit", 20).Build()
	require.NoError(t, err)
	assert.Equal(t, `SELECT Id FROM Case LIMIT 20`, soql)
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: `'plain'`},
		{in: `back\slash`, want: `'back\\slash'`},
		{in: "line\nbreak", want: `'line\nbreak'`},
		{in: `"quoted"`, want: `'\"quoted\"'`},
		{in: "tab\there", want: `'tab\there'`},
		{in: "", want: `''`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteLiteral(tt.in))
	}
}
