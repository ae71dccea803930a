package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"supportportal/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCases_OpenCasesByEmail(t *testing.T) {
	org := newTestOrg(t)
	var soql string
	org.handle(t, "/query", func(w http.ResponseWriter, r *http.Request) {
		soql = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"totalSize":2,"done":true,"records":[
			{"Id":"5001","CaseNumber":"00001002","Subject":"Login loop","Description":"","Status":"New","CreatedDate":"2024-01-15T10:30:00.000+0000"},
			{"Id":"5000","CaseNumber":"00001001","Subject":"Refund","Description":"Charged twice","Status":"Working","CreatedDate":"2024-01-10T08:00:00.000+0000"}
		]}`))
	})
	cases := NewCases(org.connect(t), CaseOptions{EmailField: "ContactEmail", ClosedStatuses: []string{"Closed"}})

	got, err := cases.OpenCasesByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)

	assert.Equal(t, "SELECT Id, CaseNumber, Subject, Description, Status, CreatedDate FROM Case"+
		" WHERE ContactEmail = 'jane@example.com' AND Status NOT IN ('Closed')"+
		" ORDER BY CreatedDate DESC", soql)
	require.Len(t, got, 2)
	assert.Equal(t, "00001002", got[0].CaseNumber)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), got[0].CreatedDate.UTC())
	assert.Equal(t, "Charged twice", got[1].Description)
}

func TestCases_OpenCasesByEmailEscapesInput(t *testing.T) {
	org := newTestOrg(t)
	var soql string
	org.handle(t, "/query", func(w http.ResponseWriter, r *http.Request) {
		soql = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"totalSize":0,"done":true,"records":[]}`))
	})
	cases := NewCases(org.connect(t), CaseOptions{EmailField: "ContactEmail"})

	got, err := cases.OpenCasesByEmail(context.Background(), `x' OR ContactEmail != '`)
	require.NoError(t, err)

	assert.Equal(t, `SELECT Id, CaseNumber, Subject, Description, Status, CreatedDate FROM Case`+
		` WHERE ContactEmail = 'x\' OR ContactEmail != \'' ORDER BY CreatedDate DESC`, soql)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCases_CreateComment(t *testing.T) {
	tests := []struct {
		name      string
		published bool
	}{
		{name: "internal comment", published: false},
		{name: "public comment", published: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org := newTestOrg(t)
			var body map[string]interface{}
			org.handle(t, "/sobjects/CaseComment", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				writeJSON(w, http.StatusCreated, map[string]interface{}{"id": "00a01", "success": true, "errors": []interface{}{}})
			})
			cases := NewCases(org.connect(t), CaseOptions{EmailField: "ContactEmail"})

			created, err := cases.CreateComment(context.Background(), entities.CaseComment{
				ParentID:    "5001",
				CommentBody: "Still broken",
				IsPublished: tt.published,
			})
			require.NoError(t, err)

			assert.Equal(t, "5001", body["ParentId"])
			assert.Equal(t, "Still broken", body["CommentBody"])
			assert.Equal(t, tt.published, body["IsPublished"])
			assert.Equal(t, "00a01", created.ID)
			assert.Equal(t, tt.published, created.IsPublished)
		})
	}
}

func TestCases_CreateCommentNotSaved(t *testing.T) {
	org := newTestOrg(t)
	org.handle(t, "/sobjects/CaseComment", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"errors":  []map[string]string{{"statusCode": "INVALID_CROSS_REFERENCE_KEY", "message": "invalid parent"}},
		})
	})
	cases := NewCases(org.connect(t), CaseOptions{EmailField: "ContactEmail"})

	_, err := cases.CreateComment(context.Background(), entities.CaseComment{ParentID: "bogus", CommentBody: "hi"})
	assert.ErrorContains(t, err, "INVALID_CROSS_REFERENCE_KEY")
}
