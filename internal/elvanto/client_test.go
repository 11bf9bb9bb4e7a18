package elvanto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsWithPeople_PagesToCompletion(t *testing.T) {
	var pagesServed []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/groups/getAll.json", r.URL.Path)

		key, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test-key", key)
		assert.Equal(t, "x", pass)

		var body struct {
			Page     int      `json:"page"`
			PageSize int      `json:"page_size"`
			Fields   []string `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"people"}, body.Fields)
		pagesServed = append(pagesServed, body.Page)

		// 3 groups total, 2 per page.
		first := (body.Page-1)*2 + 1
		var groups []map[string]any
		for i := first; i <= 3 && i < first+2; i++ {
			groups = append(groups, map[string]any{"id": fmt.Sprintf("g%d", i), "name": fmt.Sprintf("Group %d", i)})
		}
		resp := map[string]any{
			"status": "ok",
			"groups": map[string]any{
				"total":        "3",
				"per_page":     "2",
				"on_this_page": fmt.Sprintf("%d", len(groups)),
				"group":        groups,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithPageSize(2))
	groups, err := client.GroupsWithPeople(context.Background(), "test-key")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, pagesServed)
	require.Len(t, groups, 3)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, "g3", groups[2].ID)
}

func TestPeopleCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people/categories/getAll.json", r.URL.Path)
		fmt.Fprint(w, `{"status":"ok","categories":{"category":[{"id":"c1","name":"Member"},{"id":"c2","name":"Visitor"}]}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	cats, err := client.PeopleCategories(context.Background(), "test-key")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Member", cats[0].Name)
}

func TestRequest_HTTPUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status":"fail","error":{"code":102,"message":"Invalid or missing API key"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PeopleCategories(context.Background(), "bad-key")

	var credentialErr *CredentialError
	require.ErrorAs(t, err, &credentialErr)
	assert.Contains(t, credentialErr.Message, "Invalid or missing API key")
}

func TestRequest_EnvelopeErrorWith200(t *testing.T) {
	// Elvanto reports most failures inside a 200 response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"fail","error":{"code":250,"message":"Something broke"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GroupsWithCategories(context.Background(), "test-key")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 250, upstreamErr.Code)
}

func TestRequest_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PeopleWithDepartments(context.Background(), "test-key")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
}

func TestPeopleWithDepartments_StopsOnShortPage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"status":"ok","people":{"total":"1","per_page":"100","on_this_page":"1","person":{"id":"p1","firstname":"Amy"}}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	people, err := client.PeopleWithDepartments(context.Background(), "test-key")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, people, 1)
	assert.Equal(t, "Amy", people[0].Firstname)
}
