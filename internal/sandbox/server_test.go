package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordboard/internal/model"
)

func TestStoreAssignsIDsAfterSeed(t *testing.T) {
	store := NewStore([]model.Record{{ID: 7, Name: "x"}, {ID: 3, Name: "y"}})

	rec := store.Create(model.Draft{Name: "z", Email: "z@x.io"})
	assert.Equal(t, 8, rec.ID)

	_, ok := store.Update(99, model.Draft{})
	assert.False(t, ok)
	assert.True(t, store.Delete(3))
	assert.False(t, store.Delete(3))
	assert.Len(t, store.List(), 2)
}

func TestServerRoutes(t *testing.T) {
	store := NewStore(DemoUsers()[:1])
	srv := httptest.NewServer(NewServer(store))
	defer srv.Close()

	resp, err := http.Post(srv.URL+CollectionPath, "application/json", bytes.NewBufferString(`{"name":"n","email":"e"}`))
	require.NoError(t, err)
	var created model.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, model.Record{ID: 2, Name: "n", Email: "e"}, created)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+CollectionPath+"/not-a-number", bytes.NewBufferString(`{}`))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+CollectionPath+"/1", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []model.Record{created}, store.List())
}

func TestFailureInjection(t *testing.T) {
	srv := httptest.NewServer(NewServer(NewStore(nil), WithFailure(Failure{
		Rate:    1,
		Code:    http.StatusTeapot,
		Methods: []string{http.MethodPost},
	})))
	defer srv.Close()

	resp, err := http.Get(srv.URL + CollectionPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+CollectionPath, "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
