package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserPatch_Apply_MergesOnlySetFields(t *testing.T) {
	u := &User{ID: 7, Name: "Alice", Email: "alice@example.com", Phone: "111"}

	name := "Alice B"
	phone := "222"
	UserPatch{Name: &name, Phone: &phone}.Apply(u)

	require.Equal(t, 7, u.ID)
	require.Equal(t, "Alice B", u.Name)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, "222", u.Phone)
	require.Nil(t, u.Location)
}

func TestUserPatch_Apply_CopiesLocation(t *testing.T) {
	u := &User{ID: 1}
	loc := Location{City: "Pune", Latitude: 18.52, Longitude: 73.85}

	UserPatch{Location: &loc}.Apply(u)
	require.NotNil(t, u.Location)

	loc.City = "changed"
	require.Equal(t, "Pune", u.Location.City)
}

func TestUser_JSONMatchesBackendShape(t *testing.T) {
	payload := `{
		"id": 12,
		"name": "Bob",
		"email": "bob@example.com",
		"phone": "555",
		"location": {"city":"Austin","state":"TX","country":"US","latitude":30.26,"longitude":-97.74}
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(payload), &u))
	require.Equal(t, 12, u.ID)
	require.Equal(t, "Bob", u.Name)
	require.NotNil(t, u.Location)
	require.Equal(t, "Austin", u.Location.City)
	require.InDelta(t, -97.74, u.Location.Longitude, 1e-9)
}
