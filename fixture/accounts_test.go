package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccounts(t *testing.T) {
	accounts := Accounts()
	require.Len(t, accounts, 20)

	assert.Equal(t, Account{
		Email:       "liam@test.com",
		Password:    "password123",
		DisplayName: "Liam",
		PhotoURL:    "https://randomuser.me/api/portraits/men/1.jpg",
	}, accounts[0])
	assert.Equal(t, "https://randomuser.me/api/portraits/women/2.jpg", accounts[1].PhotoURL)
	assert.Equal(t, "evelyn@test.com", accounts[19].Email)
	assert.Equal(t, "https://randomuser.me/api/portraits/women/20.jpg", accounts[19].PhotoURL)
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"uid": "U1", "fields": {"statusMessage": "On a call", "postsCount": 25}}
	]`), 0o600))

	patches, err := LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, "U1", patches[0].UID)
	assert.Equal(t, "On a call", patches[0].Fields["statusMessage"])
	assert.Equal(t, float64(25), patches[0].Fields["postsCount"])

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"fields": {}}]`), 0o600))
	_, err = LoadProfiles(bad)
	assert.ErrorIs(t, err, errEmptyUserID)
}
