package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultPassword = "password123"

type Account struct {
	Email       string
	Password    string
	DisplayName string
	PhotoURL    string
}

var firstNames = []string{
	"Liam", "Olivia", "Noah", "Emma", "Oliver", "Ava", "Elijah", "Sophia",
	"James", "Isabella", "William", "Mia", "Benjamin", "Charlotte", "Lucas", "Amelia",
	"Henry", "Harper", "Alexander", "Evelyn",
}

// Accounts returns the test accounts: <name>@test.com with a randomuser.me
// portrait, alternating men/women.
func Accounts() []Account {
	accounts := make([]Account, 0, len(firstNames))
	for i, name := range firstNames {
		gender := "men"
		if i%2 == 1 {
			gender = "women"
		}
		accounts = append(accounts, Account{
			Email:       strings.ToLower(name) + "@test.com",
			Password:    defaultPassword,
			DisplayName: name,
			PhotoURL:    fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, i+1),
		})
	}
	return accounts
}

// ProfilePatch lists the fields written to an existing users document.
type ProfilePatch struct {
	UID    string         `json:"uid"`
	Fields map[string]any `json:"fields"`
}

// Profiles is the built-in patch restoring Alexander's full profile.
func Profiles() []ProfilePatch {
	return []ProfilePatch{{
		UID: "UqIBOhdkxjbitQyyY8Mz8XS9YUl2",
		Fields: map[string]any{
			"displayName":          "Alexander",
			"email":                "alexander@test.com",
			"phoneNumber":          "",
			"statusMessage":        "Away",
			"isOnline":             false,
			"lastSeen":             time.Date(2025, 8, 2, 21, 21, 1, 0, time.UTC),
			"avatarUrl":            "assets/images/avatars/male/alexander_scott_m.png",
			"avatarPath":           "avatars/male/alexander_scott_m.png",
			"readReceipts":         false,
			"messagesCount":        0,
			"chatBackground":       "default",
			"muteStatus":           false,
			"themePreference":      "light",
			"notificationsEnabled": true,
			"isVerified":           false,
			"blockedUsers":         []string{},
			"createdAt":            time.Date(2025, 8, 9, 8, 48, 9, 0, time.UTC),
			"updatedAt":            time.Date(2025, 8, 9, 21, 36, 13, 0, time.UTC),
			"isDeleted":            false,
			"bio":                  "",
			"website":              "",
			"socialLinks":          []string{},
			"followersCount":       0,
			"followingCount":       0,
			"postsCount":           0,
			"photoURL":             "https://randomuser.me/api/portraits/men/19.jpg",
		},
	}}
}

// LoadProfiles reads a JSON array of patches. Values are written as
// decoded, so timestamps arrive as RFC 3339 strings.
func LoadProfiles(path string) ([]ProfilePatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var patches []ProfilePatch
	if err := json.Unmarshal(data, &patches); err != nil {
		return nil, fmt.Errorf("decode profiles %s: %w", path, err)
	}
	for i, p := range patches {
		if p.UID == "" {
			return nil, fmt.Errorf("profile %d: %w", i, errEmptyUserID)
		}
	}
	return patches, nil
}
