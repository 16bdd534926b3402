package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/openbook/chatseed/filter"
)

var (
	errEmptyUserID     = errors.New("empty user id")
	errSelfPair        = errors.New("pair needs two distinct users")
	errGroupTooSmall   = errors.New("group chat needs at least three participants")
	errGroupMissingKey = errors.New("group chat needs an id and a name")
	errDuplicateMember = errors.New("duplicate group participant")
	errUnknownMember   = errors.New("group participant is not a plan user")
)

type User struct {
	UID         string  `json:"uid"`
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// Pair declares a one-to-one chat started by A.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

type Group struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
	Texts        []string `json:"texts"`
}

type Plan struct {
	Users []User `json:"users"`
	Pairs []Pair `json:"pairs"`
	Group *Group `json:"group,omitempty"`
}

const (
	Zah     = "NhY1NzNu0FgCPCvboeHSPqoy7Ng2"
	Sumitra = "wv2OJVWg8fPo1qZTN483QGqyt132"
	Liam    = "XenOj61VJRc7rMmrPykMNIMhr"
)

// Default is the built-in staging plan: three users, two one-to-one chats
// started by Zah and one group chat with everybody.
func Default() *Plan {
	return &Plan{
		Users: []User{
			{UID: Zah, DisplayName: "Zah Martin"},
			{UID: Sumitra, DisplayName: "Sumitra Nathan"},
			{UID: Liam, DisplayName: "Liam Wong"},
		},
		Pairs: []Pair{
			{A: Zah, B: Sumitra},
			{A: Zah, B: Liam},
		},
		Group: &Group{
			ID:           "chat_group_Zah_Sumitra_Liam",
			Name:         "Zah, Sumitra, and Liam's Chat",
			Participants: []string{Zah, Sumitra, Liam},
			Texts: []string{
				"Welcome to the group chat!",
				"Thanks for adding me!",
				"Looking forward to chatting!",
			},
		},
	}
}

// Load reads a JSON plan from path. Display texts are sanitized.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", path, err)
	}
	plan.sanitize()
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return &plan, nil
}

func (p *Plan) sanitize() {
	for i := range p.Users {
		p.Users[i].DisplayName = filter.Sanitize(p.Users[i].DisplayName)
	}
	if p.Group != nil {
		p.Group.Name = filter.Sanitize(p.Group.Name)
		for i := range p.Group.Texts {
			p.Group.Texts[i] = filter.Sanitize(p.Group.Texts[i])
		}
	}
}

func (p *Plan) Validate() error {
	for _, u := range p.Users {
		if u.UID == "" {
			return fmt.Errorf("user %q: %w", u.DisplayName, errEmptyUserID)
		}
	}
	for _, pair := range p.Pairs {
		if pair.A == "" || pair.B == "" {
			return fmt.Errorf("pair %q/%q: %w", pair.A, pair.B, errEmptyUserID)
		}
		if pair.A == pair.B {
			return fmt.Errorf("pair %q: %w", pair.A, errSelfPair)
		}
	}
	if g := p.Group; g != nil {
		if g.ID == "" || g.Name == "" {
			return errGroupMissingKey
		}
		if len(g.Participants) < 3 {
			return fmt.Errorf("group %q: %w", g.ID, errGroupTooSmall)
		}
		users := make(map[string]bool, len(p.Users))
		for _, u := range p.Users {
			users[u.UID] = true
		}
		seen := make(map[string]bool, len(g.Participants))
		for _, uid := range g.Participants {
			switch {
			case uid == "":
				return fmt.Errorf("group %q: %w", g.ID, errEmptyUserID)
			case seen[uid]:
				return fmt.Errorf("group %q, participant %q: %w", g.ID, uid, errDuplicateMember)
			case !users[uid]:
				return fmt.Errorf("group %q, participant %q: %w", g.ID, uid, errUnknownMember)
			}
			seen[uid] = true
		}
	}
	return nil
}
