package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/openbook/chatseed/auth"
	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/sdk"
)

const signInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithCustomToken?key=%s"

type SignInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

// Prints an ID token for a seeded user, e.g. to call the Seed function or the
// app backend as that user:
//
//	go run ./cmd/gentoken -uid NhY1NzNu0FgCPCvboeHSPqoy7Ng2 -apikey ***
func main() {
	ctx := context.Background()
	uidPtr := flag.String("uid", "", "User UID for token generation")
	apiKeyPtr := flag.String("apikey", "", "Firebase API key for Identity Toolkit REST API")
	flag.Parse()

	if *uidPtr == "" {
		log.Fatalf("Please provide a user UID using the -uid flag")
	}

	clients, err := sdk.Open(ctx, config.Load())
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}
	defer clients.Close()

	customToken, err := auth.NewAccounts(clients.Auth).CustomToken(ctx, *uidPtr)
	if err != nil {
		log.Fatalf("error creating custom token: %v", err)
	}

	// exchange custom token for an ID token using Firebase's REST API
	payloadBytes, err := json.Marshal(map[string]any{
		"token":             customToken,
		"returnSecureToken": true,
	})
	if err != nil {
		log.Fatalf("error marshaling payload: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf(signInURL, *apiKeyPtr), "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		log.Fatalf("error making POST request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("error reading response body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("non-OK HTTP status: %d, response: %s", resp.StatusCode, string(body))
	}

	var signInResp SignInResponse
	if err := json.Unmarshal(body, &signInResp); err != nil {
		log.Fatalf("error unmarshalling response: %v", err)
	}

	fmt.Println(signInResp.IDToken)
}
