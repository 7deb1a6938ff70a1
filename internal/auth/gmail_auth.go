package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// GetGmailClient builds the HTTP client for the alert mailer from a client
// secret file plus a previously obtained token file. This runs headless:
// when either file is missing it returns nil and the caller disables
// alerts instead of prompting for an interactive login.
func GetGmailClient(credentialsPath, tokenPath string) *http.Client {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		log.Printf("⚠️ Gmail disabled: cannot read client secret file: %v", err)
		return nil
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		log.Printf("⚠️ Gmail disabled: cannot parse client secret file: %v", err)
		return nil
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		log.Printf("⚠️ Gmail disabled: no stored token at %s (run the authorization flow once): %v", tokenPath, err)
		return nil
	}

	return config.Client(context.Background(), tok)
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
