// Goal Tracker API Walkthrough
//
// This is a minimal example client that exercises the whole API surface:
// it registers an account, trades the credentials for an access token,
// creates a goal with a tracked interval, and pages through the interval
// listing.
//
// Usage:
//
//	export GOALTRACKER_BASE_URL="http://localhost:8080"
//	go run main.go

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const apiPrefix = "/api/v1.0"

type user struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type goal struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type interval struct {
	ID     int64  `json:"id"`
	Start  string `json:"start"`
	Final  string `json:"final"`
	GoalID int64  `json:"goal_id"`
}

type intervalPage struct {
	Items []interval `json:"items"`
	Meta  struct {
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
		Page       int `json:"page"`
	} `json:"_meta"`
	Links struct {
		Next *string `json:"next"`
	} `json:"_links"`
}

func main() {
	baseURL := os.Getenv("GOALTRACKER_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	email := fmt.Sprintf("walkthrough-%d@example.com", time.Now().UnixNano())
	password := "walkthrough-password"

	// 1. Register an account.
	var u user
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	call("POST", baseURL+apiPrefix+"/users", "", "", "", body, &u)
	log.Printf("registered account %d (%s)", u.ID, u.Email)

	// 2. Trade the credentials for an access token.
	var tok struct {
		Token string `json:"token"`
	}
	call("POST", baseURL+apiPrefix+"/tokens", email, password, "", "", &tok)
	log.Printf("got access token")

	// 3. Create a goal.
	var g goal
	call("POST", baseURL+apiPrefix+"/goals", "", "", tok.Token,
		`{"description":"walk through the API"}`, &g)
	log.Printf("created goal %d: %s", g.ID, g.Description)

	// 4. Track an interval under the goal.
	var i interval
	call("POST", baseURL+apiPrefix+"/intervals", "", "", tok.Token,
		fmt.Sprintf(`{"goal_id":%d,"start":"2021-08-10 08:00","final":"2021-08-10 09:00"}`, g.ID), &i)
	log.Printf("tracked interval %d: %s .. %s", i.ID, i.Start, i.Final)

	// 5. Page through the interval listing.
	var page intervalPage
	call("GET", baseURL+apiPrefix+"/intervals?per_page=10&page=1", "", "", tok.Token, "", &page)
	log.Printf("listed %d of %d interval(s) on page %d/%d",
		len(page.Items), page.Meta.TotalItems, page.Meta.Page, page.Meta.TotalPages)

	// 6. Clean up: deleting the account cascades to goals and intervals.
	call("DELETE", fmt.Sprintf("%s%s/users/%d", baseURL, apiPrefix, u.ID), email, password, "", "", nil)
	log.Printf("deleted account %d", u.ID)
}

// call performs one API request. Exactly one of (basic email/password) or
// bearer may be set; dst may be nil for bodyless responses.
func call(method, url, email, password, bearer, body string, dst any) {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatalf("build %s %s: %v", method, url, err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		req.SetBasicAuth(email, password)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		log.Fatalf("%s %s: status %d: %s", method, url, resp.StatusCode, payload)
	}
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			log.Fatalf("%s %s: decode response: %v", method, url, err)
		}
	}
}
