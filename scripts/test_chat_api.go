package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func printJSON(data []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}

func request(method, path, token string, body interface{}) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp, raw, nil
}

func main() {
	color.Cyan("SkillSwap REST API smoke test\n")

	username := fmt.Sprintf("probe_%d", time.Now().Unix())

	color.Yellow("\n1. Register")
	resp, raw, err := request(http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"password": "probe-password-123",
		"fullName": "Probe User",
		"email":    username + "@example.com",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	printJSON(raw)

	var register struct {
		Data struct {
			AccessToken string `json:"accessToken"`
			User        struct {
				Id uint `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &register); err != nil || register.Data.AccessToken == "" {
		color.Red("No access token in register response")
		os.Exit(1)
	}
	token := register.Data.AccessToken

	color.Yellow("\n2. Who am I")
	resp, raw, err = request(http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	printJSON(raw)

	color.Yellow("\n3. Add a teachable skill")
	resp, raw, err = request(http.MethodPost, "/skills", token, map[string]interface{}{
		"name":        "Acoustic Guitar",
		"category":    "Music",
		"isTeaching":  true,
		"proficiency": "Advanced",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	printJSON(raw)

	color.Yellow("\n4. Search users by skill")
	resp, raw, err = request(http.MethodGet, "/search?skill=guitar&isTeaching=true", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	printJSON(raw)

	color.Yellow("\n5. Conversations (expected empty for a fresh account)")
	resp, raw, err = request(http.MethodGet, "/conversations", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	printJSON(raw)

	color.Cyan("\nDone")
}
