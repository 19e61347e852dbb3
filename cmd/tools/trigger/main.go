package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Fires one of the scheduler sweeps through the admin API. Useful for
// checking a deployment without waiting for the next tick.
func main() {
	sweep := flag.String("sweep", "deadlines", "sweep to trigger: deadlines, new-grants, daily-summary, or test")
	base := flag.String("base", "http://localhost:8081", "server base URL")
	flag.Parse()

	adminSecret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
	if adminSecret == "" {
		fmt.Println("Missing ADMIN_SECRET environment variable")
		os.Exit(1)
	}

	path := "/api/v1/admin/sweeps/" + *sweep
	if *sweep == "test" {
		path = "/api/v1/admin/notifications/test"
	}

	req, err := http.NewRequest("POST", *base+path, nil)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("X-Admin-Secret", adminSecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	fmt.Printf("Response Status: %s\n", resp.Status)
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
