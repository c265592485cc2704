package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "clients":
		handleClients(args)
	case "projects":
		handleProjects(args)
	case "dashboard":
		showDashboard()
	case "smtp":
		handleSmtp(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: sgp auth <login|logout|who>")
		return
	}

	switch args[0] {
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{"email": *email, "password": *password, "rememberMe": false}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s\n", *email)
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func logoutUser() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

func handleClients(args []string) {
	if len(args) < 1 || args[0] != "list" {
		fmt.Println("Usage: sgp clients list [-search term]")
		return
	}

	fs := flag.NewFlagSet("clients list", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	fs.Parse(args[1:])

	url := getAPIURL() + "/clients"
	if *search != "" {
		url += "?search=" + *search
	}
	req, _ := http.NewRequest("GET", url, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var clients []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&clients)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY")
	for _, c := range clients {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", c["id"], c["name"], c["email"], c["company"])
	}
	w.Flush()
}

func handleProjects(args []string) {
	if len(args) < 1 || args[0] != "list" {
		fmt.Println("Usage: sgp projects list [-search term] [-status s] [-department d] [-date today|week|month]")
		return
	}

	fs := flag.NewFlagSet("projects list", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	status := fs.String("status", "", "status filter")
	department := fs.String("department", "", "department filter")
	date := fs.String("date", "", "date window (today, week, month)")
	fs.Parse(args[1:])

	url := getAPIURL() + "/projects?search=" + *search +
		"&status=" + *status + "&department=" + *department + "&date=" + *date
	req, _ := http.NewRequest("GET", url, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var projects []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&projects)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCLIENT\tSTATUS\tDEPARTMENT\tUPDATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			p["id"], p["name"], p["client_name"], p["status"], p["departamento"], p["updatedAt"])
	}
	w.Flush()
}

func showDashboard() {
	req, _ := http.NewRequest("GET", getAPIURL()+"/dashboard", nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var summary map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&summary)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, key := range []string{"totalProjects", "activeProjects", "completedProjects", "pendingProjects", "totalClients", "activeUsers", "successRate"} {
		fmt.Fprintf(w, "%s\t%v\n", key, summary[key])
	}
	w.Flush()
}

func handleSmtp(args []string) {
	if len(args) < 1 || args[0] != "test" {
		fmt.Println("Usage: sgp smtp test -host h -port p -user u -pass pw [-from f]")
		return
	}

	fs := flag.NewFlagSet("smtp test", flag.ExitOnError)
	host := fs.String("host", "", "smtp host")
	port := fs.Int("port", 587, "smtp port")
	user := fs.String("user", "", "smtp username")
	pass := fs.String("pass", "", "smtp password")
	from := fs.String("from", "", "from header")
	fs.Parse(args[1:])

	payload := map[string]interface{}{
		"smtp": map[string]interface{}{
			"host":   *host,
			"port":   *port,
			"secure": false,
			"auth":   map[string]string{"user": *user, "pass": *pass},
			"from":   *from,
		},
	}
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", getAPIURL()+"/smtp/test", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if success, _ := result["success"].(bool); success {
		fmt.Printf("✓ %v\n", result["message"])
	} else {
		fmt.Printf("✗ %v\n", result["error"])
	}
}

// Helper functions
func getAPIURL() string {
	if url := os.Getenv("SGP_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.sgp/token"
}

func saveToken(token string) error {
	os.MkdirAll(os.Getenv("HOME")+"/.sgp", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`SGP CLI

Usage:
  sgp <command> [options]

Commands:
  auth       Authentication (login, logout, who)
  clients    Client operations (list)
  projects   Project operations (list)
  dashboard  Show dashboard summary
  smtp       Mail transport operations (test)
  help       Show this help message

Environment Variables:
  SGP_API    API endpoint (default: http://localhost:8080/api)

Examples:
  sgp auth login -email admin@sistema.com -password 12345678
  sgp clients list -search acme
  sgp projects list -status pending -date week
  sgp smtp test -host smtp.gmail.com -user u@x.com -pass secret
`)
}
