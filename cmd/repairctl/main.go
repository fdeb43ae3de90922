// Command repairctl is a small terminal client for the repair system
// API, mainly for operators scripting against a deployment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: repairctl [-url <base>] <command> [args]

Commands:
  login <username>          Log in (password read from REPAIR_PASSWORD or prompt)
  logout                    Drop the stored session
  whoami                    Show the active session's user
  list                      List repair requests
  get <id>                  Show one repair request
  status <id> <status>      Change a request's status
  assign <id> <tech-id>     Assign a technician (0 to unassign)
  categories                List categories
  stats                     Show dashboard stats
`)
	os.Exit(2)
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".repairctl-session.json"
	}
	return filepath.Join(home, ".config", "repairctl", "session.json")
}

func main() {
	baseURL := flag.String("url", envOr("REPAIR_API_URL", "http://localhost:1234/api"), "API base URL")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	session, err := client.LoadSession(sessionPath())
	if err != nil {
		fatal(err)
	}
	session.OnUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "session expired, run: repairctl login <username>")
	})
	api := client.New(*baseURL, client.WithSession(session))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		if len(args) < 2 {
			usage()
		}
		password := os.Getenv("REPAIR_PASSWORD")
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			fmt.Scanln(&password)
		}
		user, err := api.Login(ctx, args[1], password)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("logged in as %s (%s)\n", user.Username, user.Role)

	case "logout":
		if err := api.Logout(); err != nil {
			fatal(err)
		}
		fmt.Println("logged out")

	case "whoami":
		user := session.User()
		if user == nil {
			fatal(fmt.Errorf("not logged in"))
		}
		fmt.Printf("%s <%s> role=%s\n", user.Username, user.Email, user.Role)

	case "list":
		requests, err := api.ListRepairRequests(ctx)
		if err != nil {
			fatal(err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tLOCATION\tCREATED")
		for _, r := range requests {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Title, r.Status, r.Priority, r.Location, r.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()

	case "get":
		id := mustID(args, 1)
		r, err := api.GetRepairRequest(ctx, id)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("#%d %s\n", r.ID, r.Title)
		fmt.Printf("  status: %s  priority: %s  cost: %.2f\n", r.Status, r.Priority, r.Cost)
		fmt.Printf("  location: %s\n", r.Location)
		if r.Category != nil {
			fmt.Printf("  category: %s\n", r.Category.Name)
		}
		if r.Technician != nil {
			fmt.Printf("  technician: %s\n", r.Technician.FullName)
		}
		for _, img := range r.Images {
			fmt.Printf("  image: %s\n", img)
		}

	case "status":
		if len(args) < 3 {
			usage()
		}
		id := mustID(args, 1)
		status := client.Status(args[2])
		payload := &client.UpdateRepairRequest{Status: &status}
		if _, err := api.UpdateRepairRequest(ctx, id, payload); err != nil {
			fatal(err)
		}
		fmt.Printf("request %d -> %s\n", id, status)

	case "assign":
		if len(args) < 3 {
			usage()
		}
		id := mustID(args, 1)
		techID := mustID(args, 2)
		payload := &client.UpdateRepairRequest{TechnicianID: &techID}
		if _, err := api.UpdateRepairRequest(ctx, id, payload); err != nil {
			fatal(err)
		}
		fmt.Printf("request %d assigned to %d\n", id, techID)

	case "categories":
		categories, err := api.ListCategories(ctx)
		if err != nil {
			fatal(err)
		}
		for _, c := range categories {
			fmt.Printf("%d\t%s\t%s\n", c.ID, c.Name, c.Description)
		}

	case "stats":
		stats, err := api.DashboardStats(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("total: %d\n", stats.TotalRequests)
		for _, s := range client.Statuses {
			fmt.Printf("  %s: %d\n", s, stats.StatusCounts[s])
		}
		fmt.Println("recent:")
		for _, r := range stats.RecentRequests {
			fmt.Printf("  #%d %s (%s)\n", r.ID, r.Title, r.Status)
		}

	default:
		usage()
	}
}

func mustID(args []string, i int) int {
	if len(args) <= i {
		usage()
	}
	id, err := strconv.Atoi(args[i])
	if err != nil {
		fatal(fmt.Errorf("invalid id %q", args[i]))
	}
	return id
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
