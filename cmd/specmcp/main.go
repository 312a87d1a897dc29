// Command specmcp serves one remote OpenAPI/Swagger document to MCP
// clients over stdio, with helper subcommands for inspecting the document
// and managing its on-disk cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/specmcp/specmcp"
	"github.com/specmcp/specmcp/cache"
	"github.com/specmcp/specmcp/internal/mcpserver"
)

func main() {
	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("specmcp v%s\n", specmcp.Version())
	case "help", "-h", "--help":
		printUsage()
	case "serve":
		if err := handleServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "fetch":
		if err := handleFetch(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "clear-cache":
		if err := handleClearCache(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean %q?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

var knownCommands = []string{"serve", "fetch", "clear-cache", "version", "help"}

// suggestCommand returns the closest known command within an edit
// distance of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDistance := 3
	for _, candidate := range knownCommands {
		if d := editDistance(input, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Print(`specmcp - expose an OpenAPI/Swagger document to MCP clients

Usage:
  specmcp [serve]             Run the MCP server over stdio (default).
                              Configured via SPECMCP_* environment
                              variables; SPECMCP_SPEC_URL is required.
  specmcp fetch [flags]       Download a document (through the cache)
                              and print a summary.
  specmcp clear-cache [flags] Delete cached entries.
  specmcp version             Print the version.
  specmcp help                Print this help.

Fetch flags:
  -url string          Document URL (required)
  -bearer-token string Bearer token for the remote
  -username string     Basic auth username
  -password string     Basic auth password
  -cookie string       Static cookie header value
  -cache-dir string    Cache directory (default: user cache dir)
  -endpoints           Also list every endpoint

Clear-cache flags:
  -url string          Clear only this document's entry (default: all)
  -cache-dir string    Cache directory (default: user cache dir)
`)
}

func handleServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func handleFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	url := fs.String("url", "", "document URL")
	bearer := fs.String("bearer-token", "", "bearer token")
	username := fs.String("username", "", "basic auth username")
	password := fs.String("password", "", "basic auth password")
	cookie := fs.String("cookie", "", "static cookie header value")
	cacheDir := fs.String("cache-dir", cache.DefaultDir(), "cache directory")
	listEndpoints := fs.Bool("endpoints", false, "list every endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source := cache.Source{
		URL:         *url,
		BearerToken: *bearer,
		Username:    *username,
		Password:    *password,
		Cookie:      *cookie,
	}

	c := cache.New(*cacheDir)
	doc, err := c.Obtain(context.Background(), source)
	if err != nil {
		return err
	}

	fmt.Printf("Title:      %s\n", doc.Title)
	fmt.Printf("Version:    %s (OAS %s)\n", doc.APIVersion, doc.Version)
	if doc.BaseURL != "" {
		fmt.Printf("Base URL:   %s\n", doc.BaseURL)
	}
	fmt.Printf("Endpoints:  %d\n", len(doc.Endpoints()))
	fmt.Printf("Schemas:    %d\n", len(doc.SchemaNames()))

	if *listEndpoints {
		fmt.Println()
		for _, ep := range doc.Endpoints() {
			fmt.Printf("  %-7s %s", ep.Method, ep.Path)
			if ep.Summary != "" {
				fmt.Printf("  - %s", ep.Summary)
			}
			fmt.Println()
		}
	}
	return nil
}

func handleClearCache(args []string) error {
	fs := flag.NewFlagSet("clear-cache", flag.ExitOnError)
	url := fs.String("url", "", "clear only this document's entry")
	cacheDir := fs.String("cache-dir", cache.DefaultDir(), "cache directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := cache.New(*cacheDir)
	if *url != "" {
		if err := c.Clear(cache.Source{URL: *url}); err != nil {
			return err
		}
		fmt.Printf("Cleared cache entry for %s\n", *url)
		return nil
	}

	if err := c.ClearAll(); err != nil {
		return err
	}
	fmt.Printf("Cleared cache directory %s\n", *cacheDir)
	return nil
}
