package argus_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp-forge/argus-go/pkg/argus"
)

func ExampleNewClient() {
	client, err := argus.NewClient(argus.Config{
		BaseURL: "https://argus.example.com",
		Token:   "my-token",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, project := range projects {
		fmt.Println(project.Name)
	}
}

func ExampleClient_Push() {
	client, err := argus.NewClient(argus.Config{
		BaseURL: "https://argus.example.com",
		Token:   "my-token",
	})
	if err != nil {
		log.Fatal(err)
	}

	change, err := argus.NewUpsertJSON("/service/timeout.json", map[string]any{
		"connectTimeoutMillis": 500,
		"readTimeoutMillis":    2000,
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := client.Push(context.Background(), "infra", "settings", argus.Head,
		argus.CommitMessage{Summary: "Tighten service timeouts"},
		[]argus.Change{change},
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("pushed revision", result.Revision)
}

func ExampleClient_WatchFile() {
	client, err := argus.NewClient(argus.Config{
		BaseURL: "https://argus.example.com",
		Token:   "my-token",
	})
	if err != nil {
		log.Fatal(err)
	}

	query, err := argus.NewJSONQuery("/service/timeout.json")
	if err != nil {
		log.Fatal(err)
	}

	watcher, err := client.WatchFile("infra", "settings", query, argus.WatchOptions{})
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	for {
		result, err := watcher.Next(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		var timeouts map[string]int
		if err := result.Entry.JSONContent(&timeouts); err != nil {
			log.Fatal(err)
		}
		fmt.Println("revision", result.Revision, "timeouts", timeouts)
	}
}

func ExampleClient_WatchRepo() {
	client, err := argus.NewClient(argus.Config{
		BaseURL: "https://argus.example.com",
		Token:   "my-token",
	})
	if err != nil {
		log.Fatal(err)
	}

	watcher, err := client.WatchRepo("infra", "settings", "/service/*.json", argus.WatchOptions{})
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	result, err := watcher.Next(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("changed at revision", result.Revision)
}
