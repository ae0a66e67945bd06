package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carewell/provider-portal/internal/console"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "portal base URL")
	email := flag.String("email", "", "provider email")
	password := flag.String("password", "", "provider password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: console -email <email> -password <password> [-url <base url>]")
	}

	ctx := context.Background()
	client, err := console.NewClient(*baseURL)
	if err != nil {
		log.Fatalf("init console: %v", err)
	}
	if err := client.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login: %v", err)
	}

	printState(client)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}
		switch fields[0] {
		case "all", "mine":
			if err := client.Refresh(ctx); err == nil {
				printState(client)
			}
		case "add":
			if len(fields) < 2 {
				fmt.Println("usage: add <patient id>")
				break
			}
			_ = client.AddPatient(ctx, fields[1])
			printState(client)
		case "remove":
			if len(fields) < 2 {
				fmt.Println("usage: remove <patient id>")
				break
			}
			_ = client.RemovePatient(ctx, fields[1])
			printState(client)
		case "quit", "exit":
			client.Logout(ctx)
			return
		default:
			fmt.Println("commands: all | mine | add <id> | remove <id> | quit")
		}
		fmt.Print("> ")
	}
}

func printState(client *console.Client) {
	if n := client.Notification(); n != nil {
		prefix := "info"
		if n.IsError {
			prefix = "error"
		}
		fmt.Printf("[%s] %s\n", prefix, n.Text)
	}
	fmt.Println("All patients:")
	for _, p := range client.AllPatients() {
		marker := " "
		if client.IsAssigned(p.PatientID) {
			marker = "*"
		}
		fmt.Printf("  %s %s  %s %s\n", marker, p.PatientID, p.FirstName, p.LastName)
	}
	fmt.Printf("Your roster (%d):\n", len(client.MyPatients()))
	for _, p := range client.MyPatients() {
		fmt.Printf("    %s  %s %s\n", p.PatientID, p.FirstName, p.LastName)
	}
}
