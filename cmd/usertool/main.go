package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"droneops/internal/auth"
	"droneops/pkg/database"

	"github.com/joho/godotenv"
)

// usertool manages accounts from the command line, mainly for bootstrapping
// the first commander before anyone can approve users over HTTP.
//
//	usertool list
//	usertool approve -user <username> [-role commander]
//	usertool set-role -user <username> -role <role>
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
	service := auth.NewService(db)

	switch os.Args[1] {
	case "list":
		users, err := service.ListUsers()
		if err != nil {
			log.Fatalf("failed to list users: %v", err)
		}
		fmt.Printf("%-20s %-10s %-8s %s\n", "USERNAME", "ROLE", "ACTIVE", "FULL NAME")
		for _, u := range users {
			fmt.Printf("%-20s %-10s %-8t %s\n", u.Username, u.Role, u.IsActive, u.FullName)
		}

	case "approve":
		fs := flag.NewFlagSet("approve", flag.ExitOnError)
		username := fs.String("user", "", "username to approve")
		role := fs.String("role", "", "role to assign (optional)")
		fs.Parse(os.Args[2:])
		if *username == "" {
			fs.Usage()
			os.Exit(2)
		}
		user, err := service.Approve(*username, *role)
		if err != nil {
			log.Fatalf("failed to approve user: %v", err)
		}
		fmt.Printf("approved %s (role %s)\n", user.Username, user.Role)

	case "set-role":
		fs := flag.NewFlagSet("set-role", flag.ExitOnError)
		username := fs.String("user", "", "username")
		role := fs.String("role", "", "viewer, master, commander or admin")
		fs.Parse(os.Args[2:])
		if *username == "" || *role == "" {
			fs.Usage()
			os.Exit(2)
		}
		user, err := service.SetRole(*username, *role)
		if err != nil {
			log.Fatalf("failed to set role: %v", err)
		}
		fmt.Printf("%s is now %s\n", user.Username, user.Role)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: usertool <list|approve|set-role> [flags]")
	os.Exit(2)
}
