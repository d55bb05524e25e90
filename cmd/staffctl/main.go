package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"staffdesk/internal/client"
)

const usage = `usage: staffctl [-url URL] [-token TOKEN] <command> [args]

commands:
  login <email> <password>      print a new token
  me                            show the token owner
  logout                        revoke the token
  list                          list employees
  get <id>                      show one employee
  create -name .. -email .. -position .. -salary .. -status ..
  update <id> -name .. -email .. -position .. -salary .. -status ..
  delete <id>                   delete an employee

The token may also be given in STAFFDESK_TOKEN.
`

func main() {
	var (
		baseURL = flag.String("url", envOr("STAFFDESK_URL", "http://localhost:8000/api"), "API base URL")
		token   = flag.String("token", os.Getenv("STAFFDESK_TOKEN"), "bearer token")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*baseURL)
	session := client.NewSession(*token)

	if err := run(ctx, api, session, flag.Arg(0), flag.Args()[1:]); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api *client.Client, session *client.Session, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) != 2 {
			return errors.New("login needs <email> <password>")
		}
		s, err := api.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(s.Token())
		return nil

	case "me":
		user, err := api.CurrentUser(ctx, session)
		if err != nil {
			return err
		}
		return printJSON(user)

	case "logout":
		if err := api.Logout(ctx, session); err != nil {
			fmt.Fprintln(os.Stderr, "warning: server logout failed:", err)
		}
		fmt.Println("logged out")
		return nil

	case "list":
		employees, err := api.ListEmployees(ctx, session)
		if err != nil {
			return err
		}
		return printTable(employees)

	case "get":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		employee, err := api.GetEmployee(ctx, session, id)
		if err != nil {
			return err
		}
		return printJSON(employee)

	case "create":
		req, err := parseEmployee("create", args)
		if err != nil {
			return err
		}
		employee, err := api.CreateEmployee(ctx, session, req)
		if err != nil {
			return err
		}
		return printJSON(employee)

	case "update":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		req, err := parseEmployee("update", args[1:])
		if err != nil {
			return err
		}
		employee, err := api.UpdateEmployee(ctx, session, id, req)
		if err != nil {
			return err
		}
		return printJSON(employee)

	case "delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if err := api.DeleteEmployee(ctx, session, id); err != nil {
			return err
		}
		fmt.Printf("employee %d deleted\n", id)
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseID(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("missing <id>")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return uint(id), nil
}

func parseEmployee(name string, args []string) (client.EmployeeRequest, error) {
	var req client.EmployeeRequest
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Position, "position", "", "job title")
	fs.Float64Var(&req.Salary, "salary", 0, "salary")
	fs.StringVar(&req.Status, "status", "active", "active or inactive")
	if err := fs.Parse(args); err != nil {
		return req, err
	}
	return req, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(employees []client.Employee) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPOSITION\tSALARY\tSTATUS")
	for _, e := range employees {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\n", e.ID, e.Name, e.Email, e.Position, e.Salary, e.Status)
	}
	return w.Flush()
}

func printError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "error: %s (HTTP %d)\n", apiErr.Message, apiErr.Status)
		for field, msgs := range apiErr.Errors {
			for _, m := range msgs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, m)
			}
		}
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
