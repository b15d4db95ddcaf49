package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/jobdeck/jobdeck/internal/client/session"
	"github.com/jobdeck/jobdeck/internal/client/state"
	apiclient "github.com/jobdeck/jobdeck/pkg/api/client"
)

var buildVersion = "dev"

const requestTimeout = 15 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "register":
		err = commandRegister(args)
	case "login":
		err = commandLogin(args)
	case "logout":
		err = commandLogout(args)
	case "list":
		err = commandList(args)
	case "get":
		err = commandGet(args)
	case "add":
		err = commandAdd(args)
	case "update":
		err = commandUpdate(args)
	case "rm":
		err = commandRemove(args)
	case "stats":
		err = commandStats(args)
	case "theme":
		err = commandTheme(args)
	case "version", "--version", "-v":
		fmt.Println("jobdeck", buildVersion)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the session files and the state store behind every command.
type app struct {
	sessions *session.Manager
	cfg      session.Config
	store    *state.Store
}

func newApp(apiOverride string) (*app, error) {
	sessions, err := session.New(os.Getenv("JOBDECK_CONFIG_DIR"))
	if err != nil {
		return nil, err
	}
	cfg, err := sessions.LoadConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiOverride) != "" {
		cfg.APIBaseURL = apiOverride
	}
	api, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}
	store := state.New(api)
	if cfg.Theme != "" {
		store.SetTheme(cfg.Theme)
	}
	token, err := sessions.Token()
	if err != nil {
		return nil, err
	}
	if token != "" {
		store.RestoreSession(cfg.UserName, token)
	}
	return &app{sessions: sessions, cfg: cfg, store: store}, nil
}

func (a *app) requireSession() error {
	if !a.store.Snapshot().Auth.LoggedIn {
		return errors.New("not logged in, run: jobdeck login")
	}
	return nil
}

func (a *app) saveSession() error {
	snap := a.store.Snapshot()
	a.cfg.UserName = snap.Auth.Name
	if err := a.sessions.SaveConfig(a.cfg); err != nil {
		return err
	}
	return a.sessions.SaveToken(snap.Auth.Token)
}

func commandRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	apiBase := fs.String("api", "", "API base URL")
	fs.Parse(args)

	secret, err := resolvePassword(*password)
	if err != nil {
		return err
	}
	a, err := newApp(*apiBase)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*apiBase) != "" {
		a.cfg.APIBaseURL = *apiBase
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := a.store.Register(ctx, *name, *email, secret); err != nil {
		return describeFormError(a.store)
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	fmt.Printf("welcome, %s\n", a.store.Snapshot().Auth.Name)
	return nil
}

func commandLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	apiBase := fs.String("api", "", "API base URL")
	fs.Parse(args)

	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	secret, err := resolvePassword(*password)
	if err != nil {
		return err
	}
	a, err := newApp(*apiBase)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*apiBase) != "" {
		a.cfg.APIBaseURL = *apiBase
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := a.store.Login(ctx, *email, secret); err != nil {
		return describeFormError(a.store)
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	fmt.Printf("welcome back, %s\n", a.store.Snapshot().Auth.Name)
	return nil
}

func commandLogout(args []string) error {
	a, err := newApp("")
	if err != nil {
		return err
	}
	a.store.Logout()
	a.cfg.UserName = ""
	if err := a.sessions.SaveConfig(a.cfg); err != nil {
		return err
	}
	if err := a.sessions.ClearToken(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func commandList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status (pending|interviewed|declined)")
	search := fs.String("search", "", "Filter by company or position substring")
	fs.Parse(args)

	a, err := newApp("")
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	a.store.SetStatusFilter(*status)
	a.store.SetSearch(*search)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := a.store.FetchJobs(ctx); err != nil {
		return err
	}
	jobs := a.store.VisibleJobs()
	if len(jobs) == 0 {
		fmt.Println("no jobs to show")
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY\tPOSITION\tSTATUS\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Company, j.Position, j.Status, j.CreatedAt.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

func commandGet(args []string) error {
	id, _, err := popID(args)
	if err != nil {
		return err
	}
	a, err := newApp("")
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	a.store.SelectJob(id)
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	job, err := a.store.GetJob(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("id:       %s\ncompany:  %s\nposition: %s\nstatus:   %s\ncreated:  %s\nupdated:  %s\n",
		job.ID, job.Company, job.Position, job.Status,
		job.CreatedAt.Local().Format(time.RFC822), job.UpdatedAt.Local().Format(time.RFC822))
	return nil
}

func commandAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Position title")
	status := fs.String("status", "", "Status (default pending)")
	fs.Parse(args)

	a, err := newApp("")
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	created, err := a.store.CreateJob(ctx, apiclient.JobInput{Company: *company, Position: *position, Status: *status})
	if err != nil {
		return describeFormError(a.store)
	}
	fmt.Printf("created job %s\n", created.ID)
	return nil
}

func commandUpdate(args []string) error {
	id, rest, err := popID(args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Position title")
	status := fs.String("status", "", "Status (omit to keep current)")
	fs.Parse(rest)

	a, err := newApp("")
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	updated, err := a.store.UpdateJob(ctx, id, apiclient.JobInput{Company: *company, Position: *position, Status: *status})
	if err != nil {
		return describeFormError(a.store)
	}
	fmt.Printf("updated job %s (%s at %s, %s)\n", updated.ID, updated.Position, updated.Company, updated.Status)
	return nil
}

func commandRemove(args []string) error {
	id, _, err := popID(args)
	if err != nil {
		return err
	}
	a, err := newApp("")
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := a.store.DeleteJob(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted job %s\n", id)
	return nil
}

func commandStats(args []string) error {
	a, err := newApp("")
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := a.store.FetchStats(ctx); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tCOUNT")
	for _, sc := range a.store.Snapshot().Jobs.Stats {
		fmt.Fprintf(tw, "%s\t%d\n", sc.Status, sc.Count)
	}
	return tw.Flush()
}

func commandTheme(args []string) error {
	a, err := newApp("")
	if err != nil {
		return err
	}
	if len(args) == 0 {
		theme := a.store.Snapshot().UI.Theme
		fmt.Println(theme)
		return nil
	}
	theme := args[0]
	if theme != "light" && theme != "dark" {
		return errors.New("theme must be light or dark")
	}
	a.store.SetTheme(theme)
	a.cfg.Theme = theme
	if err := a.sessions.SaveConfig(a.cfg); err != nil {
		return err
	}
	fmt.Printf("theme set to %s\n", theme)
	return nil
}

func resolvePassword(flagValue string) (string, error) {
	secret := strings.TrimSpace(flagValue)
	if secret != "" {
		return secret, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Print("\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func popID(args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, errors.New("job id argument is required")
	}
	return args[0], args[1:], nil
}

// describeFormError surfaces the store's recorded error and, when the
// message maps to a form field, names the field the way the web client
// highlights inputs inline.
func describeFormError(store *state.Store) error {
	snap := store.Snapshot()
	msg := snap.Auth.Error
	if msg == "" {
		msg = snap.Jobs.Error
	}
	if msg == "" {
		return errors.New("request failed")
	}
	if field := state.FieldFromError(msg); field != "" {
		return fmt.Errorf("%s (check the %s field)", msg, field)
	}
	return errors.New(msg)
}

func printUsage() {
	fmt.Println(`jobdeck - track job applications from the terminal

Usage:
  jobdeck register --name NAME --email EMAIL [--password PASS] [--api URL]
  jobdeck login --email EMAIL [--password PASS] [--api URL]
  jobdeck logout
  jobdeck list [--status STATUS] [--search TEXT]
  jobdeck get ID
  jobdeck add --company NAME --position TITLE [--status STATUS]
  jobdeck update ID --company NAME --position TITLE [--status STATUS]
  jobdeck rm ID
  jobdeck stats
  jobdeck theme [light|dark]
  jobdeck version`)
}
