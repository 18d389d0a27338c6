package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/travelia/travelia-backend/internal/browse"
	"github.com/travelia/travelia-backend/internal/client"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/editor"
	"github.com/travelia/travelia-backend/internal/logger"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/session"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	api := client.New(cfg.APIBaseURL, nil, log)
	store := session.NewStore(cfg.CredentialsFile)
	sess := session.NewManager(api, store, log)
	catalog := browse.NewCatalog(api, log)
	ed := editor.New(api, cfg.MaxUploadBytes, log)

	ctx := context.Background()

	if sess.Restore(ctx) {
		fmt.Printf("Welcome back, %s\n", sess.Admin().Username)
	}

	app := &console{
		reader:  bufio.NewReader(os.Stdin),
		api:     api,
		sess:    sess,
		catalog: catalog,
		editor:  ed,
	}
	app.run(ctx)
}

type console struct {
	reader  *bufio.Reader
	api     *client.Client
	sess    *session.Manager
	catalog *browse.Catalog
	editor  *editor.PackageEditor
}

func (a *console) run(ctx context.Context) {
	fmt.Println("Travelia admin console. Type 'help' for commands.")
	for {
		fmt.Print("> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "help":
			printHelp()
		case "exit", "quit":
			return
		case "login":
			a.login(ctx)
		case "logout":
			a.sess.Logout(ctx)
			fmt.Println("Logged out")
		case "whoami":
			if admin := a.sess.Admin(); admin != nil {
				fmt.Printf("%s <%s> (%s, session %s)\n", admin.Username, admin.Email, admin.Role, a.sess.State())
			} else {
				fmt.Println("Not logged in")
			}
		case "list":
			a.list(ctx)
		case "show":
			a.show(ctx, args)
		case "new":
			a.editor.NewPackage()
			a.editPackage(ctx)
		case "edit":
			a.edit(ctx, args)
		case "rm":
			a.removePackage(ctx, args)
		case "day":
			a.day(ctx, args)
		case "tour":
			a.tour(ctx, args)
		case "upload":
			a.upload(ctx, args)
		case "rmimage":
			a.removeImage(ctx, args)
		default:
			fmt.Printf("Unknown command %q, type 'help'\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  login / logout / whoami     manage the admin session
  list                        list all packages
  show <id>                   show a package with its itinerary
  new                         create a package
  edit <id>                   edit a package's fields and hero image
  rm <id>                     delete a package
  day add|edit <id>|rm <id>   manage itinerary days of the loaded package
  tour add|edit <n>|rm <n>    manage similar tours of the loaded package
  upload <path>               upload a standalone image
  rmimage <publicId>          delete an uploaded image
  exit`)
}

func (a *console) login(ctx context.Context) {
	email := a.prompt("Email: ")
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}

	if err := a.sess.Login(ctx, email, string(raw)); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Printf("Logged in as %s\n", a.sess.Admin().Username)
}

func (a *console) list(ctx context.Context) {
	packages := a.catalog.Packages(ctx)
	if len(packages) == 0 {
		fmt.Println("No packages")
		return
	}
	for _, pkg := range packages {
		fmt.Printf("%s  %-30s  %-25s  %dd  $%.2f  [%s]\n",
			pkg.ID, pkg.Title, pkg.Route, pkg.Duration, pkg.Price, pkg.Status)
	}
}

func (a *console) show(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: show <id>")
		return
	}

	detail := a.catalog.PackageDetail(ctx, args[0])
	if detail.Err != "" {
		fmt.Println(detail.Err)
		return
	}

	pkg := detail.Package
	fmt.Printf("%s\n%s, %d days, $%.2f [%s]\n", pkg.Title, pkg.Route, pkg.Duration, pkg.Price, pkg.Status)
	if pkg.Description != "" {
		fmt.Println(pkg.Description)
	}
	if len(pkg.Included) > 0 {
		fmt.Println("Included:")
		for _, item := range pkg.Included {
			fmt.Printf("  - %s\n", item)
		}
	}
	for _, d := range detail.Itinerary {
		fmt.Printf("Day %d: %s\n", d.DayNumber, d.Title)
	}
	for i, tour := range pkg.SimilarTours {
		fmt.Printf("Similar tour %d: %s\n", i, tour.Title)
	}
}

func (a *console) edit(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: edit <id>")
		return
	}
	if err := a.editor.Load(ctx, args[0]); err != nil {
		fmt.Printf("Load failed: %v\n", err)
		return
	}
	a.editPackage(ctx)
}

// editPackage walks through the field prompts, included list and image
// attachment, then saves.
func (a *console) editPackage(ctx context.Context) {
	fields := a.editor.Fields()

	fields.Title = a.promptDefault("Title", fields.Title)
	fields.Route = a.promptDefault("Route", fields.Route)
	fields.Duration = a.promptInt("Duration (days)", fields.Duration)
	fields.Description = a.promptDefault("Description", fields.Description)
	fields.Price = a.promptFloat("Price", fields.Price)
	fields.Status = promptStatus(a, fields.Status)
	fields.BrochureURL = a.promptDefault("Brochure URL", fields.BrochureURL)
	a.editor.SetFields(fields)

	for {
		item := a.prompt("Add included item (empty to stop): ")
		if item == "" {
			break
		}
		if !a.editor.AddIncluded(item) {
			fmt.Println("Skipped (blank or duplicate)")
		}
	}

	if path := a.prompt("Hero image path (empty to keep current): "); path != "" {
		img, err := editor.LoadImageFile(path)
		if err != nil {
			fmt.Printf("Cannot read image: %v\n", err)
		} else if err := a.editor.AttachImage(img); err != nil {
			fmt.Printf("Image rejected: %v\n", err)
		}
	}

	saved, err := a.editor.SavePackage(ctx)
	if err != nil {
		var fieldErrs editor.FieldErrors
		if errors.As(err, &fieldErrs) {
			for field, msg := range fieldErrs {
				fmt.Printf("  %s: %s\n", field, msg)
			}
			return
		}
		fmt.Printf("Save failed: %v\n", err)
		return
	}
	fmt.Printf("Saved package %s\n", saved.ID)
}

func (a *console) removePackage(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: rm <id>")
		return
	}
	if err := a.editor.Load(ctx, args[0]); err != nil {
		fmt.Printf("Load failed: %v\n", err)
		return
	}
	if a.prompt("Delete this package and its itinerary? (yes/no): ") != "yes" {
		return
	}
	if err := a.editor.DeletePackage(ctx); err != nil {
		fmt.Printf("Delete failed: %v\n", err)
		return
	}
	fmt.Println("Deleted")
}

func (a *console) day(ctx context.Context, args []string) {
	if a.editor.Current() == nil {
		fmt.Println("Load a package first with 'edit <id>'")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: day add | day edit <id> | day rm <id>")
		return
	}

	switch args[0] {
	case "add":
		a.saveDay(ctx, editor.DayForm{})
	case "edit":
		if len(args) != 2 {
			fmt.Println("Usage: day edit <id>")
			return
		}
		form := editor.DayForm{ID: args[1]}
		for _, d := range a.editor.Current().Itinerary {
			if d.ID.String() == args[1] {
				form.DayNumber = d.DayNumber
				form.Title = d.Title
				form.Description = d.Description
				form.Activities = d.Activities
			}
		}
		a.saveDay(ctx, form)
	case "rm":
		if len(args) != 2 {
			fmt.Println("Usage: day rm <id>")
			return
		}
		if err := a.editor.DeleteDay(ctx, args[1]); err != nil {
			fmt.Printf("Delete failed: %v\n", err)
			return
		}
		fmt.Println("Deleted")
	default:
		fmt.Println("Usage: day add | day edit <id> | day rm <id>")
	}
}

func (a *console) saveDay(ctx context.Context, form editor.DayForm) {
	form.DayNumber = a.promptInt("Day number", form.DayNumber)
	form.Title = a.promptDefault("Title", form.Title)
	form.Description = a.promptDefault("Description", form.Description)
	for {
		activity := a.prompt("Add activity (empty to stop): ")
		if activity == "" {
			break
		}
		form.Activities = append(form.Activities, activity)
	}

	saved, err := a.editor.SaveDay(ctx, form)
	if err != nil {
		fmt.Printf("Save failed: %v\n", err)
		return
	}
	fmt.Printf("Saved day %d (%s)\n", saved.DayNumber, saved.ID)
}

func (a *console) tour(ctx context.Context, args []string) {
	if a.editor.Current() == nil {
		fmt.Println("Load a package first with 'edit <id>'")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: tour add | tour edit <n> | tour rm <n>")
		return
	}

	index := -1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("Tour position must be a number")
			return
		}
		index = n
	}

	switch args[0] {
	case "add", "edit":
		if args[0] == "edit" && index < 0 {
			fmt.Println("Usage: tour edit <n>")
			return
		}
		title := a.prompt("Title: ")
		description := a.prompt("Description: ")

		var img *editor.ImageFile
		if path := a.prompt("Image path (empty to keep current): "); path != "" {
			loaded, err := editor.LoadImageFile(path)
			if err != nil {
				fmt.Printf("Cannot read image: %v\n", err)
				return
			}
			img = loaded
		}

		if _, err := a.editor.SaveTour(ctx, index, title, description, img); err != nil {
			fmt.Printf("Save failed: %v\n", err)
			return
		}
		fmt.Println("Saved")
	case "rm":
		if index < 0 {
			fmt.Println("Usage: tour rm <n>")
			return
		}
		if err := a.editor.DeleteTour(ctx, index); err != nil {
			fmt.Printf("Delete failed: %v\n", err)
			return
		}
		fmt.Println("Deleted")
	default:
		fmt.Println("Usage: tour add | tour edit <n> | tour rm <n>")
	}
}

func (a *console) upload(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: upload <path>")
		return
	}
	img, err := editor.LoadImageFile(args[0])
	if err != nil {
		fmt.Printf("Cannot read image: %v\n", err)
		return
	}

	result, err := a.api.UploadImage(ctx, client.FileAttachment{
		Filename: img.Name,
		Reader:   bytes.NewReader(img.Data),
	})
	if err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		return
	}
	fmt.Printf("Uploaded: %s (publicId %s)\n", result.URL, result.PublicID)
}

func (a *console) removeImage(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: rmimage <publicId>")
		return
	}
	if err := a.api.DeleteImage(ctx, args[0]); err != nil {
		fmt.Printf("Delete failed: %v\n", err)
		return
	}
	fmt.Println("Deleted")
}

func (a *console) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *console) promptDefault(label, current string) string {
	input := a.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if input == "" {
		return current
	}
	return input
}

func (a *console) promptInt(label string, current int) int {
	input := a.prompt(fmt.Sprintf("%s [%d]: ", label, current))
	if input == "" {
		return current
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		fmt.Println("Not a number, keeping current value")
		return current
	}
	return n
}

func (a *console) promptFloat(label string, current float64) float64 {
	input := a.prompt(fmt.Sprintf("%s [%.2f]: ", label, current))
	if input == "" {
		return current
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil {
		fmt.Println("Not a number, keeping current value")
		return current
	}
	return f
}

func promptStatus(a *console, current model.PackageStatus) model.PackageStatus {
	input := a.prompt(fmt.Sprintf("Status (active/inactive) [%s]: ", current))
	if input == "" {
		return current
	}
	return model.PackageStatus(input)
}
