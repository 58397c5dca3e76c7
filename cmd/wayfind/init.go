package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template    string
		description string
		scheme      string
		skipPrompts bool
	)

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new Wayfind project",
		Long: `Create a new Wayfind project with the specified name.

Templates:
  minimal    Route table declared as Go literals, single file
  full       Screens directory with file-based routes and deep links (default)
  manifest   Route table declared in routes.yaml

Examples:
  wayfind init my-app
  wayfind init my-app --template=minimal
  wayfind init my-app --scheme=myapp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], template, description, scheme, skipPrompts)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "full", "Project template (minimal, full, manifest)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringVar(&scheme, "scheme", "", "Custom URL scheme the app claims (default: project name)")
	cmd.Flags().BoolVarP(&skipPrompts, "yes", "y", false, "Skip prompts and use defaults")

	return cmd
}

func runInit(name, templateName, description, scheme string, skipPrompts bool) error {
	printBanner()
	fmt.Println("  Creating a new Wayfind project...")
	fmt.Println()

	if !isValidProjectName(name) {
		return errors.New("W082").
			WithDetail("'" + name + "' is not a valid project name").
			WithSuggestion("Use lowercase letters, numbers, and hyphens")
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("W083").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	if !skipPrompts {
		description, scheme, err = promptForConfig(description, scheme)
		if err != nil {
			return err
		}
	}

	if description == "" {
		description = "A Wayfind application"
	}
	if scheme == "" {
		scheme = schemeFromName(name)
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	config := templates.Config{
		ProjectName: name,
		ModulePath:  name, // Simple module path for local projects
		Description: description,
		Scheme:      scheme,
	}

	info("Creating project from '%s' template...", templateName)
	if err := tmpl.Create(projectDir, config); err != nil {
		// Clean up on error
		os.RemoveAll(projectDir)
		return err
	}

	info("Installing dependencies...")
	if err := goModTidy(projectDir); err != nil {
		warn("Could not run 'go mod tidy': %v", err)
	}

	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    wayfind routes")
	fmt.Println("    go run .")
	fmt.Println()

	return nil
}

func promptForConfig(description, scheme string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	if description == "" {
		fmt.Printf("? Description: ")
		desc, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		description = strings.TrimSpace(desc)
	}

	if scheme == "" {
		fmt.Printf("? URL scheme (blank for default): ")
		answer, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		scheme = strings.TrimSpace(strings.ToLower(answer))
	}

	return description, scheme, nil
}

func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == ' ' || r == '/' || r == '\\' {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// schemeFromName derives a default URL scheme from the project name,
// keeping lowercase letters and digits only: "my-app" becomes "myapp".
func schemeFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "app"
	}
	return b.String()
}

func goModTidy(dir string) error {
	cmd := exec.Command("go", "mod", "tidy")
	cmd.Dir = dir
	return cmd.Run()
}
