package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	internalconfig "github.com/defihorse/horse-deploy/internal/config"
)

// InitProject scaffolds the configuration of a deployment project
type InitProject struct {
	projectRoot string
	fileWriter  FileWriter
	templates   ProjectTemplates
}

// NewInitProject creates a new init project use case
func NewInitProject(projectRoot string, fileWriter FileWriter, templates ProjectTemplates) *InitProject {
	return &InitProject{
		projectRoot: projectRoot,
		fileWriter:  fileWriter,
		templates:   templates,
	}
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ProjectRoot        string
	ConfigCreated      bool
	SecretsExample     bool
	GitignoreUpdated   bool
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

// Run initializes the project. Existing files are never overwritten.
func (i *InitProject) Run(ctx context.Context) (*InitProjectResult, error) {
	result := &InitProjectResult{
		ProjectRoot: i.projectRoot,
		Steps:       []InitStep{},
	}

	steps := []func(context.Context, *InitProjectResult) InitStep{
		i.createDeployConfig,
		i.createSecretsExample,
		i.ignoreSecrets,
		i.createDirectories,
	}
	for _, run := range steps {
		step := run(ctx, result)
		result.Steps = append(result.Steps, step)
		if !step.Success {
			return result, step.Error
		}
	}

	return result, nil
}

func (i *InitProject) path(name string) string {
	return filepath.Join(i.projectRoot, name)
}

func (i *InitProject) createDeployConfig(ctx context.Context, result *InitProjectResult) InitStep {
	const name = "Create " + internalconfig.DefaultConfigFile
	path := i.path(internalconfig.DefaultConfigFile)

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to check %s: %w", internalconfig.DefaultConfigFile, err)}
	}
	if exists {
		result.AlreadyInitialized = true
		return InitStep{Name: name, Success: true, Message: internalconfig.DefaultConfigFile + " already exists"}
	}

	content, err := i.templates.DeployConfig(ctx)
	if err != nil {
		return InitStep{Name: name, Error: err}
	}
	if err := i.fileWriter.WriteFile(ctx, path, content); err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to create %s: %w", internalconfig.DefaultConfigFile, err)}
	}

	result.ConfigCreated = true
	return InitStep{Name: name, Success: true, Message: "Created " + internalconfig.DefaultConfigFile + " with BSC testnet and mainnet profiles"}
}

func (i *InitProject) createSecretsExample(ctx context.Context, result *InitProjectResult) InitStep {
	const name = "Create " + internalconfig.SecretsExampleFile
	path := i.path(internalconfig.SecretsExampleFile)

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to check %s: %w", internalconfig.SecretsExampleFile, err)}
	}
	if exists {
		return InitStep{Name: name, Success: true, Message: internalconfig.SecretsExampleFile + " already exists"}
	}

	content, err := i.templates.SecretsExample(ctx)
	if err != nil {
		return InitStep{Name: name, Error: err}
	}
	if err := i.fileWriter.WriteFile(ctx, path, content); err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to create %s: %w", internalconfig.SecretsExampleFile, err)}
	}

	result.SecretsExample = true
	return InitStep{
		Name:    name,
		Success: true,
		Message: fmt.Sprintf("Created %s, copy it to %s and fill in your key", internalconfig.SecretsExampleFile, internalconfig.DefaultSecretsFile),
	}
}

func (i *InitProject) ignoreSecrets(ctx context.Context, result *InitProjectResult) InitStep {
	const name = "Ignore secrets"
	path := i.path(".gitignore")

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to check .gitignore: %w", err)}
	}
	if exists {
		content, err := i.fileWriter.ReadFile(ctx, path)
		if err != nil {
			return InitStep{Name: name, Error: fmt.Errorf("failed to read .gitignore: %w", err)}
		}
		for _, line := range strings.Split(content, "\n") {
			entry := strings.TrimPrefix(strings.TrimSpace(line), "/")
			if entry == internalconfig.DefaultSecretsFile {
				return InitStep{Name: name, Success: true, Message: internalconfig.DefaultSecretsFile + " is already ignored"}
			}
		}
	}

	if err := i.fileWriter.AppendLine(ctx, path, internalconfig.DefaultSecretsFile); err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to update .gitignore: %w", err)}
	}

	result.GitignoreUpdated = true
	return InitStep{Name: name, Success: true, Message: "Added " + internalconfig.DefaultSecretsFile + " to .gitignore"}
}

func (i *InitProject) createDirectories(ctx context.Context, result *InitProjectResult) InitStep {
	const name = "Create directories"
	paths := internalconfig.DefaultDeployFile().Paths

	for _, role := range []string{"sources", "tests"} {
		if err := i.fileWriter.EnsureDirectory(ctx, i.path(paths[role])); err != nil {
			return InitStep{Name: name, Error: fmt.Errorf("failed to create %s directory: %w", role, err)}
		}
	}

	return InitStep{Name: name, Success: true, Message: fmt.Sprintf("Ensured %s and %s exist", paths["sources"], paths["tests"])}
}
