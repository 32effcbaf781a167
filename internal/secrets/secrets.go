// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads AWS credentials and settings from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: aws-profile, aws-region, aws-access-key-id,
// aws-secret-access-key, aws-session-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// envVars maps supported key files to the AWS SDK environment variables
// they populate.
var envVars = map[string]string{
	"aws-profile":           "AWS_PROFILE",
	"aws-region":            "AWS_REGION",
	"aws-access-key-id":     "AWS_ACCESS_KEY_ID",
	"aws-secret-access-key": "AWS_SECRET_ACCESS_KEY",
	"aws-session-token":     "AWS_SESSION_TOKEN",
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			zap.S().Warnf("could not read secret %s: %v", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ExportEnv sets the AWS environment variable for each supported secret
// whose variable is unset or empty, so values from the real environment
// win. It returns the sorted names of the variables it set.
func ExportEnv(secrets map[string]string) ([]string, error) {
	var exported []string
	for key, value := range secrets {
		env, ok := envVars[key]
		if !ok {
			continue
		}
		if cur, set := os.LookupEnv(env); set && cur != "" {
			continue
		}
		if err := os.Setenv(env, value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", env, err)
		}
		exported = append(exported, env)
	}
	sort.Strings(exported)
	return exported, nil
}
