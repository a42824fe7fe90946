// Package validation provides input validation utilities.
//
// Several step inputs (package names, unit names, usernames, paths) end
// up as arguments to system commands, so everything funnels through the
// same injection checks before a step is compiled.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// packagePattern covers RPM package names and shell globs over them.
	packagePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+*?-]*$`)

	// unitPattern covers systemd unit names, with or without a type suffix.
	unitPattern = regexp.MustCompile(`^[a-zA-Z0-9:_.\\-]+(?:\.(?:service|socket|timer|target|mount|path))?$`)

	// usernamePattern is the conservative POSIX form.
	usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

	// Characters that should never appear in any step input.
	dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r", " "}
)

// checkCommon rejects null bytes and shell metacharacters.
func checkCommon(kind, value string) error {
	if strings.ContainsRune(value, '\x00') {
		return fmt.Errorf("%s contains null byte", kind)
	}
	for _, char := range dangerousChars {
		if strings.Contains(value, char) {
			return fmt.Errorf("%s contains invalid character: %q", kind, char)
		}
	}
	return nil
}

// ValidatePackageName validates an RPM package name or glob.
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("package name too long (max 255 characters)")
	}
	if err := checkCommon("package name", name); err != nil {
		return err
	}
	if !packagePattern.MatchString(name) {
		return fmt.Errorf("invalid package name format: must contain only alphanumeric characters, dots, hyphens, underscores, and glob characters")
	}
	return nil
}

// ValidateUnitName validates a systemd unit name.
func ValidateUnitName(name string) error {
	if name == "" {
		return fmt.Errorf("unit name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("unit name too long (max 255 characters)")
	}
	if err := checkCommon("unit name", name); err != nil {
		return err
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("unit name cannot contain '/'")
	}
	if !unitPattern.MatchString(name) {
		return fmt.Errorf("invalid unit name format")
	}
	return nil
}

// ValidateUsername validates a system account name.
func ValidateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(name) > 32 {
		return fmt.Errorf("username too long (max 32 characters)")
	}
	if err := checkCommon("username", name); err != nil {
		return err
	}
	if !usernamePattern.MatchString(name) {
		return fmt.Errorf("invalid username format: must start with a lowercase letter or underscore")
	}
	return nil
}

// ValidateAbsolutePath validates a filesystem path a step may remove or
// rewrite. Only absolute paths are accepted and traversal segments are
// rejected.
func ValidateAbsolutePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(path) > 4096 {
		return fmt.Errorf("path too long (max 4096 characters)")
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("path contains null byte")
	}
	for _, char := range []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r"} {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains invalid character: %q", char)
		}
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must be absolute")
	}
	if path == "/" {
		return fmt.Errorf("refusing to operate on '/'")
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return fmt.Errorf("path cannot contain '..'")
		}
	}
	return nil
}
