package registry

import (
	"path/filepath"
	"strings"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
)

// ValidateProjectName rejects names that could escape into the filesystem
// when used to build paths or label lookups.
func ValidateProjectName(name string) error {
	if name == "" {
		return apierr.New(apierr.CodeInvalidRequest, "project name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return apierr.New(apierr.CodeInvalidRequest, "project name %q must not contain path separators", name)
	}
	if strings.Contains(name, "..") {
		return apierr.New(apierr.CodeInvalidRequest, "project name %q must not contain '..'", name)
	}
	return nil
}

// ValidateScanRoot resolves root and rejects it unless it sits at or below
// base. A traversal outside the allowed base is an InvalidRequest.
func ValidateScanRoot(root, base string) (string, error) {
	if root == "" {
		return "", apierr.New(apierr.CodeInvalidRequest, "scan root must not be empty")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", apierr.New(apierr.CodeInvalidRequest, "scan root %q is not a valid path", root)
	}
	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return "", apierr.New(apierr.CodeInvalidRequest, "allowed base %q is not a valid path", base)
	}
	if abs != absBase && !strings.HasPrefix(abs, absBase+string(filepath.Separator)) {
		return "", apierr.New(apierr.CodeInvalidRequest, "scan root %q is outside the allowed base %s", root, absBase)
	}
	return abs, nil
}
