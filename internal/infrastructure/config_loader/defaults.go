package loader

import "strings"

const (
	// defaultConfPath is the fallback configuration directory when no overrides are provided.
	defaultConfPath = "configs"
	// defaultServiceName is used when SERVICE_NAME is missing.
	defaultServiceName = "lingo-services-admin"
	// defaultServiceVersion is used when SERVICE_VERSION is missing.
	defaultServiceVersion = "dev"
	// defaultEnvironment is used when APP_ENV is missing.
	defaultEnvironment = "development"
	// defaultInstanceID is used when the hostname cannot be resolved.
	defaultInstanceID = "unknown"
)

func resolveServiceName(v string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return defaultServiceName
}

func resolveServiceVersion(v string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return defaultServiceVersion
}

func resolveEnvironment(v string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return defaultEnvironment
}

func resolveInstanceID(v string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return defaultInstanceID
}
