package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// MaxRecipeNameLength caps recipe names, matching the column width used
// for tag and ingredient names.
const MaxRecipeNameLength = 200

// TagPalette is the fixed set of tag colors. Tag colors are unique, so
// the palette also bounds how many tags can exist.
var TagPalette = []string{
	"#48e22d", // breakfast
	"#2da3e2", // dinner
	"#c72de2", // supper
	"#FF0000",
	"#008000",
	"#0000FF",
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func IsPaletteColor(color string) bool {
	for _, c := range TagPalette {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}
