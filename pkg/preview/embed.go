package preview

import "embed"

//go:embed templates/*.tpl
var templateFS embed.FS
