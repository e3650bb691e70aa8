package filter

// DefaultExcluded lists version-control, cache, and build-artifact names that
// are always skipped. The table is constant after initialization and cannot be
// disabled by callers, even through explicit include patterns. The rigidity is
// intentional and documented in the README.
//
// .gitignore and .dockerignore are deliberately absent: they are configuration
// files that default to full content.
var DefaultExcluded = []string{
	"node_modules",
	"venv",
	"env",
	".env",
	".venv",
	".git",
	".svn",
	".hg",
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	"build",
	"dist",
	"target",
	".next",
	".nuxt",
	"coverage",
	".coverage",
	"htmlcov",
	".DS_Store",
	"Thumbs.db",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	".Python",
	"*.so",
	"*.dylib",
	"*.dll",
	"*.egg",
	"*.egg-info",
	".idea",
	".vscode",
	"*.swp",
	"*.swo",
	"*.pkl",
	"*.parquet",
}

// DefaultExcludedDirectories lists directory names whose contents add bulk
// without structural signal. Also constant and always honored.
var DefaultExcludedDirectories = []string{
	"tests",
	"test",
	"__tests__",
	"migrations",
	"docs",
	"documentation",
	"examples",
	"samples",
	"static",
	"public",
	"assets",
	"media",
	"vendor",
	"third_party",
}
