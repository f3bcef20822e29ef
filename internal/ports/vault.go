package ports

// SearchHit is one match from a vault search.
type SearchHit struct {
	Path string
	Line int
	Text string
}

// FileWriter is the minimal write capability the materializer needs.
type FileWriter interface {
	WriteFile(path, content string) error
}

// VaultRepository defines the storage operations the tool host exposes over
// the vault root. All paths are vault-relative; implementations must reject
// paths that escape the root.
type VaultRepository interface {
	FileWriter

	ReadFile(path string) (string, error)
	CreateFolder(path string) error
	ListFiles(path string, recursive bool) ([]string, error)
	Search(query, path string) ([]SearchHit, error)
}
