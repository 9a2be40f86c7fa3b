package doctrans

// Build metadata. GitCommit and BuildDate are stamped by release builds:
//
//	go build -ldflags "-X github.com/ZaguanLabs/doctrans.GitCommit=$(git rev-parse HEAD)"
const (
	Name        = "doctrans"
	Description = "Document translation with structure-preserving table round trips"
	Version     = "0.1.0"
)

var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// UserAgent identifies doctrans to the translation APIs it calls.
func UserAgent() string {
	return Name + "/" + Version
}
