package version

// Version is the apimesh build version. Release builds override it with
// -ldflags "-X github.com/apimesh/apimesh/internal/version.Version=vX.Y.Z".
var Version = "dev"
