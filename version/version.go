package version

import (
	"fmt"
	"runtime"
)

// NAME is the app name
const NAME = "Tetris"

// Set via -ldflags at build time.
var (
	VERSION  = "unknown"
	REVISION = "HEAD"
	BUILTAT  = "now"
)

// String renders the version banner.
func String() string {
	return fmt.Sprintf(`%s %s
Git hash:       %s
Built:          %s
Golang version: %s
OS/Arch:        %s/%s
`, NAME, VERSION, REVISION, BUILTAT, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
