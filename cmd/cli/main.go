package main

import (
	"github.com/crucial707/hci-versions/cmd/cli/root"
	"github.com/crucial707/hci-versions/cmd/cli/versions"
)

func main() {
	versions.InitVersions(root.GetRoot())
	root.Execute()
}
