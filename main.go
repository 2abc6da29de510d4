package main

import "racy/cmd"

// Version can be set during build with -ldflags
var version = "dev"

// releaseRepository enables self-update when set during build, e.g.
// -ldflags "-X main.releaseRepository=owner/repo"
var releaseRepository = ""

func main() {
	cmd.SetVersion(version)
	cmd.SetReleaseRepository(releaseRepository)
	cmd.Execute()
}
