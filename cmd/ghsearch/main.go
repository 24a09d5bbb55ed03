// Command ghsearch searches GitHub users and prints profiles from the
// terminal, using the same services as the web server.
//
//	ghsearch search torvalds --type Users --location Portland --followers 100
//	ghsearch user octocat --language Go
package main

import (
	"os"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
