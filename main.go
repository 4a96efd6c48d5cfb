package main

import (
	"github.com/jssimporter/jss-helper/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// jss-helper queries and modifies objects on a Jamf Pro server through its Classic API:
//   - Searches computers, mobile devices, groups, policies, configuration profiles,
//     packages, categories and imaging configurations by ID, name or shell-style wildcard
//   - Reports which policies and profiles are scoped to, or exclude, a group, and diffs
//     the scope of two groups side by side
//   - Finds every policy and imaging configuration installing a package
//   - Adds and removes group members, batch scopes policies to groups
//   - Promotes a policy to a newer package version, optionally renaming the policy to match
//
// Error handling strategy:
//   - "Not found" is a normal outcome: it is reported on stdout and the process exits non-zero
//   - Transport and validation failures from the server abort the action with an [ERROR] line
//   - Nothing is retried unless the preferences ask for extra read attempts
func main() {
	cmd.Execute()
}
