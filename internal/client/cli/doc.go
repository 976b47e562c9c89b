// Package cli provides the JobTrack command-line client.
//
// Invoked with a subcommand (jobtrack log -apps 3) it runs that command once
// and exits. Invoked without arguments it starts an interactive prompt that
// accepts the same commands. The access token obtained by login is cached in
// a file and reused by later invocations until logout.
//
// Commands:
//   - register, login, logout, reset-password
//   - log       add to today's counters
//   - history   list recent days
//   - stats     today, week-to-date, streak and days logged
//   - goals     active goals with progress
//   - set-goal  replace the daily or weekly goal
//   - export    upload history and print or fetch a download link
//   - import    restore days from an export file
//   - health    check the server
package cli
