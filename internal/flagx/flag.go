// Package flagx contains helpers for components that parse only their own
// subset of command-line flags out of a shared os.Args.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvName is the environment variable consulted for the JSON config
// path when neither -c nor -config is given.
const ConfigEnvName = "CONFIG"

// FilterArgs returns the subset of args that belong to allowedFlags, keeping
// values that follow a flag as a separate argument.
//
// Supported forms:
//
//	-c conf.json
//	--config=conf.json
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	matched, _ := splitArgs(args, allowedFlags)
	return matched
}

// RemoveArgs is the complement of FilterArgs: it drops the given flags and
// their values and returns everything else in order.
func RemoveArgs(args []string, flags []string) []string {
	_, rest := splitArgs(args, flags)
	return rest
}

func splitArgs(args []string, flags []string) (matched, rest []string) {
	known := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		known[f] = struct{}{}
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := known[name]; ok {
				matched = append(matched, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			rest = append(rest, arg)
			continue
		}
		matched = append(matched, arg)

		// a following non-flag argument is this flag's value
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			matched = append(matched, args[i+1])
			i++
		}
	}

	return matched, rest
}

// JsonConfigFlags returns the JSON config path given by -c / -config,
// falling back to the CONFIG environment variable. Empty means no file.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	if config == "" {
		config = os.Getenv(ConfigEnvName)
	}

	return config
}
