// Package flagx contains helpers for components that parse only a subset of
// the process command line.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments from args that belong to allowedFlags,
// keeping each flag's value. Both "-c conf.json" and "-c=conf.json" forms
// are recognised; everything else is dropped.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			// a following non-flag token is the value
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path passed with -c or -config.
// An empty string means no file was requested.
func JsonConfigFlags(args []string) string {
	return stringFlag(args, "config", "c", "path to config file")
}

// EnvFileFlags extracts the dotenv file path passed with -env.
func EnvFileFlags(args []string) string {
	return stringFlag(args, "env", "", "path to .env file")
}

func stringFlag(args []string, long, short, usage string) string {
	var value string

	names := []string{"-" + long}
	if short != "" {
		names = append(names, "-"+short)
	}

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.StringVar(&value, long, "", usage)
	if short != "" {
		fs.StringVar(&value, short, "", usage)
	}
	_ = fs.Parse(FilterArgs(args, names))

	return value
}
