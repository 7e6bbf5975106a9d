// Package flagx lets the config layers each parse their own flags out of one
// shared argument list. A FlagSet only ever sees the flags it defines, so the
// JSON loader's -c and the CLI's -a/-d/-t/-h/-v never trip each other.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

type boolFlag interface {
	IsBoolFlag() bool
}

// owned maps each flag name defined on fs to whether it takes a value.
func owned(fs *flag.FlagSet) map[string]bool {
	names := make(map[string]bool)
	fs.VisitAll(func(f *flag.Flag) {
		b, ok := f.Value.(boolFlag)
		names[f.Name] = !(ok && b.IsBoolFlag())
	})
	return names
}

// Filter keeps the arguments that belong to fs: its flags in "-x", "--x" or
// "-x=v" form, plus the following token for flags that take a value and were
// not written with "=". Everything after a bare "--" is dropped. The result is
// never nil.
func Filter(fs *flag.FlagSet, args []string) []string {
	names := owned(fs)
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		takesValue, ok := names[name]
		if !ok {
			continue
		}
		out = append(out, arg)

		if takesValue && !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ParseOwn parses only fs's flags out of args.
func ParseOwn(fs *flag.FlagSet, args []string) error {
	return fs.Parse(Filter(fs, args))
}

// ConfigFile returns the JSON config path given with -c or -config, or ""
// when neither is present. The last occurrence wins.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = ParseOwn(fs, args)

	return path
}

// JsonConfigFlags is ConfigFile over os.Args.
func JsonConfigFlags() string {
	return ConfigFile(os.Args[1:])
}
