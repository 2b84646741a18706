package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iudanet/marketdash/internal/client/api"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Флаги фильтров необязательны: указатель остается nil, пока флаг не задан

func intFlag(fs *flag.FlagSet, name, usage string, dst **int) {
	fs.Func(name, usage, func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*dst = &v
		return nil
	})
}

func floatFlag(fs *flag.FlagSet, name, usage string, dst **float64) {
	fs.Func(name, usage, func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*dst = &v
		return nil
	})
}

func boolFlag(fs *flag.FlagSet, name, usage string, dst **bool) {
	fs.Func(name, usage, func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", s)
		}
		*dst = &v
		return nil
	})
}

func stringFlag[T ~string](fs *flag.FlagSet, name, usage string, dst **T) {
	fs.Func(name, usage, func(s string) error {
		v := T(s)
		*dst = &v
		return nil
	})
}

// subcommand отделяет подкоманду от аргументов. Без подкоманды используется def.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

// requireArg возвращает первый позиционный аргумент
func requireArg(args []string, name string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return args[0], nil
}

// check превращает неуспешный результат в ошибку команды
func check[T any](res *api.Result[T], action string) (T, error) {
	if err := res.Err(); err != nil {
		var zero T
		if api.IsUnauthorized(err) {
			return zero, fmt.Errorf("%s: %w: %w", action, ErrNotAuthenticated, err)
		}
		return zero, fmt.Errorf("%s: %w", action, err)
	}
	return res.Data, nil
}

func (c *Cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptionalAmount(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatAmount(*v)
}

func formatOptional(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
