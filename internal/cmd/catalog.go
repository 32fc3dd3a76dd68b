package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ideaform/pkg/catalog"
)

type violation struct {
	file    string
	message string
}

func (a *app) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with copy catalogs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check catalogs cover every field, option and step",
		Long: `lint loads each catalog and reports missing labels, unknown or duplicated
option values and empty sections. Without paths the embedded catalog and the
configured one, if any, are checked.`,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 && a.cfg.Catalog != "" {
				paths = []string{a.cfg.Catalog}
			}

			var violations []violation
			if len(paths) == 0 {
				violations = append(violations, lintCatalog("embedded", catalog.Default())...)
			}
			for _, path := range paths {
				violations = append(violations, lintFile(path)...)
			}

			if len(violations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "catalogs ok")
				return nil
			}
			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					return violations[i].message < violations[j].message
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.file, v.message)
			}
			return fmt.Errorf("catalog lint: %d problem(s)", len(violations))
		},
	})
	return cmd
}

func lintFile(path string) []violation {
	cat, err := loadCatalogFile(path)
	if err != nil {
		return splitViolations(path, err)
	}
	return lintCatalog(path, cat)
}

func lintCatalog(name string, cat *catalog.Catalog) []violation {
	return splitViolations(name, cat.Validate())
}

// splitViolations reports each joined error on its own line.
func splitViolations(file string, err error) []violation {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []violation
		for _, inner := range joined.Unwrap() {
			out = append(out, splitViolations(file, inner)...)
		}
		return out
	}
	var out []violation
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, violation{file: file, message: line})
		}
	}
	return out
}
