// Command pslcli parses, queries, and snapshots Public Suffix Lists
// from the command line, exercising the pslcore package end to end.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/net/idna"

	"github.com/domainkit/pslcore"
)

var (
	cacheFile  = "public_suffix_list.dat"
	selfieFile string
	outFile    string
)

// cachePathValue is a pflag.Value wrapping cacheFile directly, rejecting
// an empty path instead of silently accepting one that afero would
// later fail to stat.
type cachePathValue struct{}

func (cachePathValue) String() string { return cacheFile }

func (cachePathValue) Set(s string) error {
	if s == "" {
		return errors.New("cache path must not be empty")
	}
	cacheFile = s
	return nil
}

func (cachePathValue) Type() string { return "path" }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pslcli",
		Short: "Query and build Public Suffix List snapshots",
	}
	root.PersistentFlags().Var(cachePathValue{}, "cache", "local PSL cache path")
	root.AddCommand(newParseCmd(), newLookupCmd(), newAccelerateCmd())
	return root
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a PSL file and write its selfie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()
			text, err := afero.ReadFile(fsys, args[0])
			if err != nil {
				return err
			}
			l := pslcore.New()
			l.Parse(string(text), idna.ToASCII)
			selfie := l.ToSelfieString(nil)
			if outFile == "" {
				fmt.Println(selfie)
				return nil
			}
			return afero.WriteFile(fsys, outFile, []byte(selfie), 0o644)
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "write selfie here instead of stdout")
	return cmd
}

func newLookupCmd() *cobra.Command {
	var includePrivate bool
	cmd := &cobra.Command{
		Use:   "lookup <hostname>",
		Short: "Print the public suffix, registrable domain, and suffix check for a hostname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadList()
			if err != nil {
				return err
			}
			hostname := args[0]
			if includePrivate {
				pslcore.PrintResult(l.Query(hostname))
				return nil
			}
			suffix, registrable, isSuffix := l.MatchWithOptions(hostname, pslcore.MatchOptions{ExcludePrivate: true})
			pslcore.PrintResult(pslcore.QueryResult{
				Hostname:          hostname,
				PublicSuffix:      suffix,
				RegistrableDomain: registrable,
				IsPublicSuffix:    isSuffix,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&selfieFile, "selfie", "", "load a selfie file instead of fetching+parsing the default list")
	cmd.Flags().BoolVar(&includePrivate, "private", true, "include private-section rules when matching")
	return cmd
}

func newAccelerateCmd() *cobra.Command {
	var on, off bool
	cmd := &cobra.Command{
		Use:   "accelerate",
		Short: "Toggle the accelerator backend on a freshly loaded list",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadList()
			if err != nil {
				return err
			}
			switch {
			case on:
				ok := l.EnableAccelerator(func() ([]byte, error) {
					return nil, fmt.Errorf("no accelerator backend configured")
				})
				fmt.Println("accelerator enabled:", ok)
			case off:
				l.DisableAccelerator()
				fmt.Println("accelerator enabled:", l.AcceleratorEnabled())
			default:
				fmt.Println("accelerator enabled:", l.AcceleratorEnabled())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&on, "on", false, "enable the accelerator backend")
	cmd.Flags().BoolVar(&off, "off", false, "disable the accelerator backend")
	return cmd
}

// loadList loads a PublicSuffixList either from --selfie, or by
// fetching (and caching via afero) the canonical PSL and parsing it.
func loadList() (*pslcore.PublicSuffixList, error) {
	l := pslcore.New()
	if selfieFile != "" {
		fsys := afero.NewOsFs()
		raw, err := afero.ReadFile(fsys, selfieFile)
		if err != nil {
			return nil, err
		}
		if err := l.FromSelfieString(string(raw), nil); err != nil {
			return nil, err
		}
		return l, nil
	}

	fsys := afero.NewOsFs()
	text, err := pslcore.FetchPublicSuffixList(fsys, cacheFile)
	if err != nil {
		return nil, err
	}
	l.Parse(text, idna.ToASCII)
	return l, nil
}

var _ pflag.Value = cachePathValue{}
