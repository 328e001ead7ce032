package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appconfig "github.com/ChapterHouse/app-config-for"
)

var (
	flagEnv      string
	flagStyle    string
	flagDirs     []string
	flagPrefixes []string
	flagFallback string
)

var rootCmd = &cobra.Command{
	Use:   "appconfig",
	Short: "Inspect hierarchical config resolution for a named subject",
	Long: `appconfig resolves the active environment and configuration for a
qualified subject name the same way the library does at runtime, and prints
what it finds. Useful for debugging why a service picked up the settings it
did: which environment variable won, which files were considered, and what
the merged result looks like.`,
}

var envCmd = &cobra.Command{
	Use:   "env <name>",
	Short: "Show the resolved environment and the prefixes probed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := buildSubject(args[0])
		if err != nil {
			return err
		}

		for _, prefix := range subject.EnvPrefixes() {
			marker := " "
			if value, ok := os.LookupEnv(appconfig.EnvKey(prefix)); ok && value != "" {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, appconfig.EnvKey(prefix))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "environment: %s\n", subject.Environment())
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Print the merged settings for a subject as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := buildSubject(args[0])
		if err != nil {
			return err
		}

		request := appconfig.ResolveRequest{Env: flagEnv}
		if flagFallback != "" {
			request.Fallback = appconfig.Named(flagFallback)
		}

		settings, err := subject.Resolver().Resolve(subject, request)
		if err != nil {
			return err
		}

		if settings.IsScalar() {
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", settings.Value())
			return nil
		}

		out, err := yaml.Marshal(settings.ToMap())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates <name>",
	Short: "List every config file path the subject would try, in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := buildSubject(args[0])
		if err != nil {
			return err
		}
		for _, candidate := range subject.Resolver().CandidateFiles(subject) {
			fmt.Fprintln(cmd.OutOrStdout(), candidate)
		}
		return nil
	},
}

func buildSubject(name string) (*appconfig.Subject, error) {
	r := appconfig.New()
	subject := r.Subject(appconfig.Named(name))

	if flagStyle != "" {
		if err := subject.SetStyle(appconfig.Style(flagStyle)); err != nil {
			return nil, err
		}
	}
	for _, dir := range flagDirs {
		subject.AddDirectory(dir)
	}
	for _, prefix := range flagPrefixes {
		subject.AddPrefix(appconfig.Identifier(prefix))
	}
	if flagEnv != "" {
		subject.SetEnvironment(flagEnv)
	}
	return subject, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "override the resolved environment name")
	rootCmd.PersistentFlags().StringVar(&flagStyle, "style", "", "inheritance style (none, namespace, class, namespace_class, class_namespace)")
	rootCmd.PersistentFlags().StringArrayVar(&flagDirs, "dir", nil, "extra config search directory (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&flagPrefixes, "prefix", nil, "extra environment prefix (repeatable)")
	resolveCmd.Flags().StringVar(&flagFallback, "fallback", "", "fallback config name when the primary has no file")

	rootCmd.AddCommand(envCmd, resolveCmd, candidatesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
