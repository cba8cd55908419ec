package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/proteus/pkg/featurenote"
)

func newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "List catalog features",
		Long:    "List every feature of the catalog with its remote and local values. A query keeps features whose key or description contains it, ignoring case.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			state := featurenote.Load(cmd.Context(), deps.Book.GetFeatureBook)
			if state.Status == featurenote.StatusError {
				return fmt.Errorf("failed to load features: %s", state.Message)
			}
			matches := featurenote.Search(state.Notes, query)

			if asJSON {
				return writeMatchesJSON(cmd.OutOrStdout(), matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No features found")
				return nil
			}
			return writeMatches(cmd.OutOrStdout(), matches)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matches as JSON with highlight ranges")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one feature",
		Long:  "Display the declared default, the remote value and the active override of a feature.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}

			note, err := deps.Book.GetFeatureNote(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, featurenote.ErrFeatureNotFound) {
					return fmt.Errorf("feature %q is not in the catalog", args[0])
				}
				return fmt.Errorf("failed to get feature: %w", err)
			}

			writeNote(cmd.OutOrStdout(), note)
			return nil
		},
	}
}

func writeMatches(w io.Writer, matches []featurenote.Match) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tPROVIDER\tREMOTE\tOVERRIDE")
	for _, m := range matches {
		n := m.Note
		override := "-"
		if n.IsOverrideActivated() {
			override = n.LocalValue.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			n.Feature.Key(), n.Feature.Type(), n.ProviderTag, n.RemoteValue, override)
	}
	return tw.Flush()
}

type matchView struct {
	Key               string              `json:"key"`
	Type              string              `json:"type"`
	Provider          string              `json:"provider"`
	Description       string              `json:"description,omitempty"`
	RemoteValue       string              `json:"remote_value"`
	LocalValue        *string             `json:"local_value"`
	Effective         string              `json:"effective_value"`
	KeyRanges         []featurenote.Range `json:"key_ranges,omitempty"`
	DescriptionRanges []featurenote.Range `json:"description_ranges,omitempty"`
}

func writeMatchesJSON(w io.Writer, matches []featurenote.Match) error {
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		n := m.Note
		v := matchView{
			Key:               n.Feature.Key(),
			Type:              n.Feature.Type().String(),
			Provider:          n.ProviderTag,
			Description:       n.Feature.Description(),
			RemoteValue:       n.RemoteValue,
			Effective:         n.EffectiveValue(),
			KeyRanges:         m.KeyRanges,
			DescriptionRanges: m.DescriptionRanges,
		}
		if n.IsOverrideActivated() {
			local := n.LocalValue.String()
			v.LocalValue = &local
		}
		views = append(views, v)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func writeNote(w io.Writer, n featurenote.Note) {
	f := n.Feature
	var b strings.Builder
	fmt.Fprintf(&b, "Key:       %s\n", f.Key())
	fmt.Fprintf(&b, "Type:      %s\n", f.Type())
	fmt.Fprintf(&b, "Default:   %s\n", f.Default())
	fmt.Fprintf(&b, "Provider:  %s\n", n.ProviderTag)
	fmt.Fprintf(&b, "Remote:    %s\n", n.RemoteValue)
	if n.IsOverrideActivated() {
		fmt.Fprintf(&b, "Override:  %s\n", n.LocalValue)
	} else {
		b.WriteString("Override:  -\n")
	}
	if d := f.Description(); d != "" {
		fmt.Fprintf(&b, "\n%s\n", d)
	}
	_, _ = io.WriteString(w, b.String())
}
