package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"qrcmigrate/internal/resource"
)

type groupView struct {
	Index  int      `json:"index"`
	Tag    string   `json:"tag"`
	Prefix *string  `json:"prefix"`
	Target bool     `json:"target"`
	Files  []string `json:"files"`
}

func newGroupsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "groups <migration_file_path>",
		Short: "List the root-level groups of a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			desc, err := resource.Load(args[0])
			if err != nil {
				return fmt.Errorf("load migration descriptor: %w", err)
			}

			target, found := desc.FindGroup(cfg.Descriptor.Prefix)
			if !found {
				target = -1
			}
			views := buildGroupViews(desc.Groups(cfg.Descriptor.FileTag), target)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintf(out, "%s has no groups\n", desc.RootTag())
				return nil
			}
			fmt.Fprintln(out, renderGroupsTable(views, isTerminal(out)))
			if !found {
				fmt.Fprintf(out, "No group has prefix %q; new entries would not be added.\n", cfg.Descriptor.Prefix)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func buildGroupViews(groups []resource.Group, target int) []groupView {
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		view := groupView{
			Index:  g.Index,
			Tag:    g.Tag,
			Target: g.Index == target,
			Files:  g.Files,
		}
		if g.HasPrefix {
			prefix := g.Prefix
			view.Prefix = &prefix
		}
		if view.Files == nil {
			view.Files = []string{}
		}
		views = append(views, view)
	}
	return views
}

func renderGroupsTable(views []groupView, fancy bool) string {
	headers := []string{"#", "Tag", "Prefix", "Files", "Last File", "Target"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		prefix := "-"
		if v.Prefix != nil {
			prefix = strconv.Quote(*v.Prefix)
		}
		last := ""
		if n := len(v.Files); n > 0 {
			last = v.Files[n-1]
		}
		rows = append(rows, []string{
			strconv.Itoa(v.Index),
			v.Tag,
			prefix,
			strconv.Itoa(len(v.Files)),
			last,
			yesNo(v.Target),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
	return renderTable(headers, rows, aligns, fancy)
}
