package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

func newFieldsCommand(ctx *commandContext) *cobra.Command {
	var itemTypeFlag string
	var itemNumFlag string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the flattened record fields available as template tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			typeName := strings.TrimSpace(itemTypeFlag)
			if typeName == "" {
				typeName = cfg.Labels.ItemType
			}
			itemType, err := snipeit.ParseItemType(typeName)
			if err != nil {
				return services.Wrap(services.ErrValidation, "fields", "item type", err.Error(), nil)
			}
			itemNum := strings.TrimSpace(itemNumFlag)
			if itemNum == "" {
				return services.Wrap(services.ErrValidation, "fields", "item id", "pass --item-num", nil)
			}

			flat, err := p.Fields(cmd.Context(), itemType, itemNum)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(flat))
			for _, key := range flat.SortedKeys() {
				rows = append(rows, []string{fmt.Sprintf("{{%s}}", key), flat[key]})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]column{{name: "Tag"}, {name: "Value"}}, rows))
			fmt.Fprintf(out, "%d field(s) for %s %s\n", len(rows), itemType, itemNum)
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemTypeFlag, "type", "t", "", "Item type (assets, accessories, consumables, components)")
	cmd.Flags().StringVarP(&itemNumFlag, "item-num", "n", "", "Numeric item ID in Snipe-IT")
	return cmd
}
